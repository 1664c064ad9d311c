package migration

import (
	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

// MigrateOrders copies orders in batches. Product and account references are
// resolved through translation tables built up front from full snapshots of
// both platforms; unresolved references leave the field unset and the order
// still migrates.
func (m *Migrator) MigrateOrders(opts BatchOptions) (*Tally, error) {
	tally := &Tally{}

	m.logger.Info("building customer and product translation tables")
	productIDs, err := m.productTranslationTable(opts.UseCache)
	if err != nil {
		return tally, err
	}
	accountIDs, err := m.accountTranslationTable(opts.UseCache)
	if err != nil {
		return tally, err
	}

	totalPages, err := m.totalWooPages("orders")
	if err != nil {
		return tally, err
	}

	first, last, pagesPerBatch := batchBounds(opts, totalPages)

	for page := first; page <= last; page += pagesPerBatch {
		end := page + pagesPerBatch - 1
		if end > last {
			end = last
		}

		orders, err := fetchAllWoo[woocommerce.Order](m, "orders", &Pages{First: page, Last: end})
		if err != nil {
			return tally, err
		}
		if len(orders) == 0 {
			continue
		}

		batch := make([]swell.BatchItem, len(orders))
		for i := range orders {
			payload, err := orderFromWoo(&orders[i], productIDs, accountIDs)
			if err != nil {
				return tally, err
			}
			batch[i] = swell.BatchItem{
				URL:    "/orders",
				Method: "POST",
				Data:   payload,
			}
		}

		m.logger.Info("attempting to create %d records", len(batch))
		res, err := m.target.Batch(batch)
		if err != nil {
			return tally, err
		}

		created, skipped := classifyBatch(res)
		m.logger.Info("created: %d, skipped: %d", created, skipped)
		tally.Created += created
		tally.Skipped += skipped
	}

	return tally, nil
}
