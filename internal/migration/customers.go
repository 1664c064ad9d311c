package migration

import (
	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

// BatchOptions configures a batched migration run (customers, orders).
type BatchOptions struct {
	// Pages restricts the run to a range of source pages.
	Pages *Pages

	// PagesPerBatch is how many source pages go into one batched write.
	// Defaults to 1. The target platform recommends keeping batches under a
	// thousand records.
	PagesPerBatch int

	// UseCache loads the collections behind the translation tables from
	// snapshots when available. Only orders build translation tables.
	UseCache bool
}

// MigrateCustomers copies customers in batches through the target's batch
// endpoint. Duplicates are skipped by the target itself, keyed on email; each
// response element with a target-assigned ID counts as created, everything
// else as skipped.
func (m *Migrator) MigrateCustomers(opts BatchOptions) (*Tally, error) {
	tally := &Tally{}

	totalPages, err := m.totalWooPages("customers")
	if err != nil {
		return tally, err
	}

	first, last, pagesPerBatch := batchBounds(opts, totalPages)

	for page := first; page <= last; page += pagesPerBatch {
		end := page + pagesPerBatch - 1
		if end > last {
			end = last
		}

		customers, err := fetchAllWoo[woocommerce.Customer](m, "customers", &Pages{First: page, Last: end})
		if err != nil {
			return tally, err
		}
		if len(customers) == 0 {
			continue
		}

		batch := make([]swell.BatchItem, len(customers))
		for i := range customers {
			batch[i] = swell.BatchItem{
				URL:    "/accounts",
				Method: "POST",
				Data:   accountFromCustomer(&customers[i]),
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

func batchBounds(opts BatchOptions, totalPages int) (first, last, pagesPerBatch int) {
	first, last = 1, totalPages
	if opts.Pages != nil {
		if opts.Pages.First > 0 {
			first = opts.Pages.First
		}
		if opts.Pages.Last > 0 {
			last = opts.Pages.Last
		}
	}
	pagesPerBatch = opts.PagesPerBatch
	if pagesPerBatch < 1 {
		pagesPerBatch = 1
	}
	return first, last, pagesPerBatch
}
