package migration

import (
	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
	"storemigrate/internal/snapshot"
)

// loadOrFetch reads a collection from its snapshot when useCache is set and
// the snapshot exists; otherwise it fetches and writes a fresh snapshot.
func loadOrFetch[T any](m *Migrator, kind string, useCache bool, fetch func() ([]T, error)) ([]T, error) {
	if useCache && m.snapshots.Exists(kind) {
		var records []T
		if err := m.snapshots.Read(kind, &records); err != nil {
			return nil, err
		}
		m.logger.Info("%d %s records loaded from snapshot", len(records), kind)
		return records, nil
	}

	records, err := fetch()
	if err != nil {
		return nil, err
	}
	if err := m.snapshots.Write(kind, records); err != nil {
		return nil, err
	}
	return records, nil
}

// wooProducts returns the source product collection. A page range always
// bypasses the cache: a partial range must never be conflated with a full
// cached collection.
func (m *Migrator) wooProducts(useCache bool, pages *Pages) ([]woocommerce.Product, error) {
	if pages != nil {
		return fetchAllWoo[woocommerce.Product](m, "products", pages)
	}
	return loadOrFetch(m, snapshot.WooProducts, useCache, func() ([]woocommerce.Product, error) {
		return fetchAllWoo[woocommerce.Product](m, "products", nil)
	})
}

func (m *Migrator) wooCustomers(useCache bool) ([]woocommerce.Customer, error) {
	return loadOrFetch(m, snapshot.WooCustomers, useCache, func() ([]woocommerce.Customer, error) {
		return fetchAllWoo[woocommerce.Customer](m, "customers", nil)
	})
}

func (m *Migrator) swellProducts(useCache bool) ([]swell.Product, error) {
	return loadOrFetch(m, snapshot.SwellProducts, useCache, func() ([]swell.Product, error) {
		return fetchAllSwell[swell.Product](m, "/products", nil)
	})
}

func (m *Migrator) swellAccounts(useCache bool) ([]swell.Account, error) {
	return loadOrFetch(m, snapshot.SwellAccounts, useCache, func() ([]swell.Account, error) {
		return fetchAllSwell[swell.Account](m, "/accounts", nil)
	})
}

func (m *Migrator) swellCategories(useCache bool) ([]swell.Category, error) {
	return loadOrFetch(m, snapshot.SwellCategories, useCache, func() ([]swell.Category, error) {
		return fetchAllSwell[swell.Category](m, "/categories", nil)
	})
}
