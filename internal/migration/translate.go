package migration

import (
	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

// mapBy builds a lookup table from a collection in a single pass.
func mapBy[T any, K comparable, V any](items []T, key func(T) K, value func(T) V) map[K]V {
	out := make(map[K]V, len(items))
	for _, item := range items {
		out[key(item)] = value(item)
	}
	return out
}

// productTranslation maps source product IDs to target product IDs, joined by
// slug. Products with no counterpart are absent from the map, not nulled.
func productTranslation(wooProducts []woocommerce.Product, swellProducts []swell.Product) map[int]string {
	bySlug := mapBy(swellProducts,
		func(p swell.Product) string { return p.Slug },
		func(p swell.Product) string { return p.ID })

	out := make(map[int]string, len(wooProducts))
	for _, p := range wooProducts {
		if p.Slug == "" {
			continue
		}
		if id, ok := bySlug[p.Slug]; ok {
			out[p.ID] = id
		}
	}
	return out
}

// accountTranslation maps source customer IDs to target account IDs, joined
// by email.
func accountTranslation(wooCustomers []woocommerce.Customer, swellAccounts []swell.Account) map[int]string {
	byEmail := mapBy(swellAccounts,
		func(a swell.Account) string { return a.Email },
		func(a swell.Account) string { return a.ID })

	out := make(map[int]string, len(wooCustomers))
	for _, c := range wooCustomers {
		if c.Email == "" {
			continue
		}
		if id, ok := byEmail[c.Email]; ok {
			out[c.ID] = id
		}
	}
	return out
}

// categoryTranslation maps target category slugs to target category IDs.
func categoryTranslation(swellCategories []swell.Category) map[string]string {
	return mapBy(swellCategories,
		func(c swell.Category) string { return c.Slug },
		func(c swell.Category) string { return c.ID })
}

// productTranslationTable downloads both product collections and joins them.
func (m *Migrator) productTranslationTable(useCache bool) (map[int]string, error) {
	swellProducts, err := m.swellProducts(useCache)
	if err != nil {
		return nil, err
	}
	wooProducts, err := m.wooProducts(useCache, nil)
	if err != nil {
		return nil, err
	}
	return productTranslation(wooProducts, swellProducts), nil
}

// accountTranslationTable downloads both customer collections and joins them.
func (m *Migrator) accountTranslationTable(useCache bool) (map[int]string, error) {
	swellAccounts, err := m.swellAccounts(useCache)
	if err != nil {
		return nil, err
	}
	wooCustomers, err := m.wooCustomers(useCache)
	if err != nil {
		return nil, err
	}
	return accountTranslation(wooCustomers, swellAccounts), nil
}
