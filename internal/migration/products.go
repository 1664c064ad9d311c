package migration

import (
	"encoding/json"
	"net/url"

	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

// ProductOptions configures a product migration run.
type ProductOptions struct {
	// Pages restricts the run to a range of source pages. Setting it
	// disables the snapshot cache.
	Pages *Pages

	// UseCache loads source products and target categories from snapshots
	// when available.
	UseCache bool

	// CustomFields are copied by name after the built-in fields.
	CustomFields []FieldMap
}

// MigrateProducts upserts every source product on the target, joined by slug.
// Import categories before running this so category references resolve.
func (m *Migrator) MigrateProducts(opts ProductOptions) (*Tally, error) {
	tally := &Tally{}

	useCache := opts.UseCache && opts.Pages == nil

	products, err := m.wooProducts(useCache, opts.Pages)
	if err != nil {
		return tally, err
	}
	categories, err := m.swellCategories(useCache)
	if err != nil {
		return tally, err
	}
	categoryIDs := categoryTranslation(categories)

	for i := range products {
		product := &products[i]
		action, err := m.upsertProduct(product, categoryIDs, opts.CustomFields)
		if err != nil {
			return tally, err
		}
		switch action {
		case "created":
			tally.Created++
		case "updated":
			tally.Updated++
		case "skipped":
			tally.Skipped++
		}
		m.logger.Info("product %d/%d %s %s", i+1, len(products), product.Name, action)
	}

	return tally, nil
}

// upsertProduct looks the product up on the target by slug and creates or
// fully overwrites it. A product without a slug is unsyncable, not an error.
func (m *Migrator) upsertProduct(p *woocommerce.Product, categoryIDs map[string]string, customFields []FieldMap) (string, error) {
	if p.Slug == "" {
		m.logger.Warn("product %q has no slug, cannot sync", p.Name)
		return "skipped", nil
	}

	payload := productFromWoo(p, categoryIDs, customFields)

	query := url.Values{}
	query.Set("where[slug]", p.Slug)
	resp, err := m.target.Get("/products", query)
	if err != nil {
		return "", err
	}

	// Count alone is not trusted; a record only exists if it was returned.
	if len(resp.Results) == 0 {
		if _, err := m.target.Post("/products", payload); err != nil {
			return "", err
		}
		return "created", nil
	}

	var existing swell.Product
	if err := json.Unmarshal(resp.Results[0], &existing); err != nil {
		return "", err
	}
	if _, err := m.target.Put("/products/"+existing.ID, map[string]interface{}{"$set": payload}); err != nil {
		return "", err
	}
	return "updated", nil
}

// DeleteAllProducts removes every product from the target store with one
// batched delete. Used to clear a store before a full rerun.
func (m *Migrator) DeleteAllProducts() (int, error) {
	products, err := fetchAllSwell[swell.Product](m, "/products", nil)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}

	batch := make([]swell.BatchItem, len(products))
	for i, product := range products {
		batch[i] = swell.BatchItem{URL: "/products/" + product.ID, Method: "delete"}
	}

	res, err := m.target.Batch(batch)
	if err != nil {
		return 0, err
	}
	m.logger.Info("deleted %d records", len(res))
	return len(res), nil
}
