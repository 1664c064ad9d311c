package migration

import (
	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

// MigrateCategories creates every source category on the target, or updates
// it when a category with the same slug already exists. Nothing is deleted in
// this path.
func (m *Migrator) MigrateCategories() (*Tally, error) {
	tally := &Tally{}

	wooCategories, err := fetchAllWoo[woocommerce.Category](m, "products/categories", nil)
	if err != nil {
		return tally, err
	}
	swellCategories, err := fetchAllSwell[swell.Category](m, "/categories", nil)
	if err != nil {
		return tally, err
	}
	targetIDs := categoryTranslation(swellCategories)

	for i := range wooCategories {
		cat := &wooCategories[i]
		payload := categoryFromWoo(cat)

		if id, ok := targetIDs[cat.Slug]; ok {
			if _, err := m.target.Put("/categories/"+id, payload); err != nil {
				return tally, err
			}
			m.logger.Debug("category %s updated", cat.Slug)
			tally.Updated++
			continue
		}

		if _, err := m.target.Post("/categories", payload); err != nil {
			return tally, err
		}
		m.logger.Debug("category %s created", cat.Slug)
		tally.Created++
	}

	return tally, nil
}

// LinkCategoryParents wires parent/child relationships on the target. Run
// this only after MigrateCategories, so every parent already exists. The
// parent target ID is resolved through two chained lookups: source parent ID
// to source slug, then source slug to target ID. Categories whose parent
// cannot be resolved are left without a parent link, silently.
func (m *Migrator) LinkCategoryParents() (int, error) {
	wooCategories, err := fetchAllWoo[woocommerce.Category](m, "products/categories", nil)
	if err != nil {
		return 0, err
	}
	swellCategories, err := fetchAllSwell[swell.Category](m, "/categories", nil)
	if err != nil {
		return 0, err
	}

	slugByID := mapBy(wooCategories,
		func(c woocommerce.Category) int { return c.ID },
		func(c woocommerce.Category) string { return c.Slug })
	targetIDs := categoryTranslation(swellCategories)

	linked := 0
	for i := range wooCategories {
		cat := &wooCategories[i]
		if cat.Parent == 0 {
			continue
		}
		parentID, ok := targetIDs[slugByID[cat.Parent]]
		if !ok {
			continue
		}
		targetID, ok := targetIDs[cat.Slug]
		if !ok {
			continue
		}

		if _, err := m.target.Put("/categories/"+targetID, swell.Category{ParentID: parentID}); err != nil {
			return linked, err
		}
		m.logger.Debug("parent added to %s", cat.Slug)
		linked++
	}

	return linked, nil
}

// DeleteUnmatchedCategories removes every target category whose slug has no
// corresponding source category, matching solely by slug. Useful for pruning
// a store's demo seed data; destructive and unconditional once invoked.
func (m *Migrator) DeleteUnmatchedCategories() (int, error) {
	wooCategories, err := fetchAllWoo[woocommerce.Category](m, "products/categories", nil)
	if err != nil {
		return 0, err
	}
	swellCategories, err := fetchAllSwell[swell.Category](m, "/categories", nil)
	if err != nil {
		return 0, err
	}

	sourceSlugs := make(map[string]struct{}, len(wooCategories))
	for _, cat := range wooCategories {
		sourceSlugs[cat.Slug] = struct{}{}
	}

	deleted := 0
	for slug, id := range categoryTranslation(swellCategories) {
		if _, ok := sourceSlugs[slug]; ok {
			continue
		}
		if _, err := m.target.Delete("/categories/" + id); err != nil {
			return deleted, err
		}
		m.logger.Debug("category %s deleted", slug)
		deleted++
	}

	m.logger.Info("%d categories deleted", deleted)
	return deleted, nil
}
