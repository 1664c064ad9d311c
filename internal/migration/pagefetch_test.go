package migration

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

func TestFetchAllWooConcatenatesPagesInOrder(t *testing.T) {
	source := &fakeSource{pages: map[string][][]byte{
		"products": {
			wooPage([]woocommerce.Product{{ID: 1, Slug: "a"}, {ID: 2, Slug: "b"}}),
			wooPage([]woocommerce.Product{{ID: 3, Slug: "c"}}),
			wooPage([]woocommerce.Product{{ID: 4, Slug: "d"}}),
		},
	}}
	m, _ := newTestMigrator(source, &fakeTarget{})

	products, err := fetchAllWoo[woocommerce.Product](m, "products", nil)
	require.NoError(t, err)

	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
	assert.Equal(t, 3, source.calls["products"], "the first page response is reused, not refetched")
}

func TestFetchAllWooPageRange(t *testing.T) {
	source := &fakeSource{pages: map[string][][]byte{
		"orders": {
			wooPage([]woocommerce.Order{{ID: 1}}),
			wooPage([]woocommerce.Order{{ID: 2}}),
			wooPage([]woocommerce.Order{{ID: 3}}),
		},
	}}
	m, _ := newTestMigrator(source, &fakeTarget{})

	orders, err := fetchAllWoo[woocommerce.Order](m, "orders", &Pages{First: 2, Last: 3})
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, 2, orders[0].ID)
	assert.Equal(t, 3, orders[1].ID)
}

func TestFetchAllWooAbortsOnPageFailure(t *testing.T) {
	source := &fakeSource{
		pages: map[string][][]byte{
			"products": {
				wooPage([]woocommerce.Product{{ID: 1}}),
				wooPage([]woocommerce.Product{{ID: 2}}),
			},
		},
		failOn: 2,
	}
	m, _ := newTestMigrator(source, &fakeTarget{})

	records, err := fetchAllWoo[woocommerce.Product](m, "products", nil)
	require.Error(t, err)
	assert.Nil(t, records, "a page failure aborts the whole retrieval, no partial result")
}

func TestFetchAllSwellDerivesPageCountFromFirstResponse(t *testing.T) {
	pagesRequested := []int{}
	target := &fakeTarget{
		onGet: func(endpoint string, query url.Values) (*swell.ListResponse, error) {
			page, _ := strconv.Atoi(query.Get("page"))
			pagesRequested = append(pagesRequested, page)

			// 250 records: two full pages of 100 and one of 50.
			size := 100
			if page == 3 {
				size = 50
			}
			records := make([]interface{}, size)
			for i := range records {
				records[i] = swell.Category{ID: "c", Slug: "s"}
			}
			list := swellList(records...)
			list.Count = 250
			return list, nil
		},
	}
	m, _ := newTestMigrator(&fakeSource{}, target)

	categories, err := fetchAllSwell[swell.Category](m, "/categories", nil)
	require.NoError(t, err)

	assert.Len(t, categories, 250)
	assert.Equal(t, []int{1, 2, 3}, pagesRequested)
}

func TestFetchAllSwellEmptyCollection(t *testing.T) {
	target := &fakeTarget{
		onGet: func(endpoint string, query url.Values) (*swell.ListResponse, error) {
			return &swell.ListResponse{Count: 0}, nil
		},
	}
	m, _ := newTestMigrator(&fakeSource{}, target)

	records, err := fetchAllSwell[swell.Product](m, "/products", nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTotalWooPages(t *testing.T) {
	source := &fakeSource{pages: map[string][][]byte{
		"customers": {
			wooPage([]woocommerce.Customer{{ID: 1}}),
			wooPage([]woocommerce.Customer{{ID: 2}}),
		},
	}}
	m, _ := newTestMigrator(source, &fakeTarget{})

	total, err := m.totalWooPages("customers")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
