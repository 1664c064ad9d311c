package migration

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

func customerSource(pages ...[]woocommerce.Customer) *fakeSource {
	raw := make([][]byte, len(pages))
	for i, page := range pages {
		raw[i] = wooPage(page)
	}
	return &fakeSource{pages: map[string][][]byte{"customers": raw}}
}

func customer(id int, email string) woocommerce.Customer {
	return woocommerce.Customer{ID: id, Email: email, FirstName: fmt.Sprintf("c%d", id)}
}

func TestMigrateCustomersTallyAcrossBatches(t *testing.T) {
	source := customerSource(
		[]woocommerce.Customer{customer(1, "a@x.com"), customer(2, "b@x.com")},
		[]woocommerce.Customer{customer(3, "c@x.com")},
		[]woocommerce.Customer{customer(4, "d@x.com")},
	)
	// the platform rejects one record per batch as a duplicate
	target := &fakeTarget{
		onBatch: func(items []swell.BatchItem) ([]json.RawMessage, error) {
			res := make([]json.RawMessage, len(items))
			for i := range items {
				if i == 0 {
					res[i] = json.RawMessage(`{"errors":{"email":{"code":"UNIQUE"}}}`)
				} else {
					res[i] = json.RawMessage(fmt.Sprintf(`{"id":"acct-%d"}`, i))
				}
			}
			return res, nil
		},
	}
	m, _ := newTestMigrator(source, target)

	tally, err := m.MigrateCustomers(BatchOptions{PagesPerBatch: 2})
	require.NoError(t, err)

	// 3 pages at 2 per batch means two batches: pages 1-2, then page 3
	require.Len(t, target.batches, 2)
	assert.Len(t, target.batches[0], 3)
	assert.Len(t, target.batches[1], 1)
	assert.Equal(t, "/accounts", target.batches[0][0].URL)
	assert.Equal(t, "POST", target.batches[0][0].Method)

	assert.Equal(t, 2, tally.Created)
	assert.Equal(t, 2, tally.Skipped)
	assert.Equal(t, 4, tally.Created+tally.Updated+tally.Skipped,
		"every fetched record lands in exactly one bucket")
}

func TestMigrateCustomersPageRange(t *testing.T) {
	source := customerSource(
		[]woocommerce.Customer{customer(1, "a@x.com")},
		[]woocommerce.Customer{customer(2, "b@x.com")},
		[]woocommerce.Customer{customer(3, "c@x.com")},
	)
	target := &fakeTarget{}
	m, _ := newTestMigrator(source, target)

	tally, err := m.MigrateCustomers(BatchOptions{Pages: &Pages{First: 2, Last: 2}})
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Created)
	require.Len(t, target.batches, 1)

	var account swell.Account
	require.NoError(t, json.Unmarshal(mustMarshal(t, target.batches[0][0].Data), &account))
	assert.Equal(t, "b@x.com", account.Email)
}

func TestMigrateCustomersFailedBatchKeepsTally(t *testing.T) {
	source := customerSource(
		[]woocommerce.Customer{customer(1, "a@x.com")},
		[]woocommerce.Customer{customer(2, "b@x.com")},
	)
	calls := 0
	target := &fakeTarget{
		onBatch: func(items []swell.BatchItem) ([]json.RawMessage, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("503 service unavailable")
			}
			return []json.RawMessage{json.RawMessage(`{"id":"acct-1"}`)}, nil
		},
	}
	m, _ := newTestMigrator(source, target)

	tally, err := m.MigrateCustomers(BatchOptions{})
	require.Error(t, err)
	assert.Equal(t, 1, tally.Created, "work done before the failure stays counted")
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
