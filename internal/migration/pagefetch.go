package migration

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"storemigrate/internal/services/swell"
)

const defaultPerPage = 100

// fetchAllWoo retrieves records of a WooCommerce endpoint across a page
// range, one page at a time in ascending order. The first response reports
// the total page count and is reused rather than refetched. Any page failure
// aborts the whole retrieval.
func fetchAllWoo[T any](m *Migrator, endpoint string, pages *Pages) ([]T, error) {
	first := 1
	last := 0
	if pages != nil {
		if pages.First > 0 {
			first = pages.First
		}
		last = pages.Last
	}

	m.logger.Info("getting woo %s records", endpoint)

	records, totalPages, err := fetchWooPage[T](m, endpoint, first)
	if err != nil {
		return nil, err
	}
	if last == 0 {
		last = totalPages
	}
	m.logger.Debug("page %d/%d", first, last)

	for page := first + 1; page <= last; page++ {
		batch, _, err := fetchWooPage[T](m, endpoint, page)
		if err != nil {
			return nil, err
		}
		records = append(records, batch...)
		m.logger.Debug("page %d/%d", page, last)
	}

	m.logger.Info("%d records retrieved", len(records))
	return records, nil
}

func fetchWooPage[T any](m *Migrator, endpoint string, page int) ([]T, int, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(defaultPerPage))
	query.Set("page", strconv.Itoa(page))

	resp, err := m.source.Get(endpoint, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch woo %s page %d: %w", endpoint, page, err)
	}

	var batch []T
	if err := json.Unmarshal(resp.Data, &batch); err != nil {
		return nil, 0, fmt.Errorf("failed to decode woo %s page %d: %w", endpoint, page, err)
	}
	return batch, resp.TotalPages, nil
}

// totalWooPages asks the source platform how many pages an endpoint has at
// the default page size.
func (m *Migrator) totalWooPages(endpoint string) (int, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(defaultPerPage))

	resp, err := m.source.Get(endpoint, query)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch woo %s page count: %w", endpoint, err)
	}
	return resp.TotalPages, nil
}

// fetchAllSwell retrieves records of a Swell endpoint across a page range.
// Swell reports only a total record count, so the page count is derived from
// the first response's page size; that response doubles as the range's first
// page.
func fetchAllSwell[T any](m *Migrator, endpoint string, pages *Pages) ([]T, error) {
	first := 1
	last := 0
	if pages != nil {
		if pages.First > 0 {
			first = pages.First
		}
		last = pages.Last
	}

	m.logger.Info("getting swell %s records", endpoint)

	resp, err := fetchSwellPage(m, endpoint, first)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	if last == 0 {
		last = (resp.Count + len(resp.Results) - 1) / len(resp.Results)
	}

	records, err := decodeResults[T](endpoint, resp.Results)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("page %d/%d", first, last)

	for page := first + 1; page <= last; page++ {
		resp, err := fetchSwellPage(m, endpoint, page)
		if err != nil {
			return nil, err
		}
		batch, err := decodeResults[T](endpoint, resp.Results)
		if err != nil {
			return nil, err
		}
		records = append(records, batch...)
		m.logger.Debug("page %d/%d", page, last)
	}

	m.logger.Info("%d records retrieved", len(records))
	return records, nil
}

func fetchSwellPage(m *Migrator, endpoint string, page int) (*swell.ListResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(defaultPerPage))
	query.Set("page", strconv.Itoa(page))

	resp, err := m.target.Get(endpoint, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swell %s page %d: %w", endpoint, page, err)
	}
	return resp, nil
}

func decodeResults[T any](endpoint string, results []json.RawMessage) ([]T, error) {
	records := make([]T, 0, len(results))
	for _, raw := range results {
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("failed to decode swell %s record: %w", endpoint, err)
		}
		records = append(records, record)
	}
	return records, nil
}
