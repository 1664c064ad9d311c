// Package snapshot persists fetched entity collections as JSON files so
// reruns can skip redundant API calls.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known snapshot kinds. Each kind maps to one file under the data
// directory.
const (
	WooProducts     = "woo-products"
	WooCustomers    = "woo-customers"
	WooImages       = "woo-images"
	SwellProducts   = "swell-products"
	SwellAccounts   = "swell-accounts"
	SwellCategories = "swell-categories"
)

type Store struct {
	dataDir string
}

func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) Path(kind string) string {
	return filepath.Join(s.dataDir, kind+".json")
}

func (s *Store) Exists(kind string) bool {
	_, err := os.Stat(s.Path(kind))
	return err == nil
}

func (s *Store) Read(kind string, v interface{}) error {
	data, err := os.ReadFile(s.Path(kind))
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", kind, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", kind, err)
	}
	return nil
}

// Write replaces the snapshot for kind. Snapshots are whole-collection dumps,
// never partially merged.
func (s *Store) Write(kind string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", kind, err)
	}
	if err := os.WriteFile(s.Path(kind), data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", kind, err)
	}
	return nil
}
