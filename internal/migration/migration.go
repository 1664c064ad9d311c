// Package migration moves categories, products, customers, orders and images
// from a WooCommerce store to a Swell store. All operations run strictly
// sequentially; reruns are the recovery mechanism, relying on slug/email
// joins and target-side duplicate detection instead of retries.
package migration

import (
	"encoding/json"
	"net/url"

	"storemigrate/internal/images"
	"storemigrate/internal/logger"
	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

// SourceAPI is the slice of the WooCommerce client the engine needs.
type SourceAPI interface {
	Get(endpoint string, query url.Values) (*woocommerce.Response, error)
}

// TargetAPI is the slice of the Swell client the engine needs.
type TargetAPI interface {
	Get(endpoint string, query url.Values) (*swell.ListResponse, error)
	Post(endpoint string, payload interface{}) (json.RawMessage, error)
	Put(endpoint string, payload interface{}) (json.RawMessage, error)
	Delete(endpoint string) (json.RawMessage, error)
	Batch(items []swell.BatchItem) ([]json.RawMessage, error)
}

// SnapshotStore persists whole entity collections between runs.
type SnapshotStore interface {
	Exists(kind string) bool
	Read(kind string, v interface{}) error
	Write(kind string, v interface{}) error
}

// ImageStore lists and reads the local product image backup.
type ImageStore interface {
	List() ([]images.FileDetail, error)
	Read(path string) ([]byte, error)
	Probe(path string) (width, height int, err error)
	MIMEType(filename string) string
}

// Pages restricts an operation to a range of source pages. A zero Last means
// "through the final page the platform reports".
type Pages struct {
	First int
	Last  int
}

// FieldMap copies one source field into one target field by name. Mappings
// are applied in order after the built-in fields and may override them.
type FieldMap struct {
	Source string
	Target string
}

// Tally accumulates per-record outcomes for one run. It is never reset
// mid-run; on failure it is returned alongside the error with everything
// counted so far.
type Tally struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

type Migrator struct {
	source    SourceAPI
	target    TargetAPI
	snapshots SnapshotStore
	logger    *logger.Logger
}

func New(source SourceAPI, target TargetAPI, snapshots SnapshotStore, logger *logger.Logger) *Migrator {
	return &Migrator{
		source:    source,
		target:    target,
		snapshots: snapshots,
		logger:    logger,
	}
}

// classifyBatch counts response elements that carry a target-assigned id as
// created; elements without one were rejected by the platform, typically as
// duplicates.
func classifyBatch(elements []json.RawMessage) (created, skipped int) {
	for _, element := range elements {
		var record struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(element, &record); err == nil && record.ID != "" {
			created++
		} else {
			skipped++
		}
	}
	return created, skipped
}
