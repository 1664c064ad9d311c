package migration

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"storemigrate/internal/images"
	"storemigrate/internal/logger"
	"storemigrate/internal/services/swell"
	"storemigrate/internal/services/woocommerce"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

// fakeSource serves canned pages per endpoint. Index 0 is page 1.
type fakeSource struct {
	pages  map[string][][]byte
	calls  map[string]int
	failOn int
}

func (f *fakeSource) Get(endpoint string, query url.Values) (*woocommerce.Response, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[endpoint]++

	page, _ := strconv.Atoi(query.Get("page"))
	if page == 0 {
		page = 1
	}
	if f.failOn != 0 && page == f.failOn {
		return nil, errors.New("connection reset")
	}

	data := []byte("[]")
	if pages := f.pages[endpoint]; page-1 < len(pages) {
		data = pages[page-1]
	}
	return &woocommerce.Response{Data: data, TotalPages: len(f.pages[endpoint])}, nil
}

func wooPage(t any) []byte {
	data, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}
	return data
}

// fakeTarget records writes and delegates reads/batches to optional hooks.
type fakeTarget struct {
	onGet   func(endpoint string, query url.Values) (*swell.ListResponse, error)
	onBatch func(items []swell.BatchItem) ([]json.RawMessage, error)

	posts   []string
	puts    []string
	deletes []string
	batches [][]swell.BatchItem
}

func (f *fakeTarget) Get(endpoint string, query url.Values) (*swell.ListResponse, error) {
	if f.onGet != nil {
		return f.onGet(endpoint, query)
	}
	return &swell.ListResponse{}, nil
}

func (f *fakeTarget) Post(endpoint string, payload interface{}) (json.RawMessage, error) {
	f.posts = append(f.posts, endpoint)
	return json.RawMessage(fmt.Sprintf(`{"id":"created-%d"}`, len(f.posts))), nil
}

func (f *fakeTarget) Put(endpoint string, payload interface{}) (json.RawMessage, error) {
	f.puts = append(f.puts, endpoint)
	return json.RawMessage(`{"id":"updated"}`), nil
}

func (f *fakeTarget) Delete(endpoint string) (json.RawMessage, error) {
	f.deletes = append(f.deletes, endpoint)
	return json.RawMessage(`{}`), nil
}

func (f *fakeTarget) Batch(items []swell.BatchItem) ([]json.RawMessage, error) {
	f.batches = append(f.batches, items)
	if f.onBatch != nil {
		return f.onBatch(items)
	}
	res := make([]json.RawMessage, len(items))
	for i := range items {
		res[i] = json.RawMessage(fmt.Sprintf(`{"id":"batch-%d"}`, i))
	}
	return res, nil
}

// swellList builds a one-page list response from typed records.
func swellList(records ...interface{}) *swell.ListResponse {
	results := make([]json.RawMessage, len(records))
	for i, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			panic(err)
		}
		results[i] = data
	}
	return &swell.ListResponse{Count: len(records), Results: results}
}

// fakeSnapshots is an in-memory snapshot store.
type fakeSnapshots struct {
	files map[string][]byte
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{files: make(map[string][]byte)}
}

func (s *fakeSnapshots) Exists(kind string) bool {
	_, ok := s.files[kind]
	return ok
}

func (s *fakeSnapshots) Read(kind string, v interface{}) error {
	data, ok := s.files[kind]
	if !ok {
		return fmt.Errorf("no snapshot %s", kind)
	}
	return json.Unmarshal(data, v)
}

func (s *fakeSnapshots) Write(kind string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.files[kind] = data
	return nil
}

// fakeImages serves an in-memory file tree.
type fakeImages struct {
	files []images.FileDetail
	data  map[string][]byte
}

func (f *fakeImages) List() ([]images.FileDetail, error) {
	return f.files, nil
}

func (f *fakeImages) Read(path string) ([]byte, error) {
	data, ok := f.data[path]
	if !ok {
		return nil, fmt.Errorf("no file %s", path)
	}
	return data, nil
}

func (f *fakeImages) Probe(path string) (int, int, error) {
	return 640, 480, nil
}

func (f *fakeImages) MIMEType(filename string) string {
	return "image/jpeg"
}

func newTestMigrator(source *fakeSource, target *fakeTarget) (*Migrator, *fakeSnapshots) {
	snapshots := newFakeSnapshots()
	return New(source, target, snapshots, testLogger()), snapshots
}
