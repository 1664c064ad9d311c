// Package images reads product image files from a local directory tree,
// typically a WordPress uploads backup.
package images

import (
	"fmt"
	"image"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	// Register decoders for dimension probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// FileDetail is one local file found by List.
type FileDetail struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// List walks the whole directory tree and returns every regular file. Images
// are not separated from other files here; callers filter by product
// ownership.
func (s *Store) List() ([]FileDetail, error) {
	var files []FileDetail
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, FileDetail{Filename: d.Name(), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list image directory %s: %w", s.root, err)
	}
	return files, nil
}

func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return data, nil
}

// Probe returns the pixel dimensions of an image file without decoding the
// full image. Unknown formats report zero dimensions rather than failing the
// upload.
func (s *Store) Probe(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, nil
	}
	return cfg.Width, cfg.Height, nil
}

// MIMEType looks up the content type from the filename extension.
func (s *Store) MIMEType(filename string) string {
	return mime.TypeByExtension(filepath.Ext(filename))
}
