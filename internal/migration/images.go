package migration

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"storemigrate/internal/services/swell"
	"storemigrate/internal/snapshot"
)

// ImageOptions configures the image upload phase.
type ImageOptions struct {
	// UseCache loads the product image list from its snapshot when available.
	UseCache bool

	// SkipDuplicates skips local files whose filename already exists on the
	// target's file storage. Defaults on in the CLI.
	SkipDuplicates bool
}

// ImageRef ties one source product image filename to its product slug.
type ImageRef struct {
	Filename    string `json:"filename"`
	Caption     string `json:"caption"`
	Name        string `json:"name"`
	ProductSlug string `json:"productSlug"`
}

// UploadImages walks the local image backup and uploads every file that
// belongs to a source product. Files with no owning product are ignored, so
// the backup does not need to be pre-filtered.
func (m *Migrator) UploadImages(files ImageStore, opts ImageOptions) (int, error) {
	imageLists, err := m.wooImageLists(opts.UseCache)
	if err != nil {
		return 0, err
	}

	owned := make(map[string]struct{})
	for _, refs := range imageLists {
		for _, ref := range refs {
			owned[ref.Filename] = struct{}{}
		}
	}

	existing := make(map[string]struct{})
	if opts.SkipDuplicates {
		swellFiles, err := fetchAllSwell[swell.File](m, "/:files", nil)
		if err != nil {
			return 0, err
		}
		for _, f := range swellFiles {
			if f.Filename != "" {
				existing[f.Filename] = struct{}{}
			}
		}
	}

	m.logger.Info("building local file index")
	localFiles, err := files.List()
	if err != nil {
		return 0, err
	}

	uploaded := 0
	for _, local := range localFiles {
		if _, ok := owned[local.Filename]; !ok {
			continue
		}
		if _, ok := existing[local.Filename]; ok {
			continue
		}

		data, err := files.Read(local.Path)
		if err != nil {
			return uploaded, err
		}
		width, height, err := files.Probe(local.Path)
		if err != nil {
			return uploaded, err
		}

		payload := swell.FileUpload{
			Data: swell.FileData{
				Binary: base64.StdEncoding.EncodeToString(data),
				Type:   "00",
			},
			Filename:    local.Filename,
			ContentType: files.MIMEType(local.Filename),
			Width:       width,
			Height:      height,
		}
		if _, err := m.target.Post("/:files", payload); err != nil {
			return uploaded, err
		}
		m.logger.Debug("file %s uploaded", local.Filename)
		uploaded++
	}

	m.logger.Info("%d files uploaded", uploaded)
	return uploaded, nil
}

// AttachImages links uploaded files to their products, joined by product
// slug. Run this after UploadImages has finished. Products whose slug cannot
// be found on the target are skipped with a warning.
func (m *Migrator) AttachImages() (int, error) {
	imageLists, err := m.wooImageLists(true)
	if err != nil {
		return 0, err
	}

	swellFiles, err := fetchAllSwell[swell.File](m, "/:files", nil)
	if err != nil {
		return 0, err
	}
	byFilename := make(map[string]swell.File, len(swellFiles))
	for _, f := range swellFiles {
		if f.Filename != "" {
			byFilename[f.Filename] = f
		}
	}

	attached := 0
	for slug, refs := range imageLists {
		productImages := make([]swell.ProductImage, 0, len(refs))
		for _, ref := range refs {
			file, ok := byFilename[ref.Filename]
			if !ok {
				continue
			}
			productImages = append(productImages, swell.ProductImage{Caption: ref.Caption, File: file})
		}
		if len(productImages) == 0 {
			continue
		}

		query := url.Values{}
		query.Set("where[slug]", slug)
		resp, err := m.target.Get("/products", query)
		if err != nil {
			return attached, err
		}
		if len(resp.Results) == 0 {
			m.logger.Warn("product slug %s not found, can't attach images", slug)
			continue
		}

		var product swell.Product
		if err := json.Unmarshal(resp.Results[0], &product); err != nil {
			return attached, err
		}

		update := map[string]interface{}{"$set": map[string]interface{}{"images": productImages}}
		if _, err := m.target.Put("/products/"+product.ID, update); err != nil {
			return attached, err
		}
		m.logger.Debug("attached %d images to %s", len(productImages), product.Name)
		attached++
	}

	return attached, nil
}

// wooImageLists derives the product-slug to image-file mapping from the
// source product collection and snapshots it for the attach phase.
func (m *Migrator) wooImageLists(useCache bool) (map[string][]ImageRef, error) {
	if useCache && m.snapshots.Exists(snapshot.WooImages) {
		var lists map[string][]ImageRef
		if err := m.snapshots.Read(snapshot.WooImages, &lists); err != nil {
			return nil, err
		}
		m.logger.Info("%d image lists loaded from snapshot", len(lists))
		return lists, nil
	}

	products, err := m.wooProducts(useCache, nil)
	if err != nil {
		return nil, err
	}

	lists := make(map[string][]ImageRef)
	for _, product := range products {
		if product.Slug == "" || len(product.Images) == 0 {
			continue
		}
		refs := make([]ImageRef, 0, len(product.Images))
		for _, image := range product.Images {
			filename := image.Src[strings.LastIndex(image.Src, "/")+1:]
			refs = append(refs, ImageRef{
				Filename:    filename,
				Caption:     image.Alt,
				Name:        image.Name,
				ProductSlug: product.Slug,
			})
		}
		lists[product.Slug] = refs
	}

	if err := m.snapshots.Write(snapshot.WooImages, lists); err != nil {
		return nil, err
	}
	return lists, nil
}
