package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/bind"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/metrics"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/response"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/storage"
)

// BrandController serves the admin brand endpoints. Create and update are
// multipart because they may carry a logo file.
type BrandController struct {
	brands *services.BrandService
	feed   *StatsFeed
}

func NewBrandController(brands *services.BrandService, feed *StatsFeed) *BrandController {
	return &BrandController{brands: brands, feed: feed}
}

// List returns every brand ordered by name.
func (c *BrandController) List(w http.ResponseWriter, r *http.Request) {
	brands, err := c.brands.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, brands)
}

// Create accepts a multipart form with a "name" field and an optional "logo"
// file. A zero-size file part counts as no file.
func (c *BrandController) Create(w http.ResponseWriter, r *http.Request) {
	if err := bind.Multipart(r); err != nil {
		response.FromError(w, r, err)
		return
	}

	logo := ""
	if header, err := bind.FormFile(r, "logo"); err != nil {
		response.FromError(w, r, err)
		return
	} else if header != nil {
		url, err := uploadHeader("brands", header)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		logo = url
	}

	id, err := c.brands.Create(r.Context(), bind.FormValue(r, "name"), logo)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("brand", "create")
	c.feed.Push()
	response.Created(w, map[string]string{"id": id})
}

// Update renames the brand. When a "logo" file is supplied the stored logo
// is replaced; without one it is kept.
func (c *BrandController) Update(w http.ResponseWriter, r *http.Request) {
	if err := bind.Multipart(r); err != nil {
		response.FromError(w, r, err)
		return
	}

	var logo *string
	if header, err := bind.FormFile(r, "logo"); err != nil {
		response.FromError(w, r, err)
		return
	} else if header != nil {
		url, err := uploadHeader("brands", header)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		logo = &url
	}

	id := chi.URLParam(r, "id")
	if err := c.brands.Update(r.Context(), id, bind.FormValue(r, "name"), logo); err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("brand", "update")
	c.feed.Push()
	response.Success(w, map[string]string{"id": id})
}

// Delete removes the brand and cascades over its sub-brands and models.
func (c *BrandController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.brands.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("brand", "delete")
	c.feed.Push()
	response.Success(w, map[string]bool{"deleted": true})
}

// uploadHeader streams one multipart file to the storage disk and returns
// its public URL.
func uploadHeader(dir string, header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", errs.Infrastructure("open upload", err)
	}
	defer f.Close()

	url, err := storage.UploadImage(dir, header.Filename, f)
	if err != nil {
		return "", errs.Infrastructure("store upload", err)
	}
	return url, nil
}
