package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/bind"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/metrics"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/response"
)

// ModelController serves the admin model endpoints. Writes are multipart:
// new gallery images arrive as "images" file parts, kept URLs as
// "existing_images" value parts.
type ModelController struct {
	models *services.ModelService
	feed   *StatsFeed
}

func NewModelController(models *services.ModelService, feed *StatsFeed) *ModelController {
	return &ModelController{models: models, feed: feed}
}

// List returns every model enriched with sub-brand and brand names, or one
// sub-brand's models when ?subBrandId= is given.
func (c *ModelController) List(w http.ResponseWriter, r *http.Request) {
	if subBrandID := r.URL.Query().Get("subBrandId"); subBrandID != "" {
		mods, err := c.models.ListBySubBrand(r.Context(), subBrandID)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Success(w, mods)
		return
	}

	mods, err := c.models.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, mods)
}

func (c *ModelController) Create(w http.ResponseWriter, r *http.Request) {
	if err := bind.Multipart(r); err != nil {
		response.FromError(w, r, err)
		return
	}

	images, err := c.uploadImages(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	dealer, err := bind.FormFloat(r, "dealerPricing")
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	distributor, err := bind.FormFloat(r, "distributorPricing")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	id, err := c.models.Create(r.Context(), services.CreateModelInput{
		Name:               bind.FormValue(r, "name"),
		Description:        bind.FormValue(r, "description"),
		SubBrandID:         bind.FormValue(r, "subBrandId"),
		Images:             images,
		DealerPricing:      dealer,
		DistributorPricing: distributor,
	})
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("model", "create")
	c.feed.Push()
	response.Created(w, map[string]string{"id": id})
}

func (c *ModelController) Update(w http.ResponseWriter, r *http.Request) {
	if err := bind.Multipart(r); err != nil {
		response.FromError(w, r, err)
		return
	}

	in := services.UpdateModelInput{
		Name:       bind.FormValue(r, "name"),
		SubBrandID: bind.FormValue(r, "subBrandId"),
	}

	if _, ok := r.MultipartForm.Value["description"]; ok {
		desc := bind.FormValue(r, "description")
		in.Description = &desc
	}

	images, replace, err := c.imagesForUpdate(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	if replace {
		in.Images = &images
	}

	if in.DealerPricing, err = bind.FormFloat(r, "dealerPricing"); err != nil {
		response.FromError(w, r, err)
		return
	}
	if in.DistributorPricing, err = bind.FormFloat(r, "distributorPricing"); err != nil {
		response.FromError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := c.models.Update(r.Context(), id, in); err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("model", "update")
	c.feed.Push()
	response.Success(w, map[string]string{"id": id})
}

func (c *ModelController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.models.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("model", "delete")
	c.feed.Push()
	response.Success(w, map[string]bool{"deleted": true})
}

// uploadImages stores every non-empty "images" file part and returns the
// resulting URLs.
func (c *ModelController) uploadImages(r *http.Request) ([]string, error) {
	var urls []string
	for _, header := range bind.FormFiles(r, "images") {
		url, err := uploadHeader("models", header)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// imagesForUpdate decides the gallery for an update request. The gallery is
// replaced only when the request mentions images at all: new uploads,
// "existing_images" values, or both. A request naming neither keeps the
// stored gallery; "existing_images" present with only blank values and no
// uploads clears it.
func (c *ModelController) imagesForUpdate(r *http.Request) ([]string, bool, error) {
	existing, mentioned := r.MultipartForm.Value["existing_images"]
	uploaded, err := c.uploadImages(r)
	if err != nil {
		return nil, false, err
	}
	if !mentioned && len(uploaded) == 0 {
		return nil, false, nil
	}

	gallery := []string{}
	for _, url := range existing {
		if url = strings.TrimSpace(url); url != "" {
			gallery = append(gallery, url)
		}
	}
	return append(gallery, uploaded...), true, nil
}
