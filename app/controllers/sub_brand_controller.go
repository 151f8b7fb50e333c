package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/bind"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/metrics"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/response"
)

// SubBrandController serves the admin sub-brand endpoints. Sub-brands carry
// no files, so writes are plain JSON.
type SubBrandController struct {
	subBrands *services.SubBrandService
	feed      *StatsFeed
}

func NewSubBrandController(subBrands *services.SubBrandService, feed *StatsFeed) *SubBrandController {
	return &SubBrandController{subBrands: subBrands, feed: feed}
}

type subBrandInput struct {
	Name    string `json:"name"    validate:"required,min=1,max=120"`
	BrandID string `json:"brandId" validate:"required"`
}

// List returns every sub-brand enriched with its brand's name, or only one
// brand's sub-brands when ?brandId= is given.
func (c *SubBrandController) List(w http.ResponseWriter, r *http.Request) {
	if brandID := r.URL.Query().Get("brandId"); brandID != "" {
		subBrands, err := c.subBrands.ListByBrand(r.Context(), brandID)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Success(w, subBrands)
		return
	}

	subBrands, err := c.subBrands.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, subBrands)
}

func (c *SubBrandController) Create(w http.ResponseWriter, r *http.Request) {
	var in subBrandInput
	fieldErrs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	id, err := c.subBrands.Create(r.Context(), in.Name, in.BrandID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("subbrand", "create")
	c.feed.Push()
	response.Created(w, map[string]string{"id": id})
}

func (c *SubBrandController) Update(w http.ResponseWriter, r *http.Request) {
	var in subBrandInput
	fieldErrs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	id := chi.URLParam(r, "id")
	if err := c.subBrands.Update(r.Context(), id, in.Name, in.BrandID); err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("subbrand", "update")
	c.feed.Push()
	response.Success(w, map[string]string{"id": id})
}

// Delete removes the sub-brand and its models.
func (c *SubBrandController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.subBrands.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, r, err)
		return
	}

	metrics.RecordWrite("subbrand", "delete")
	c.feed.Push()
	response.Success(w, map[string]bool{"deleted": true})
}
