package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/response"
)

// CatalogController serves the public, read-only browse API.
type CatalogController struct {
	brands    *services.BrandService
	subBrands *services.SubBrandService
	models    *services.ModelService
}

func NewCatalogController(brands *services.BrandService, subBrands *services.SubBrandService, models *services.ModelService) *CatalogController {
	return &CatalogController{brands: brands, subBrands: subBrands, models: models}
}

// Brands lists every brand ordered by name.
func (c *CatalogController) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := c.brands.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, brands)
}

// BrandBySlug resolves a brand page: the brand plus its sub-brands.
func (c *CatalogController) BrandBySlug(w http.ResponseWriter, r *http.Request) {
	brand, subBrands, err := c.brands.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"brand":     brand,
		"subBrands": subBrands,
	})
}

// SubBrandBySlug resolves a sub-brand page: the sub-brand plus its models.
func (c *CatalogController) SubBrandBySlug(w http.ResponseWriter, r *http.Request) {
	subBrand, mods, err := c.subBrands.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"subBrand": subBrand,
		"models":   mods,
	})
}

// ModelBySlug resolves a model detail page: the model plus its full
// sub-brand and brand for the breadcrumb.
func (c *CatalogController) ModelBySlug(w http.ResponseWriter, r *http.Request) {
	detail, err := c.models.GetDetailBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, detail)
}
