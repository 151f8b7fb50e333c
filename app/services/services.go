// Package services holds the catalog's business rules: slug derivation on
// every name change, scoped uniqueness, cascading deletes, and the
// denormalized read projections. Services depend on narrow repository
// interfaces so the rules are testable without a running database.
package services

import (
	"context"
	"net/url"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

// BrandRepo is the persistence surface the services need for brands.
type BrandRepo interface {
	All(ctx context.Context) ([]models.Brand, error)
	FindByID(ctx context.Context, id string) (models.Brand, error)
	FindBySlug(ctx context.Context, slug string) (models.Brand, error)
	ExistsSlug(ctx context.Context, slug, excludeID string) (bool, error)
	ExistsName(ctx context.Context, name, excludeID string) (bool, error)
	Insert(ctx context.Context, brand *models.Brand) (string, error)
	Update(ctx context.Context, brand models.Brand) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// SubBrandRepo is the persistence surface for sub-brands.
type SubBrandRepo interface {
	All(ctx context.Context) ([]models.SubBrand, error)
	ByBrand(ctx context.Context, brandID string) ([]models.SubBrand, error)
	IDsByBrand(ctx context.Context, brandID string) ([]string, error)
	FindByID(ctx context.Context, id string) (models.SubBrand, error)
	FindBySlug(ctx context.Context, slug string) (models.SubBrand, error)
	ExistsSlugInBrand(ctx context.Context, slug, brandID, excludeID string) (bool, error)
	Insert(ctx context.Context, subBrand *models.SubBrand) (string, error)
	Update(ctx context.Context, subBrand models.SubBrand) error
	Delete(ctx context.Context, id string) error
	DeleteByBrand(ctx context.Context, brandID string) error
	Count(ctx context.Context) (int64, error)
}

// ModelRepo is the persistence surface for models.
type ModelRepo interface {
	All(ctx context.Context) ([]models.Model, error)
	BySubBrand(ctx context.Context, subBrandID string) ([]models.Model, error)
	FindByID(ctx context.Context, id string) (models.Model, error)
	FindBySlug(ctx context.Context, slug string) (models.Model, error)
	ExistsSlugInSubBrand(ctx context.Context, slug, subBrandID, excludeID string) (bool, error)
	Insert(ctx context.Context, model *models.Model) (string, error)
	Update(ctx context.Context, model models.Model) error
	Delete(ctx context.Context, id string) error
	DeleteBySubBrand(ctx context.Context, subBrandID string) error
	DeleteBySubBrands(ctx context.Context, subBrandIDs []string) error
	Count(ctx context.Context) (int64, error)
}

// Transactor wraps multi-collection work (the cascades) in a transaction
// when the store supports one. database.Mongo implements it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// validateImages checks that every image reference is a well-formed absolute
// http(s) URL, the only shape the detail page can render.
func validateImages(images []string) error {
	for _, img := range images {
		u, err := url.Parse(img)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errs.Validation("image %q is not a valid absolute URL", img)
		}
	}
	return nil
}

// validatePricing rejects negative channel prices.
func validatePricing(label string, p *float64) error {
	if p != nil && *p < 0 {
		return errs.Validation("%s must be non-negative", label)
	}
	return nil
}

// requireParent maps a missing parent lookup onto the create/update policy:
// a child may only reference a parent that exists, and referencing an absent
// one is a caller mistake (validation), not a 404 on the child route.
func requireParent(err error, entity string) error {
	if errs.IsNotFound(err) {
		return errs.Validation("referenced %s does not exist", entity)
	}
	return err
}
