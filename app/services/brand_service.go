package services

import (
	"context"
	"strings"
	"time"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/cache"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/metrics"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/slug"
)

// brandListCacheKey caches the public brand listing. Mutations forget it.
const (
	brandListCacheKey = "catalog:brands"
	brandListCacheTTL = time.Minute
)

// BrandService implements the brand operations, including the
// brand → sub-brand → model cascade on delete.
type BrandService struct {
	brands    BrandRepo
	subBrands SubBrandRepo
	models    ModelRepo
	tx        Transactor
}

func NewBrandService(brands BrandRepo, subBrands SubBrandRepo, models ModelRepo, tx Transactor) *BrandService {
	return &BrandService{brands: brands, subBrands: subBrands, models: models, tx: tx}
}

// List returns all brands ordered by name ascending.
func (s *BrandService) List(ctx context.Context) ([]models.Brand, error) {
	var cached []models.Brand
	if cache.Get(brandListCacheKey, &cached) {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	brands, err := s.brands.All(ctx)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(brandListCacheKey, brands, brandListCacheTTL)
	return brands, nil
}

// Get returns one brand by id.
func (s *BrandService) Get(ctx context.Context, id string) (models.Brand, error) {
	return s.brands.FindByID(ctx, id)
}

// GetBySlug resolves the public brand page: the brand plus its sub-brands.
func (s *BrandService) GetBySlug(ctx context.Context, brandSlug string) (models.Brand, []models.SubBrand, error) {
	brand, err := s.brands.FindBySlug(ctx, brandSlug)
	if err != nil {
		return models.Brand{}, nil, err
	}

	subBrands, err := s.subBrands.ByBrand(ctx, brand.ID.Hex())
	if err != nil {
		return models.Brand{}, nil, err
	}
	return brand, subBrands, nil
}

// Create derives the slug from the trimmed name, enforces global name
// uniqueness on the normalized form, and persists. Returns the new id.
func (s *BrandService) Create(ctx context.Context, name, logo string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.Validation("brand name is required")
	}

	sl := slug.Make(name)
	dup, err := s.brandTaken(ctx, name, sl, "")
	if err != nil {
		return "", err
	}
	if dup {
		return "", errs.Duplicate("brand name already exists")
	}

	brand := models.Brand{Name: name, Slug: sl, Logo: logo}
	id, err := s.brands.Insert(ctx, &brand)
	if err != nil {
		return "", err
	}

	_ = cache.Forget(brandListCacheKey)
	return id, nil
}

// Update renames the brand (rederiving the slug) and optionally replaces the
// logo. A nil logo keeps the stored one; a present empty string clears it.
func (s *BrandService) Update(ctx context.Context, id, name string, logo *string) error {
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errs.Validation("brand name is required")
	}

	sl := slug.Make(name)
	dup, err := s.brandTaken(ctx, name, sl, id)
	if err != nil {
		return err
	}
	if dup {
		return errs.Duplicate("brand name already exists")
	}

	brand.Name = name
	brand.Slug = sl
	if logo != nil {
		brand.Logo = *logo
	}

	if err := s.brands.Update(ctx, brand); err != nil {
		return err
	}
	_ = cache.Forget(brandListCacheKey)
	return nil
}

// brandTaken checks global uniqueness on the normalized name. A name that
// normalizes to an empty slug (all punctuation) is tolerated for brands and
// falls back to exact-name comparison.
func (s *BrandService) brandTaken(ctx context.Context, name, sl, excludeID string) (bool, error) {
	if sl == "" {
		return s.brands.ExistsName(ctx, name, excludeID)
	}
	return s.brands.ExistsSlug(ctx, sl, excludeID)
}

// Delete removes the brand and cascades over its sub-brands and their
// models: grand-children first, then children, then the brand itself, inside
// one transaction when the deployment supports it. Deleting an id that
// matches nothing still succeeds.
func (s *BrandService) Delete(ctx context.Context, id string) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		subBrandIDs, err := s.subBrands.IDsByBrand(ctx, id)
		if err != nil {
			return err
		}
		if err := s.models.DeleteBySubBrands(ctx, subBrandIDs); err != nil {
			return err
		}
		if err := s.subBrands.DeleteByBrand(ctx, id); err != nil {
			return err
		}
		return s.brands.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	_ = cache.Forget(brandListCacheKey)
	return nil
}
