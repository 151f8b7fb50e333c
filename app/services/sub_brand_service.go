package services

import (
	"context"
	"strings"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/collection"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/slug"
)

// SubBrandService implements the sub-brand operations and the
// sub-brand → model cascade.
type SubBrandService struct {
	subBrands SubBrandRepo
	brands    BrandRepo
	models    ModelRepo
	tx        Transactor
}

func NewSubBrandService(subBrands SubBrandRepo, brands BrandRepo, models ModelRepo, tx Transactor) *SubBrandService {
	return &SubBrandService{subBrands: subBrands, brands: brands, models: models, tx: tx}
}

// List is the admin view: every sub-brand ordered by name, each enriched
// with its owning brand's name. Computed at read time.
func (s *SubBrandService) List(ctx context.Context) ([]models.EnrichedSubBrand, error) {
	subBrands, err := s.subBrands.All(ctx)
	if err != nil {
		return nil, err
	}

	brands, err := s.brands.All(ctx)
	if err != nil {
		return nil, err
	}
	names := brandNameIndex(brands)

	return collection.Map(subBrands, func(sb models.SubBrand) models.EnrichedSubBrand {
		return models.EnrichedSubBrand{SubBrand: sb, BrandName: names[sb.BrandID.Hex()]}
	}), nil
}

// ListByBrand returns the sub-brands of one brand, ordered by name.
func (s *SubBrandService) ListByBrand(ctx context.Context, brandID string) ([]models.SubBrand, error) {
	return s.subBrands.ByBrand(ctx, brandID)
}

// GetBySlug resolves the public sub-brand page: the sub-brand plus its
// models ordered by name.
func (s *SubBrandService) GetBySlug(ctx context.Context, subBrandSlug string) (models.SubBrand, []models.Model, error) {
	subBrand, err := s.subBrands.FindBySlug(ctx, subBrandSlug)
	if err != nil {
		return models.SubBrand{}, nil, err
	}

	mods, err := s.models.BySubBrand(ctx, subBrand.ID.Hex())
	if err != nil {
		return models.SubBrand{}, nil, err
	}
	return subBrand, mods, nil
}

// Create validates that the referenced brand exists, derives the slug, and
// enforces per-brand uniqueness of the normalized name.
func (s *SubBrandService) Create(ctx context.Context, name, brandID string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.Validation("sub-brand name is required")
	}
	if brandID == "" {
		return "", errs.Validation("brand id is required")
	}

	brand, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		return "", requireParent(err, "brand")
	}

	sl := slug.Make(name)
	if sl == "" {
		return "", errs.Validation("sub-brand name must contain at least one letter or digit")
	}

	dup, err := s.subBrands.ExistsSlugInBrand(ctx, sl, brandID, "")
	if err != nil {
		return "", err
	}
	if dup {
		return "", errs.Duplicate("sub-brand name already exists for this brand")
	}

	subBrand := models.SubBrand{Name: name, Slug: sl, BrandID: brand.ID}
	return s.subBrands.Insert(ctx, &subBrand)
}

// Update may rename the sub-brand and/or reassign it to another brand. The
// slug is rederived from the new name and uniqueness is re-checked in the
// target brand's scope, excluding the record itself.
func (s *SubBrandService) Update(ctx context.Context, id, name, brandID string) error {
	subBrand, err := s.subBrands.FindByID(ctx, id)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errs.Validation("sub-brand name is required")
	}
	if brandID == "" {
		return errs.Validation("brand id is required")
	}

	brand, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		return requireParent(err, "brand")
	}

	sl := slug.Make(name)
	if sl == "" {
		return errs.Validation("sub-brand name must contain at least one letter or digit")
	}

	dup, err := s.subBrands.ExistsSlugInBrand(ctx, sl, brandID, id)
	if err != nil {
		return err
	}
	if dup {
		return errs.Duplicate("sub-brand name already exists for this brand")
	}

	subBrand.Name = name
	subBrand.Slug = sl
	subBrand.BrandID = brand.ID
	return s.subBrands.Update(ctx, subBrand)
}

// Delete removes the sub-brand and every model it owns, children first.
// Absent ids still succeed.
func (s *SubBrandService) Delete(ctx context.Context, id string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.models.DeleteBySubBrand(ctx, id); err != nil {
			return err
		}
		return s.subBrands.Delete(ctx, id)
	})
}

func brandNameIndex(brands []models.Brand) map[string]string {
	names := make(map[string]string, len(brands))
	for _, b := range brands {
		names[b.ID.Hex()] = b.Name
	}
	return names
}
