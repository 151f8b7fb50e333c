package services

import (
	"context"
	"strings"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/collection"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/slug"
)

// CreateModelInput carries everything a new model needs. Images are already
// uploaded URLs; the controller owns the file plumbing.
type CreateModelInput struct {
	Name               string
	Description        string
	SubBrandID         string
	Images             []string
	DealerPricing      *float64
	DistributorPricing *float64
}

// UpdateModelInput distinguishes "field absent" from "present but empty":
// nil pointers leave the stored value untouched, a present empty value
// clears it (an empty Images slice clears the gallery).
type UpdateModelInput struct {
	Name               string
	Description        *string
	SubBrandID         string
	Images             *[]string
	DealerPricing      *float64
	DistributorPricing *float64
}

// ModelService implements the model operations and the enriched read views.
type ModelService struct {
	models    ModelRepo
	subBrands SubBrandRepo
	brands    BrandRepo
}

func NewModelService(models ModelRepo, subBrands SubBrandRepo, brands BrandRepo) *ModelService {
	return &ModelService{models: models, subBrands: subBrands, brands: brands}
}

// List is the admin view: every model ordered by name, enriched with its
// sub-brand's name and, transitively, its brand's name.
func (s *ModelService) List(ctx context.Context) ([]models.EnrichedModel, error) {
	mods, err := s.models.All(ctx)
	if err != nil {
		return nil, err
	}

	subBrands, err := s.subBrands.All(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := s.brands.All(ctx)
	if err != nil {
		return nil, err
	}

	brandNames := brandNameIndex(brands)
	subBrandsByID := collection.KeyBy(subBrands, func(sb models.SubBrand) string { return sb.ID.Hex() })

	return collection.Map(mods, func(m models.Model) models.EnrichedModel {
		enriched := models.EnrichedModel{Model: m}
		if sb, ok := subBrandsByID[m.SubBrandID.Hex()]; ok {
			enriched.SubBrandName = sb.Name
			enriched.BrandName = brandNames[sb.BrandID.Hex()]
		}
		return enriched
	}), nil
}

// ListBySubBrand returns one sub-brand's models, ordered by name.
func (s *ModelService) ListBySubBrand(ctx context.Context, subBrandID string) ([]models.Model, error) {
	return s.models.BySubBrand(ctx, subBrandID)
}

// GetDetailBySlug resolves the public detail page: the model plus both
// ancestors as full objects for the breadcrumb. A model whose sub-brand or
// brand cannot be resolved is reported as not found.
func (s *ModelService) GetDetailBySlug(ctx context.Context, modelSlug string) (models.ModelDetail, error) {
	model, err := s.models.FindBySlug(ctx, modelSlug)
	if err != nil {
		return models.ModelDetail{}, err
	}

	subBrand, err := s.subBrands.FindByID(ctx, model.SubBrandID.Hex())
	if err != nil {
		return models.ModelDetail{}, orphanAsMissing(err)
	}
	brand, err := s.brands.FindByID(ctx, subBrand.BrandID.Hex())
	if err != nil {
		return models.ModelDetail{}, orphanAsMissing(err)
	}

	return models.ModelDetail{Model: model, SubBrand: subBrand, Brand: brand}, nil
}

// orphanAsMissing hides dangling parent references (possible after a crashed
// non-transactional cascade) behind a plain model NotFound.
func orphanAsMissing(err error) error {
	if errs.IsNotFound(err) {
		return errs.NotFound("model")
	}
	return err
}

// Create validates required fields and the parent reference, derives the
// slug, checks per-sub-brand uniqueness, and persists.
func (s *ModelService) Create(ctx context.Context, in CreateModelInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", errs.Validation("model name is required")
	}
	if in.SubBrandID == "" {
		return "", errs.Validation("sub-brand id is required")
	}

	subBrand, err := s.subBrands.FindByID(ctx, in.SubBrandID)
	if err != nil {
		return "", requireParent(err, "sub-brand")
	}

	sl := slug.Make(name)
	if sl == "" {
		return "", errs.Validation("model name must contain at least one letter or digit")
	}

	if err := validateImages(in.Images); err != nil {
		return "", err
	}
	if err := validatePricing("dealer pricing", in.DealerPricing); err != nil {
		return "", err
	}
	if err := validatePricing("distributor pricing", in.DistributorPricing); err != nil {
		return "", err
	}

	dup, err := s.models.ExistsSlugInSubBrand(ctx, sl, in.SubBrandID, "")
	if err != nil {
		return "", err
	}
	if dup {
		return "", errs.Duplicate("model name already exists for this sub-brand")
	}

	model := models.Model{
		Name:               name,
		Slug:               sl,
		Description:        strings.TrimSpace(in.Description),
		SubBrandID:         subBrand.ID,
		Images:             in.Images,
		DealerPricing:      in.DealerPricing,
		DistributorPricing: in.DistributorPricing,
	}
	return s.models.Insert(ctx, &model)
}

// Update renames and/or moves the model; optional fields follow the
// absent-vs-empty contract of UpdateModelInput.
func (s *ModelService) Update(ctx context.Context, id string, in UpdateModelInput) error {
	model, err := s.models.FindByID(ctx, id)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return errs.Validation("model name is required")
	}
	if in.SubBrandID == "" {
		return errs.Validation("sub-brand id is required")
	}

	subBrand, err := s.subBrands.FindByID(ctx, in.SubBrandID)
	if err != nil {
		return requireParent(err, "sub-brand")
	}

	sl := slug.Make(name)
	if sl == "" {
		return errs.Validation("model name must contain at least one letter or digit")
	}

	dup, err := s.models.ExistsSlugInSubBrand(ctx, sl, in.SubBrandID, id)
	if err != nil {
		return err
	}
	if dup {
		return errs.Duplicate("model name already exists for this sub-brand")
	}

	model.Name = name
	model.Slug = sl
	model.SubBrandID = subBrand.ID
	if in.Description != nil {
		model.Description = strings.TrimSpace(*in.Description)
	}
	if in.Images != nil {
		if err := validateImages(*in.Images); err != nil {
			return err
		}
		model.Images = *in.Images
	}
	if in.DealerPricing != nil {
		if err := validatePricing("dealer pricing", in.DealerPricing); err != nil {
			return err
		}
		model.DealerPricing = in.DealerPricing
	}
	if in.DistributorPricing != nil {
		if err := validatePricing("distributor pricing", in.DistributorPricing); err != nil {
			return err
		}
		model.DistributorPricing = in.DistributorPricing
	}

	return s.models.Update(ctx, model)
}

// Delete removes the model. Models are leaves; nothing cascades.
func (s *ModelService) Delete(ctx context.Context, id string) error {
	return s.models.Delete(ctx, id)
}
