package services

import (
	"context"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
)

// StatsService computes the dashboard counts on demand. No caching: the
// numbers must equal the true collection counts after any write sequence.
type StatsService struct {
	brands    BrandRepo
	subBrands SubBrandRepo
	models    ModelRepo
}

func NewStatsService(brands BrandRepo, subBrands SubBrandRepo, models ModelRepo) *StatsService {
	return &StatsService{brands: brands, subBrands: subBrands, models: models}
}

// Stats returns the live counts of all three collections.
func (s *StatsService) Stats(ctx context.Context) (models.Stats, error) {
	brands, err := s.brands.Count(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	subBrands, err := s.subBrands.Count(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	mods, err := s.models.Count(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	return models.Stats{Brands: brands, SubBrands: subBrands, Models: mods}, nil
}
