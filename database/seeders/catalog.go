package seeders

import (
	"context"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/repositories"
	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

func init() {
	Register("catalog", SeedCatalog)
}

// sample data mirrors a small Indian passenger-vehicle lineup, enough to
// exercise the full hierarchy and the enriched listings.
var sampleCatalog = []struct {
	brand     string
	subBrands []struct {
		name   string
		models []string
	}
}{
	{
		brand: "Mahindra",
		subBrands: []struct {
			name   string
			models []string
		}{
			{name: "SUV", models: []string{"XUV700", "Scorpio N", "Thar"}},
			{name: "Electric", models: []string{"XUV400 EV", "BE 6"}},
		},
	},
	{
		brand: "Tata Motors",
		subBrands: []struct {
			name   string
			models []string
		}{
			{name: "SUV", models: []string{"Harrier", "Safari", "Nexon"}},
			{name: "Hatchback", models: []string{"Tiago", "Altroz"}},
		},
	},
	{
		brand: "Maruti Suzuki",
		subBrands: []struct {
			name   string
			models []string
		}{
			{name: "Arena", models: []string{"Swift", "Brezza"}},
			{name: "Nexa", models: []string{"Grand Vitara", "Baleno", "Jimny"}},
		},
	},
}

// SeedCatalog inserts the sample hierarchy through the service layer so
// slugs, validation, and uniqueness apply. Re-running skips entries that
// already exist.
func SeedCatalog(ctx context.Context, deps Deps) error {
	brandRepo := repositories.NewBrandRepository(deps.Mongo)
	subBrandRepo := repositories.NewSubBrandRepository(deps.Mongo)
	modelRepo := repositories.NewModelRepository(deps.Mongo)

	brands := services.NewBrandService(brandRepo, subBrandRepo, modelRepo, deps.Mongo)
	subBrands := services.NewSubBrandService(subBrandRepo, brandRepo, modelRepo, deps.Mongo)
	modelSvc := services.NewModelService(modelRepo, subBrandRepo, brandRepo)

	for _, b := range sampleCatalog {
		brandID, err := brands.Create(ctx, b.brand, "")
		if errs.IsDuplicate(err) {
			continue
		}
		if err != nil {
			return err
		}

		for _, sb := range b.subBrands {
			subBrandID, err := subBrands.Create(ctx, sb.name, brandID)
			if errs.IsDuplicate(err) {
				continue
			}
			if err != nil {
				return err
			}

			for _, m := range sb.models {
				_, err := modelSvc.Create(ctx, services.CreateModelInput{
					Name:       m,
					SubBrandID: subBrandID,
				})
				if err != nil && !errs.IsDuplicate(err) {
					return err
				}
			}
		}
	}
	return nil
}
