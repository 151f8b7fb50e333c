package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

func TestSubBrandCreateValidatesParent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Well-formed id that matches no brand: a caller mistake, not a 404.
	_, err := f.subBrandSvc.Create(ctx, "SUV", "64b000000000000000000000")
	assert.True(t, errs.IsValidation(err))

	_, err = f.subBrandSvc.Create(ctx, "SUV", "")
	assert.True(t, errs.IsValidation(err))
}

func TestSubBrandUniquenessIsPerBrand(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mahindra, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)
	tata, err := f.brandSvc.Create(ctx, "Tata Motors", "")
	require.NoError(t, err)

	_, err = f.subBrandSvc.Create(ctx, "SUV", mahindra)
	require.NoError(t, err)

	// Same name under a different brand is fine.
	_, err = f.subBrandSvc.Create(ctx, "SUV", tata)
	assert.NoError(t, err)

	// A normalized variant under the same brand conflicts.
	_, err = f.subBrandSvc.Create(ctx, "  suv ", mahindra)
	assert.True(t, errs.IsDuplicate(err))
}

func TestSubBrandRejectsEmptySlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	brandID, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)

	_, err = f.subBrandSvc.Create(ctx, "!!!", brandID)
	assert.True(t, errs.IsValidation(err))
}

func TestSubBrandUpdateReassignsBrand(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mahindra, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)
	tata, err := f.brandSvc.Create(ctx, "Tata Motors", "")
	require.NoError(t, err)

	id, err := f.subBrandSvc.Create(ctx, "SUV", mahindra)
	require.NoError(t, err)
	_, err = f.subBrandSvc.Create(ctx, "SUV", tata)
	require.NoError(t, err)

	// Moving into a brand that already has an "SUV" line conflicts.
	err = f.subBrandSvc.Update(ctx, id, "SUV", tata)
	assert.True(t, errs.IsDuplicate(err))

	// Renaming in place is fine and rederives the slug.
	require.NoError(t, f.subBrandSvc.Update(ctx, id, "Electric SUV", mahindra))
	subBrand, _, err := f.subBrandSvc.GetBySlug(ctx, "electric-suv")
	require.NoError(t, err)
	assert.Equal(t, "Electric SUV", subBrand.Name)
}

func TestSubBrandDeleteCascadesOwnModelsOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	brandID, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)
	suv, err := f.subBrandSvc.Create(ctx, "SUV", brandID)
	require.NoError(t, err)
	ev, err := f.subBrandSvc.Create(ctx, "Electric", brandID)
	require.NoError(t, err)

	_, err = f.modelSvc.Create(ctx, services.CreateModelInput{Name: "XUV700", SubBrandID: suv})
	require.NoError(t, err)
	_, err = f.modelSvc.Create(ctx, services.CreateModelInput{Name: "BE 6", SubBrandID: ev})
	require.NoError(t, err)

	require.NoError(t, f.subBrandSvc.Delete(ctx, suv))

	stats, err := f.statsSvc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.SubBrands)
	assert.Equal(t, int64(1), stats.Models)

	survivors, err := f.modelSvc.ListBySubBrand(ctx, ev)
	require.NoError(t, err)
	require.Len(t, survivors, 1)
	assert.Equal(t, "BE 6", survivors[0].Name)
}

func TestSubBrandListEnrichesBrandName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	brandID, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)
	_, err = f.subBrandSvc.Create(ctx, "SUV", brandID)
	require.NoError(t, err)

	enriched, err := f.subBrandSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, enriched, 1)
	assert.Equal(t, "SUV", enriched[0].Name)
	assert.Equal(t, "Mahindra", enriched[0].BrandName)
}
