package services_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/metrics"
)

type catalogFixture struct {
	brands    *fakeBrands
	subBrands *fakeSubBrands
	models    *fakeModels

	brandSvc    *services.BrandService
	subBrandSvc *services.SubBrandService
	modelSvc    *services.ModelService
	statsSvc    *services.StatsService
}

func newFixture() *catalogFixture {
	brands := newFakeBrands()
	subBrands := newFakeSubBrands()
	mods := newFakeModels()
	tx := fakeTx{}

	return &catalogFixture{
		brands:      brands,
		subBrands:   subBrands,
		models:      mods,
		brandSvc:    services.NewBrandService(brands, subBrands, mods, tx),
		subBrandSvc: services.NewSubBrandService(subBrands, brands, mods, tx),
		modelSvc:    services.NewModelService(mods, subBrands, brands),
		statsSvc:    services.NewStatsService(brands, subBrands, mods),
	}
}

func TestBrandCreateDerivesSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.brandSvc.Create(ctx, "  Tata   Motors  ", "")
	require.NoError(t, err)

	brand, err := f.brandSvc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Tata   Motors", brand.Name)
	assert.Equal(t, "tata-motors", brand.Slug)
}

func TestBrandCreateRejectsEmptyName(t *testing.T) {
	f := newFixture()

	_, err := f.brandSvc.Create(context.Background(), "   ", "")
	assert.True(t, errs.IsValidation(err))
}

func TestBrandCreateConflictsOnNormalizedName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.brandSvc.Create(ctx, "Tata Motors", "")
	require.NoError(t, err)

	// Different casing and spacing normalize to the same slug.
	_, err = f.brandSvc.Create(ctx, "TATA   motors", "")
	assert.True(t, errs.IsDuplicate(err))
}

func TestBrandWithPunctuationOnlyNameFallsBackToExactMatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.brandSvc.Create(ctx, "!!!", "")
	require.NoError(t, err)

	brand, err := f.brandSvc.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, brand.Slug)

	_, err = f.brandSvc.Create(ctx, "!!!", "")
	assert.True(t, errs.IsDuplicate(err))

	// A different punctuation-only name is allowed even though both slugs
	// are empty.
	_, err = f.brandSvc.Create(ctx, "???", "")
	assert.NoError(t, err)
}

func TestBrandUpdateLogoSemantics(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.brandSvc.Create(ctx, "Mahindra", "https://cdn.example.com/m.png")
	require.NoError(t, err)

	// Nil logo keeps the stored one.
	require.NoError(t, f.brandSvc.Update(ctx, id, "Mahindra Auto", nil))
	brand, _ := f.brandSvc.Get(ctx, id)
	assert.Equal(t, "mahindra-auto", brand.Slug)
	assert.Equal(t, "https://cdn.example.com/m.png", brand.Logo)

	// Present empty string clears it.
	empty := ""
	require.NoError(t, f.brandSvc.Update(ctx, id, "Mahindra Auto", &empty))
	brand, _ = f.brandSvc.Get(ctx, id)
	assert.Empty(t, brand.Logo)
}

func TestBrandUpdateRenameExcludesSelf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)

	// Renaming to a normalized variant of its own name is not a conflict.
	assert.NoError(t, f.brandSvc.Update(ctx, id, "MAHINDRA", nil))

	_, err = f.brandSvc.Create(ctx, "Kia", "")
	require.NoError(t, err)
	err = f.brandSvc.Update(ctx, id, "kia", nil)
	assert.True(t, errs.IsDuplicate(err))
}

func TestBrandDeleteCascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	brandID, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)
	otherID, err := f.brandSvc.Create(ctx, "Tata Motors", "")
	require.NoError(t, err)

	suvID, err := f.subBrandSvc.Create(ctx, "SUV", brandID)
	require.NoError(t, err)
	evID, err := f.subBrandSvc.Create(ctx, "Electric", brandID)
	require.NoError(t, err)
	otherSubID, err := f.subBrandSvc.Create(ctx, "SUV", otherID)
	require.NoError(t, err)

	for _, name := range []string{"XUV700", "Scorpio N"} {
		_, err := f.modelSvc.Create(ctx, services.CreateModelInput{Name: name, SubBrandID: suvID})
		require.NoError(t, err)
	}
	_, err = f.modelSvc.Create(ctx, services.CreateModelInput{Name: "BE 6", SubBrandID: evID})
	require.NoError(t, err)
	_, err = f.modelSvc.Create(ctx, services.CreateModelInput{Name: "Harrier", SubBrandID: otherSubID})
	require.NoError(t, err)

	require.NoError(t, f.brandSvc.Delete(ctx, brandID))

	stats, err := f.statsSvc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Brands)
	assert.Equal(t, int64(1), stats.SubBrands)
	assert.Equal(t, int64(1), stats.Models)

	// The sibling brand's tree is untouched.
	remaining, err := f.modelSvc.ListBySubBrand(ctx, otherSubID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Harrier", remaining[0].Name)
}

func TestBrandDeleteIsIdempotent(t *testing.T) {
	f := newFixture()

	// Well-formed but absent id deletes cleanly.
	assert.NoError(t, f.brandSvc.Delete(context.Background(), "64b000000000000000000000"))
}

func TestBrandListCountsCacheMisses(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)

	// No Redis in tests, so every listing is a miss and must say so.
	before := testutil.ToFloat64(metrics.CacheMisses)
	hitsBefore := testutil.ToFloat64(metrics.CacheHits)

	brands, err := f.brandSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CacheMisses))
	assert.Equal(t, hitsBefore, testutil.ToFloat64(metrics.CacheHits))
}

func TestBrandGetBySlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	brandID, err := f.brandSvc.Create(ctx, "Tata Motors", "")
	require.NoError(t, err)
	_, err = f.subBrandSvc.Create(ctx, "SUV", brandID)
	require.NoError(t, err)
	_, err = f.subBrandSvc.Create(ctx, "Hatchback", brandID)
	require.NoError(t, err)

	brand, subBrands, err := f.brandSvc.GetBySlug(ctx, "tata-motors")
	require.NoError(t, err)
	assert.Equal(t, "Tata Motors", brand.Name)
	require.Len(t, subBrands, 2)
	// Name ascending.
	assert.Equal(t, "Hatchback", subBrands[0].Name)
	assert.Equal(t, "SUV", subBrands[1].Name)

	// Slug lookup is exact; the original mixed-case name does not match.
	_, _, err = f.brandSvc.GetBySlug(ctx, "Tata-Motors")
	assert.True(t, errs.IsNotFound(err))
}
