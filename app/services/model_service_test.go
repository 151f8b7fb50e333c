package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

func seedHierarchy(t *testing.T, f *catalogFixture) (brandID, subBrandID string) {
	t.Helper()
	ctx := context.Background()

	brandID, err := f.brandSvc.Create(ctx, "Mahindra", "")
	require.NoError(t, err)
	subBrandID, err = f.subBrandSvc.Create(ctx, "SUV", brandID)
	require.NoError(t, err)
	return brandID, subBrandID
}

func floatPtr(v float64) *float64 { return &v }

func TestModelCreateValidation(t *testing.T) {
	f := newFixture()
	_, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	cases := []struct {
		name string
		in   services.CreateModelInput
	}{
		{"empty name", services.CreateModelInput{SubBrandID: subBrandID}},
		{"missing sub-brand", services.CreateModelInput{Name: "XUV700"}},
		{"dangling sub-brand", services.CreateModelInput{Name: "XUV700", SubBrandID: "64b000000000000000000000"}},
		{"relative image url", services.CreateModelInput{Name: "XUV700", SubBrandID: subBrandID, Images: []string{"/uploads/x.png"}}},
		{"negative dealer price", services.CreateModelInput{Name: "XUV700", SubBrandID: subBrandID, DealerPricing: floatPtr(-1)}},
		{"punctuation-only name", services.CreateModelInput{Name: "!!!", SubBrandID: subBrandID}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.modelSvc.Create(ctx, tc.in)
			assert.True(t, errs.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestModelUniquenessIsPerSubBrand(t *testing.T) {
	f := newFixture()
	brandID, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	otherSub, err := f.subBrandSvc.Create(ctx, "Electric", brandID)
	require.NoError(t, err)

	_, err = f.modelSvc.Create(ctx, services.CreateModelInput{Name: "XUV700", SubBrandID: subBrandID})
	require.NoError(t, err)

	_, err = f.modelSvc.Create(ctx, services.CreateModelInput{Name: "xuv700", SubBrandID: subBrandID})
	assert.True(t, errs.IsDuplicate(err))

	_, err = f.modelSvc.Create(ctx, services.CreateModelInput{Name: "XUV700", SubBrandID: otherSub})
	assert.NoError(t, err)
}

func TestModelSlugKeepsParenthesizedTrim(t *testing.T) {
	f := newFixture()
	_, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	_, err := f.modelSvc.Create(ctx, services.CreateModelInput{Name: "XUV700 (MT)", SubBrandID: subBrandID})
	require.NoError(t, err)

	detail, err := f.modelSvc.GetDetailBySlug(ctx, "xuv700-mt")
	require.NoError(t, err)
	assert.Equal(t, "XUV700 (MT)", detail.Model.Name)
}

func TestModelDetailResolvesAncestors(t *testing.T) {
	f := newFixture()
	_, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	_, err := f.modelSvc.Create(ctx, services.CreateModelInput{
		Name:               "XUV700",
		Description:        "Flagship SUV",
		SubBrandID:         subBrandID,
		Images:             []string{"https://cdn.example.com/xuv/1.jpg"},
		DealerPricing:      floatPtr(1_500_000),
		DistributorPricing: floatPtr(1_400_000),
	})
	require.NoError(t, err)

	detail, err := f.modelSvc.GetDetailBySlug(ctx, "xuv700")
	require.NoError(t, err)
	assert.Equal(t, "XUV700", detail.Model.Name)
	assert.Equal(t, "SUV", detail.SubBrand.Name)
	assert.Equal(t, "Mahindra", detail.Brand.Name)
}

func TestModelDetailOrphanReportsNotFound(t *testing.T) {
	f := newFixture()
	_, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	_, err := f.modelSvc.Create(ctx, services.CreateModelInput{Name: "XUV700", SubBrandID: subBrandID})
	require.NoError(t, err)

	// Simulate a crashed cascade: the sub-brand vanishes, the model stays.
	require.NoError(t, f.subBrands.Delete(ctx, subBrandID))

	_, err = f.modelSvc.GetDetailBySlug(ctx, "xuv700")
	assert.True(t, errs.IsNotFound(err))
}

func TestModelListEnrichment(t *testing.T) {
	f := newFixture()
	_, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	_, err := f.modelSvc.Create(ctx, services.CreateModelInput{Name: "XUV700", SubBrandID: subBrandID})
	require.NoError(t, err)
	_, err = f.modelSvc.Create(ctx, services.CreateModelInput{Name: "Scorpio N", SubBrandID: subBrandID})
	require.NoError(t, err)

	enriched, err := f.modelSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, enriched, 2)
	// Name ascending.
	assert.Equal(t, "Scorpio N", enriched[0].Name)
	assert.Equal(t, "XUV700", enriched[1].Name)
	for _, m := range enriched {
		assert.Equal(t, "SUV", m.SubBrandName)
		assert.Equal(t, "Mahindra", m.BrandName)
	}
}

func TestModelUpdateImageSemantics(t *testing.T) {
	f := newFixture()
	_, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	id, err := f.modelSvc.Create(ctx, services.CreateModelInput{
		Name:       "XUV700",
		SubBrandID: subBrandID,
		Images:     []string{"https://cdn.example.com/xuv/1.jpg"},
	})
	require.NoError(t, err)

	// Nil images keep the stored gallery.
	require.NoError(t, f.modelSvc.Update(ctx, id, services.UpdateModelInput{
		Name:       "XUV700",
		SubBrandID: subBrandID,
	}))
	detail, err := f.modelSvc.GetDetailBySlug(ctx, "xuv700")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/xuv/1.jpg"}, detail.Model.Images)

	// A present empty slice clears it.
	empty := []string{}
	require.NoError(t, f.modelSvc.Update(ctx, id, services.UpdateModelInput{
		Name:       "XUV700",
		SubBrandID: subBrandID,
		Images:     &empty,
	}))
	detail, err = f.modelSvc.GetDetailBySlug(ctx, "xuv700")
	require.NoError(t, err)
	assert.Empty(t, detail.Model.Images)
}

func TestModelUpdateMoveAndPricing(t *testing.T) {
	f := newFixture()
	brandID, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	otherSub, err := f.subBrandSvc.Create(ctx, "Electric", brandID)
	require.NoError(t, err)

	id, err := f.modelSvc.Create(ctx, services.CreateModelInput{
		Name:          "XUV700",
		SubBrandID:    subBrandID,
		DealerPricing: floatPtr(1_500_000),
	})
	require.NoError(t, err)

	// Move to another sub-brand; pricing left nil stays as stored.
	require.NoError(t, f.modelSvc.Update(ctx, id, services.UpdateModelInput{
		Name:       "XUV700 EV",
		SubBrandID: otherSub,
	}))

	detail, err := f.modelSvc.GetDetailBySlug(ctx, "xuv700-ev")
	require.NoError(t, err)
	assert.Equal(t, otherSub, detail.Model.SubBrandID.Hex())
	require.NotNil(t, detail.Model.DealerPricing)
	assert.Equal(t, 1_500_000.0, *detail.Model.DealerPricing)

	// Negative pricing on update is rejected.
	err = f.modelSvc.Update(ctx, id, services.UpdateModelInput{
		Name:          "XUV700 EV",
		SubBrandID:    otherSub,
		DealerPricing: floatPtr(-5),
	})
	assert.True(t, errs.IsValidation(err))
}

func TestStatsCountsAllCollections(t *testing.T) {
	f := newFixture()
	_, subBrandID := seedHierarchy(t, f)
	ctx := context.Background()

	_, err := f.modelSvc.Create(ctx, services.CreateModelInput{Name: "XUV700", SubBrandID: subBrandID})
	require.NoError(t, err)

	stats, err := f.statsSvc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Brands)
	assert.Equal(t, int64(1), stats.SubBrands)
	assert.Equal(t, int64(1), stats.Models)
}
