package services_test

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

// In-memory repository fakes. They mirror the Mongo repositories' observable
// behavior: name-ascending listings, NotFound on absent ids, idempotent
// deletes.

type fakeBrands struct {
	items map[string]models.Brand
}

func newFakeBrands() *fakeBrands {
	return &fakeBrands{items: map[string]models.Brand{}}
}

func (f *fakeBrands) All(_ context.Context) ([]models.Brand, error) {
	out := make([]models.Brand, 0, len(f.items))
	for _, b := range f.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeBrands) FindByID(_ context.Context, id string) (models.Brand, error) {
	b, ok := f.items[id]
	if !ok {
		return models.Brand{}, errs.NotFound("brand")
	}
	return b, nil
}

func (f *fakeBrands) FindBySlug(_ context.Context, slug string) (models.Brand, error) {
	for _, b := range f.items {
		if b.Slug == slug {
			return b, nil
		}
	}
	return models.Brand{}, errs.NotFound("brand")
}

func (f *fakeBrands) ExistsSlug(_ context.Context, slug, excludeID string) (bool, error) {
	for id, b := range f.items {
		if b.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBrands) ExistsName(_ context.Context, name, excludeID string) (bool, error) {
	for id, b := range f.items {
		if b.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBrands) Insert(_ context.Context, brand *models.Brand) (string, error) {
	brand.ID = primitive.NewObjectID()
	f.items[brand.ID.Hex()] = *brand
	return brand.ID.Hex(), nil
}

func (f *fakeBrands) Update(_ context.Context, brand models.Brand) error {
	if _, ok := f.items[brand.ID.Hex()]; !ok {
		return errs.NotFound("brand")
	}
	f.items[brand.ID.Hex()] = brand
	return nil
}

func (f *fakeBrands) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeBrands) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeSubBrands struct {
	items map[string]models.SubBrand
}

func newFakeSubBrands() *fakeSubBrands {
	return &fakeSubBrands{items: map[string]models.SubBrand{}}
}

func (f *fakeSubBrands) All(_ context.Context) ([]models.SubBrand, error) {
	out := make([]models.SubBrand, 0, len(f.items))
	for _, sb := range f.items {
		out = append(out, sb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeSubBrands) ByBrand(ctx context.Context, brandID string) ([]models.SubBrand, error) {
	all, _ := f.All(ctx)
	var out []models.SubBrand
	for _, sb := range all {
		if sb.BrandID.Hex() == brandID {
			out = append(out, sb)
		}
	}
	return out, nil
}

func (f *fakeSubBrands) IDsByBrand(ctx context.Context, brandID string) ([]string, error) {
	subBrands, _ := f.ByBrand(ctx, brandID)
	ids := make([]string, len(subBrands))
	for i, sb := range subBrands {
		ids[i] = sb.ID.Hex()
	}
	return ids, nil
}

func (f *fakeSubBrands) FindByID(_ context.Context, id string) (models.SubBrand, error) {
	sb, ok := f.items[id]
	if !ok {
		return models.SubBrand{}, errs.NotFound("sub-brand")
	}
	return sb, nil
}

func (f *fakeSubBrands) FindBySlug(_ context.Context, slug string) (models.SubBrand, error) {
	for _, sb := range f.items {
		if sb.Slug == slug {
			return sb, nil
		}
	}
	return models.SubBrand{}, errs.NotFound("sub-brand")
}

func (f *fakeSubBrands) ExistsSlugInBrand(_ context.Context, slug, brandID, excludeID string) (bool, error) {
	for id, sb := range f.items {
		if sb.Slug == slug && sb.BrandID.Hex() == brandID && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubBrands) Insert(_ context.Context, subBrand *models.SubBrand) (string, error) {
	subBrand.ID = primitive.NewObjectID()
	f.items[subBrand.ID.Hex()] = *subBrand
	return subBrand.ID.Hex(), nil
}

func (f *fakeSubBrands) Update(_ context.Context, subBrand models.SubBrand) error {
	if _, ok := f.items[subBrand.ID.Hex()]; !ok {
		return errs.NotFound("sub-brand")
	}
	f.items[subBrand.ID.Hex()] = subBrand
	return nil
}

func (f *fakeSubBrands) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeSubBrands) DeleteByBrand(_ context.Context, brandID string) error {
	for id, sb := range f.items {
		if sb.BrandID.Hex() == brandID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeSubBrands) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeModels struct {
	items map[string]models.Model
}

func newFakeModels() *fakeModels {
	return &fakeModels{items: map[string]models.Model{}}
}

func (f *fakeModels) All(_ context.Context) ([]models.Model, error) {
	out := make([]models.Model, 0, len(f.items))
	for _, m := range f.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeModels) BySubBrand(ctx context.Context, subBrandID string) ([]models.Model, error) {
	all, _ := f.All(ctx)
	var out []models.Model
	for _, m := range all {
		if m.SubBrandID.Hex() == subBrandID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeModels) FindByID(_ context.Context, id string) (models.Model, error) {
	m, ok := f.items[id]
	if !ok {
		return models.Model{}, errs.NotFound("model")
	}
	return m, nil
}

func (f *fakeModels) FindBySlug(_ context.Context, slug string) (models.Model, error) {
	for _, m := range f.items {
		if m.Slug == slug {
			return m, nil
		}
	}
	return models.Model{}, errs.NotFound("model")
}

func (f *fakeModels) ExistsSlugInSubBrand(_ context.Context, slug, subBrandID, excludeID string) (bool, error) {
	for id, m := range f.items {
		if m.Slug == slug && m.SubBrandID.Hex() == subBrandID && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeModels) Insert(_ context.Context, model *models.Model) (string, error) {
	model.ID = primitive.NewObjectID()
	if model.Images == nil {
		model.Images = []string{}
	}
	f.items[model.ID.Hex()] = *model
	return model.ID.Hex(), nil
}

func (f *fakeModels) Update(_ context.Context, model models.Model) error {
	if _, ok := f.items[model.ID.Hex()]; !ok {
		return errs.NotFound("model")
	}
	f.items[model.ID.Hex()] = model
	return nil
}

func (f *fakeModels) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeModels) DeleteBySubBrand(_ context.Context, subBrandID string) error {
	for id, m := range f.items {
		if m.SubBrandID.Hex() == subBrandID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeModels) DeleteBySubBrands(ctx context.Context, subBrandIDs []string) error {
	for _, id := range subBrandIDs {
		if err := f.DeleteBySubBrand(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeModels) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

// fakeTx runs the callback directly; the fakes have no transactions.
type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
