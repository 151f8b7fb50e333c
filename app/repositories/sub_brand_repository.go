package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/collection"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/database"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

// SubBrandRepository handles the subbrands collection.
type SubBrandRepository struct {
	col *mongo.Collection
}

func NewSubBrandRepository(db *database.Mongo) *SubBrandRepository {
	return &SubBrandRepository{col: db.SubBrands()}
}

var subBrandSort = options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

// All returns every sub-brand ordered by name ascending.
func (r *SubBrandRepository) All(ctx context.Context) ([]models.SubBrand, error) {
	return r.find(ctx, bson.D{})
}

// ByBrand returns the sub-brands owned by one brand, ordered by name.
func (r *SubBrandRepository) ByBrand(ctx context.Context, brandID string) ([]models.SubBrand, error) {
	oid, err := objectID("brand", brandID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"brandId": oid})
}

func (r *SubBrandRepository) find(ctx context.Context, filter interface{}) ([]models.SubBrand, error) {
	cur, err := r.col.Find(ctx, filter, subBrandSort)
	if err != nil {
		return nil, errs.Infrastructure("subbrands.find", err)
	}

	subBrands := []models.SubBrand{}
	if err := cur.All(ctx, &subBrands); err != nil {
		return nil, errs.Infrastructure("subbrands.decode", err)
	}
	return subBrands, nil
}

// IDsByBrand returns the ids of every sub-brand under brandID. The cascade
// engine uses this set to remove the grand-child models first.
func (r *SubBrandRepository) IDsByBrand(ctx context.Context, brandID string) ([]string, error) {
	subBrands, err := r.ByBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return collection.Map(subBrands, func(s models.SubBrand) string { return s.ID.Hex() }), nil
}

func (r *SubBrandRepository) FindByID(ctx context.Context, id string) (models.SubBrand, error) {
	oid, err := objectID("sub-brand", id)
	if err != nil {
		return models.SubBrand{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindBySlug looks up by the exact stored slug, no re-normalization.
func (r *SubBrandRepository) FindBySlug(ctx context.Context, slug string) (models.SubBrand, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *SubBrandRepository) findOne(ctx context.Context, filter bson.M) (models.SubBrand, error) {
	var subBrand models.SubBrand
	err := r.col.FindOne(ctx, filter).Decode(&subBrand)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SubBrand{}, errs.NotFound("sub-brand")
	}
	if err != nil {
		return models.SubBrand{}, errs.Infrastructure("subbrands.findOne", err)
	}
	return subBrand, nil
}

// ExistsSlugInBrand reports whether another sub-brand under the same brand
// normalizes to slug. excludeID skips the record being updated.
func (r *SubBrandRepository) ExistsSlugInBrand(ctx context.Context, slug, brandID, excludeID string) (bool, error) {
	brandOID, err := objectID("brand", brandID)
	if err != nil {
		return false, err
	}

	filter := bson.M{"slug": slug, "brandId": brandOID}
	if excludeID != "" {
		oid, err := objectID("sub-brand", excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, errs.Infrastructure("subbrands.count", err)
	}
	return n > 0, nil
}

// Insert persists a new sub-brand and returns its id.
func (r *SubBrandRepository) Insert(ctx context.Context, subBrand *models.SubBrand) (string, error) {
	now := time.Now().UTC()
	subBrand.ID = primitive.NewObjectIDFromTimestamp(now)
	subBrand.CreatedAt = now
	subBrand.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, subBrand); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errs.Duplicate("sub-brand name already exists for this brand")
		}
		return "", errs.Infrastructure("subbrands.insert", err)
	}
	return subBrand.ID.Hex(), nil
}

// Update replaces the stored record.
func (r *SubBrandRepository) Update(ctx context.Context, subBrand models.SubBrand) error {
	subBrand.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": subBrand.ID}, subBrand)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Duplicate("sub-brand name already exists for this brand")
		}
		return errs.Infrastructure("subbrands.replace", err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("sub-brand")
	}
	return nil
}

// Delete removes one sub-brand. Absent ids succeed (idempotent delete).
func (r *SubBrandRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID("sub-brand", id)
	if err != nil {
		return err
	}
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errs.Infrastructure("subbrands.delete", err)
	}
	return nil
}

// DeleteByBrand removes every sub-brand owned by brandID.
func (r *SubBrandRepository) DeleteByBrand(ctx context.Context, brandID string) error {
	oid, err := objectID("brand", brandID)
	if err != nil {
		return err
	}
	if _, err := r.col.DeleteMany(ctx, bson.M{"brandId": oid}); err != nil {
		return errs.Infrastructure("subbrands.deleteMany", err)
	}
	return nil
}

// Count returns the total number of sub-brands.
func (r *SubBrandRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errs.Infrastructure("subbrands.count", err)
	}
	return n, nil
}
