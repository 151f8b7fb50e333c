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
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/database"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

// BrandRepository handles the brands collection.
type BrandRepository struct {
	col *mongo.Collection
}

func NewBrandRepository(db *database.Mongo) *BrandRepository {
	return &BrandRepository{col: db.Brands()}
}

// All returns every brand ordered by name ascending.
func (r *BrandRepository) All(ctx context.Context) ([]models.Brand, error) {
	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errs.Infrastructure("brands.find", err)
	}

	brands := []models.Brand{}
	if err := cur.All(ctx, &brands); err != nil {
		return nil, errs.Infrastructure("brands.decode", err)
	}
	return brands, nil
}

// FindByID looks a brand up by its hex object id.
func (r *BrandRepository) FindByID(ctx context.Context, id string) (models.Brand, error) {
	oid, err := objectID("brand", id)
	if err != nil {
		return models.Brand{}, err
	}

	var brand models.Brand
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&brand)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Brand{}, errs.NotFound("brand")
	}
	if err != nil {
		return models.Brand{}, errs.Infrastructure("brands.findOne", err)
	}
	return brand, nil
}

// FindBySlug looks a brand up by the exact stored slug. The key is not
// re-normalized; callers pass the route segment verbatim.
func (r *BrandRepository) FindBySlug(ctx context.Context, slug string) (models.Brand, error) {
	var brand models.Brand
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&brand)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Brand{}, errs.NotFound("brand")
	}
	if err != nil {
		return models.Brand{}, errs.Infrastructure("brands.findOne", err)
	}
	return brand, nil
}

// ExistsSlug reports whether another brand already normalizes to slug.
// excludeID (optional) skips the record being updated.
func (r *BrandRepository) ExistsSlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.exists(ctx, bson.M{"slug": slug}, excludeID)
}

// ExistsName reports whether another brand carries exactly this name. Used
// as the uniqueness scope for names that normalize to an empty slug.
func (r *BrandRepository) ExistsName(ctx context.Context, name, excludeID string) (bool, error) {
	return r.exists(ctx, bson.M{"name": name}, excludeID)
}

func (r *BrandRepository) exists(ctx context.Context, filter bson.M, excludeID string) (bool, error) {
	if excludeID != "" {
		oid, err := objectID("brand", excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, errs.Infrastructure("brands.count", err)
	}
	return n > 0, nil
}

// Insert persists a new brand and returns its id. The unique name index is
// the concurrent-write backstop behind the service-level check.
func (r *BrandRepository) Insert(ctx context.Context, brand *models.Brand) (string, error) {
	now := time.Now().UTC()
	brand.ID = primitive.NewObjectIDFromTimestamp(now)
	brand.CreatedAt = now
	brand.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, brand); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errs.Duplicate("brand name already exists")
		}
		return "", errs.Infrastructure("brands.insert", err)
	}
	return brand.ID.Hex(), nil
}

// Update replaces the stored record. Missing id is NotFound.
func (r *BrandRepository) Update(ctx context.Context, brand models.Brand) error {
	brand.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": brand.ID}, brand)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Duplicate("brand name already exists")
		}
		return errs.Infrastructure("brands.replace", err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("brand")
	}
	return nil
}

// Delete removes the brand. Deleting an absent id is not an error.
func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID("brand", id)
	if err != nil {
		return err
	}
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errs.Infrastructure("brands.delete", err)
	}
	return nil
}

// Count returns the total number of brands.
func (r *BrandRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errs.Infrastructure("brands.count", err)
	}
	return n, nil
}
