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

// ModelRepository handles the models collection.
type ModelRepository struct {
	col *mongo.Collection
}

func NewModelRepository(db *database.Mongo) *ModelRepository {
	return &ModelRepository{col: db.Models()}
}

var modelSort = options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

// All returns every model ordered by name ascending.
func (r *ModelRepository) All(ctx context.Context) ([]models.Model, error) {
	return r.find(ctx, bson.D{})
}

// BySubBrand returns the models owned by one sub-brand, ordered by name.
func (r *ModelRepository) BySubBrand(ctx context.Context, subBrandID string) ([]models.Model, error) {
	oid, err := objectID("sub-brand", subBrandID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"subBrandId": oid})
}

func (r *ModelRepository) find(ctx context.Context, filter interface{}) ([]models.Model, error) {
	cur, err := r.col.Find(ctx, filter, modelSort)
	if err != nil {
		return nil, errs.Infrastructure("models.find", err)
	}

	out := []models.Model{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.Infrastructure("models.decode", err)
	}
	return out, nil
}

func (r *ModelRepository) FindByID(ctx context.Context, id string) (models.Model, error) {
	oid, err := objectID("model", id)
	if err != nil {
		return models.Model{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindBySlug looks up by the exact stored slug, no re-normalization.
func (r *ModelRepository) FindBySlug(ctx context.Context, slug string) (models.Model, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *ModelRepository) findOne(ctx context.Context, filter bson.M) (models.Model, error) {
	var model models.Model
	err := r.col.FindOne(ctx, filter).Decode(&model)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Model{}, errs.NotFound("model")
	}
	if err != nil {
		return models.Model{}, errs.Infrastructure("models.findOne", err)
	}
	return model, nil
}

// ExistsSlugInSubBrand reports whether another model under the same
// sub-brand normalizes to slug. excludeID skips the record being updated.
func (r *ModelRepository) ExistsSlugInSubBrand(ctx context.Context, slug, subBrandID, excludeID string) (bool, error) {
	subBrandOID, err := objectID("sub-brand", subBrandID)
	if err != nil {
		return false, err
	}

	filter := bson.M{"slug": slug, "subBrandId": subBrandOID}
	if excludeID != "" {
		oid, err := objectID("model", excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, errs.Infrastructure("models.count", err)
	}
	return n > 0, nil
}

// Insert persists a new model and returns its id.
func (r *ModelRepository) Insert(ctx context.Context, model *models.Model) (string, error) {
	now := time.Now().UTC()
	model.ID = primitive.NewObjectIDFromTimestamp(now)
	model.CreatedAt = now
	model.UpdatedAt = now
	if model.Images == nil {
		model.Images = []string{}
	}

	if _, err := r.col.InsertOne(ctx, model); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errs.Duplicate("model name already exists for this sub-brand")
		}
		return "", errs.Infrastructure("models.insert", err)
	}
	return model.ID.Hex(), nil
}

// Update replaces the stored record.
func (r *ModelRepository) Update(ctx context.Context, model models.Model) error {
	model.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": model.ID}, model)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Duplicate("model name already exists for this sub-brand")
		}
		return errs.Infrastructure("models.replace", err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("model")
	}
	return nil
}

// Delete removes one model. Absent ids succeed (idempotent delete).
func (r *ModelRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID("model", id)
	if err != nil {
		return err
	}
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errs.Infrastructure("models.delete", err)
	}
	return nil
}

// DeleteBySubBrand removes every model owned by subBrandID.
func (r *ModelRepository) DeleteBySubBrand(ctx context.Context, subBrandID string) error {
	return r.DeleteBySubBrands(ctx, []string{subBrandID})
}

// DeleteBySubBrands removes every model whose owner is in the id set.
// The cascade engine calls this before deleting the sub-brands themselves.
func (r *ModelRepository) DeleteBySubBrands(ctx context.Context, subBrandIDs []string) error {
	if len(subBrandIDs) == 0 {
		return nil
	}

	oids := make([]primitive.ObjectID, 0, len(subBrandIDs))
	for _, id := range subBrandIDs {
		oid, err := objectID("sub-brand", id)
		if err != nil {
			return err
		}
		oids = append(oids, oid)
	}

	if _, err := r.col.DeleteMany(ctx, bson.M{"subBrandId": bson.M{"$in": oids}}); err != nil {
		return errs.Infrastructure("models.deleteMany", err)
	}
	return nil
}

// Count returns the total number of models.
func (r *ModelRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errs.Infrastructure("models.count", err)
	}
	return n, nil
}
