package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubBrand is a vehicle line owned by exactly one Brand. The (name, brandId)
// pair is unique: the same line name may exist under different brands but
// never twice under the same one.
type SubBrand struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	BrandID   primitive.ObjectID `bson:"brandId" json:"brandId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnrichedSubBrand is the admin list view: a SubBrand plus its owning
// Brand's name. Computed at read time, never persisted.
type EnrichedSubBrand struct {
	SubBrand
	BrandName string `json:"brandName"`
}
