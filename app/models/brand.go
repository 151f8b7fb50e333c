package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand is a top-level catalog entity (a car manufacturer). Its name is
// globally unique; the slug is derived from the name on every write that
// changes it.
type Brand struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	Logo      string             `bson:"logo,omitempty" json:"logo,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
