package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Model is the leaf catalog entity (a specific trim/variant) owned by one
// SubBrand. It carries the ordered image gallery and optional channel
// pricing. The (name, subBrandId) pair is unique.
type Model struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name               string             `bson:"name" json:"name"`
	Slug               string             `bson:"slug" json:"slug"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	SubBrandID         primitive.ObjectID `bson:"subBrandId" json:"subBrandId"`
	Images             []string           `bson:"images" json:"images"`
	DealerPricing      *float64           `bson:"dealerPricing,omitempty" json:"dealerPricing,omitempty"`
	DistributorPricing *float64           `bson:"distributorPricing,omitempty" json:"distributorPricing,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnrichedModel is the admin list view: a Model plus the names of its
// SubBrand and (transitively) Brand.
type EnrichedModel struct {
	Model
	SubBrandName string `json:"subBrandName"`
	BrandName    string `json:"brandName"`
}

// ModelDetail is the public detail view. Both parents are resolved as full
// objects for breadcrumb rendering; a model whose parents cannot be resolved
// is treated as not found.
type ModelDetail struct {
	Model    Model    `json:"model"`
	SubBrand SubBrand `json:"subBrand"`
	Brand    Brand    `json:"brand"`
}

// Stats are the live collection counts shown on the admin dashboard.
type Stats struct {
	Brands    int64 `json:"brands"`
	SubBrands int64 `json:"subBrands"`
	Models    int64 `json:"models"`
}
