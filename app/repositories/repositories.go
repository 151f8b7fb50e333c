// Package repositories implements persistence for the catalog entities
// (MongoDB) and admin accounts (SQL). Repositories translate driver errors
// into the pkg/errs taxonomy so callers never see driver types.
package repositories

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
)

// objectID parses a caller-supplied hex id. A malformed id is a validation
// error (400), distinct from a well-formed id that matches nothing (404).
func objectID(entity, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.Validation("invalid %s id", entity)
	}
	return oid, nil
}
