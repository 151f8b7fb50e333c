// Package errs defines the error taxonomy shared by the repository and
// service layers.
//
// Four kinds cover every failure the catalog can produce:
//
//	Validation     missing/malformed input, including malformed object ids
//	Duplicate      a uniqueness constraint was violated (scoped message)
//	NotFound       well-formed id or slug with no matching record
//	Infrastructure the database or object store is unreachable
//
// Controllers map kinds to HTTP status codes via response.FromError; services
// and repositories only ever wrap with these constructors.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Compare with errors.Is after any amount of %w wrapping.
var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicate      = errors.New("duplicate key")
	ErrNotFound       = errors.New("not found")
	ErrInfrastructure = errors.New("infrastructure failure")
)

// Validation returns a user-correctable input error.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrValidation, args)...)
}

// Duplicate returns a uniqueness violation carrying a scope-specific message,
// e.g. "brand name already exists".
func Duplicate(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrDuplicate, args)...)
}

// NotFound returns a missing-record error for the named entity.
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// Infrastructure wraps a persistence or asset-store failure. The underlying
// cause stays reachable through errors.Unwrap for operator logs.
func Infrastructure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInfrastructure, op, err)
}

func prepend(err error, args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, err)
	return append(out, args...)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsDuplicate reports whether err is a uniqueness violation.
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInfrastructure reports whether err is an infrastructure failure.
func IsInfrastructure(err error) bool { return errors.Is(err, ErrInfrastructure) }
