// Package bind decodes HTTP request bodies, JSON or multipart form, into
// usable values and runs validation.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/tintandorange-gh/tno-catalog-distributor/config"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/errs"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// maxUploadBytes caps multipart uploads (default 32 MB, image galleries).
func maxUploadBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_UPLOAD_BYTES", "33554432"), 10, 64)
	if err != nil || n <= 0 {
		return 32 << 20
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	fieldErrs := validate.Struct(dest)
	if validate.HasErrors(fieldErrs) {
		return fieldErrs, nil
	}

	return nil, nil
}

// Multipart parses a multipart form with the configured upload cap.
func Multipart(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadBytes()); err != nil {
		return errs.Validation("invalid multipart form: %v", err)
	}
	return nil
}

// FormValue returns the trimmed form field value.
func FormValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.FormValue(field))
}

// FormFile returns the named upload, or (nil, nil) when the field is missing
// or the browser sent an empty file part, which counts as "no file".
func FormFile(r *http.Request, field string) (*multipart.FileHeader, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	h := headers[0]
	if h.Size == 0 {
		return nil, nil
	}
	return h, nil
}

// FormFiles returns all non-empty uploads for the named field.
func FormFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	var out []*multipart.FileHeader
	for _, h := range r.MultipartForm.File[field] {
		if h.Size > 0 {
			out = append(out, h)
		}
	}
	return out
}

// FormFloat parses an optional numeric form field. Absent or blank fields
// yield nil; a present but unparsable value is a validation error.
func FormFloat(r *http.Request, field string) (*float64, error) {
	raw := FormValue(r, field)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.Validation("%s must be a number", field)
	}
	return &f, nil
}
