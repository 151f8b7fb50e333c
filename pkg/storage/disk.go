// Package storage abstracts where catalog images live. Two drivers ship:
//
//   - "local" — files under STORAGE_LOCAL_ROOT, served at STORAGE_URL
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once with Connect(), then upload through the package helpers:
//
//	url, err := storage.UploadImage("brands", header.Filename, file)
package storage

import "io"

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Absent paths are not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// Files lists the files directly inside directory.
	Files(directory string) ([]string, error)
}
