package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/tintandorange-gh/tno-catalog-distributor/config"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at server startup.
func Connect() {
	defaultDisk = config.StorageDefault()

	disks["local"] = newLocalDisk()

	// The S3 disk only boots when a bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err.Error())
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation, mainly for tests.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

func defaultD() Disk { return Use(defaultDisk) }

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return defaultD().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return defaultD().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return defaultD().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return defaultD().URL(path) }

// Files lists files in directory on the default disk.
func Files(directory string) ([]string, error) { return defaultD().Files(directory) }

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// UploadImage stores an uploaded file under dir with a timestamped key
// derived from the original filename, and returns its public URL. Keys look
// like "brands/1717171717-logo.png" so repeated uploads never collide.
func UploadImage(dir, filename string, r io.Reader) (string, error) {
	base := unsafeKeyChars.ReplaceAllString(filepath.Base(filename), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "upload"
	}

	key := fmt.Sprintf("%s/%d-%s", strings.Trim(dir, "/"), time.Now().UnixMilli(), base)
	if err := PutStream(key, r); err != nil {
		return "", err
	}
	return URL(key), nil
}
