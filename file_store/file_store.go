// Package file_store abstracts where uploaded bytes live. Handlers only ever
// deal with keys and urls; the bytes go to local disk in development and S3
// in production.
package file_store

import (
	"io"
	"os"
)

type Store interface {
	// Save writes the bytes under key and returns the public url.
	Save(r io.Reader, key string) (url string, err error)
	// Delete removes the stored object. Deleting a missing key is not an
	// error.
	Delete(key string) error
	// GetUrlFromKey resolves the public url for an already stored key.
	GetUrlFromKey(key string) string
}

// NewStoreFromEnv picks the store implementation from FILE_STORE, defaulting
// to local disk.
func NewStoreFromEnv() (Store, error) {
	if os.Getenv("FILE_STORE") == "s3" {
		return NewS3Store(os.Getenv("S3_BUCKET"), os.Getenv("S3_REGION"))
	}
	return NewLocalStore(os.Getenv("UPLOAD_DIR"), os.Getenv("UPLOAD_BASE_URL")), nil
}
