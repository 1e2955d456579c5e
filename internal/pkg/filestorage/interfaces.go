package filestorage

import (
	"context"
	"errors"
	"io"
)

// ErrFileNotFound is returned by Read when the key has no backing object
var ErrFileNotFound = errors.New("stored file not found")

// FileStorage stores upload bytes under opaque keys
type FileStorage interface {
	// Save writes r under a fresh unique key derived from originalName's extension
	Save(ctx context.Context, originalName string, r io.Reader, size int64, contentType string) (string, error)

	// Read loads the whole object into memory
	Read(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
