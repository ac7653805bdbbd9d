// Package storage keeps badge metadata documents in object storage.
package storage

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned for operations without an object key
var ErrEmptyKey = errors.New("storage key is required")

// ObjectStore is the subset of object storage the minter needs
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
	DeleteObject(ctx context.Context, key string) error
	// URL returns the stable address recorded for key
	URL(key string) string
}
