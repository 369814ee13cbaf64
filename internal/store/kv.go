package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// KV is the byte-level persistence contract every backend implements.
// Values are opaque; callers own serialization.
type KV interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Revisioner is implemented by backends that count saves per key.
type Revisioner interface {
	Revision(ctx context.Context, key string) (int64, error)
}
