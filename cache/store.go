package cache

import (
	"context"
	"errors"
)

// ErrNoEntry is returned by Read when no record exists for a key.
var ErrNoEntry = errors.New("cache: no entry")

// Store is the addressable record store backing the response cache.
// One record per key; format must round-trip the serialized Entry.
type Store interface {
	// Read returns the raw record for a key, or ErrNoEntry.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write stores the raw record under a key, overwriting any previous one.
	Write(ctx context.Context, key string, data []byte) error
	// Delete removes the record for a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every key currently stored.
	Keys(ctx context.Context) ([]string, error)
}
