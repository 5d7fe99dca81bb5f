package repository

import (
	"context"
)

// Storage is a flat key-value store holding serialized values. The cart
// store is its sole reader and writer. Set fully overwrites the previous
// value atomically as far as the backend allows.
type Storage interface {
	// Get returns the value under key. A missing key returns an error
	// matching apperrors.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
