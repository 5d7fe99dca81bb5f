package memory

import (
	"context"
	"sync"

	"github.com/salmankhalil12/Restaurant-Site/pkg/database"
	apperrors "github.com/salmankhalil12/Restaurant-Site/pkg/errors"
)

// Storage is a process-local key-value map. Values are copied on the way in
// and out.
type Storage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStorage returns an empty in-memory storage.
func NewStorage() *Storage {
	return &Storage{values: make(map[string][]byte)}
}

// Get returns a copy of the value under key.
func (s *Storage) Get(ctx context.Context, key string) (value []byte, err error) {
	_, end := database.TraceQuery(ctx, database.SystemMemory, "Get", key)
	defer func() { end(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, apperrors.NotFound("storage key", key)
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	_, end := database.TraceQuery(ctx, database.SystemMemory, "Set", key)
	defer end(nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Ping always succeeds.
func (s *Storage) Ping(context.Context) error { return nil }
