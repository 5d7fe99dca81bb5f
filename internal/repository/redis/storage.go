package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salmankhalil12/Restaurant-Site/pkg/database"
	apperrors "github.com/salmankhalil12/Restaurant-Site/pkg/errors"
)

// Storage implements repository.Storage on Redis string keys.
type Storage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStorage creates a Redis-backed storage. A zero ttl keeps values forever,
// matching browser local storage.
func NewStorage(client *redis.Client, ttl time.Duration) *Storage {
	return &Storage{client: client, ttl: ttl}
}

// Get reads the value under key. A missing key is a NotFound error; any
// other failure is reported as the store being unavailable.
func (s *Storage) Get(ctx context.Context, key string) (value []byte, err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemRedis, "Get", "GET "+key)
	defer func() { end(err) }()

	value, err = s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("storage key", key)
		}
		return nil, apperrors.Unavailable("redis", fmt.Errorf("redis get %s: %w", key, err))
	}
	return value, nil
}

// Set overwrites the value under key with a single SET.
func (s *Storage) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemRedis, "Set", "SET "+key)
	defer func() { end(err) }()

	if err = s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return apperrors.Unavailable("redis", fmt.Errorf("redis set %s: %w", key, err))
	}
	return nil
}

// Ping checks the connection.
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
