package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// RedisStore keeps each collection as one string key.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore constructs a Redis-backed collection store. Keys are prefix+name.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Key returns the Redis key of the named collection.
func (s *RedisStore) Key(name string) string {
	return s.prefix + name
}

// Read implements CollectionStore.
func (s *RedisStore) Read(ctx context.Context, name string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.Key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.Wrap(err, appErrors.ErrCollectionMissing, "")
		}
		return nil, fmt.Errorf("redis get %s: %w", s.Key(name), err)
	}
	return raw, nil
}

// Write implements CollectionStore.
func (s *RedisStore) Write(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.Key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key(name), err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
