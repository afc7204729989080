package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisTimeout bounds every redis round trip.
const DefaultRedisTimeout = 3 * time.Second

// RedisOptions addresses the redis server backing a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key; defaults to "goose:config:".
	Prefix  string
	Timeout time.Duration
}

// RedisStore keeps each param as a redis string holding JSON text.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore creates a client for opts. No connection is made until the
// first call.
func NewRedisStore(opts RedisOptions) *RedisStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "goose:config:"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultRedisTimeout
	}
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		prefix:  prefix,
		timeout: timeout,
	}
}

// Close releases the client's connections.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// GetParam returns the decoded value stored under key.
func (s *RedisStore) GetParam(key string) (any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	text, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return v, nil
}

// SetParam stores the JSON encoding of value under key with no expiry.
func (s *RedisStore) SetParam(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
