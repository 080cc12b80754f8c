// Package requestcache stores raw upstream API payloads in Redis, keyed by a
// canonical serialization of the request, so identical searches within the
// TTL window never hit the upstream twice.
package requestcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a cached payload is served before the upstream
// is asked again.
const DefaultTTL = time.Hour

var (
	// ErrMiss means the key is not cached (or its entry expired).
	ErrMiss = errors.New("cache miss")

	// ErrUnavailable means the cache backend could not be reached. Callers
	// may treat it as a miss and go to the upstream directly.
	ErrUnavailable = errors.New("cache unavailable")
)

type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type Cache struct {
	redis RedisClient
}

func NewCache(redis RedisClient) *Cache {
	return &Cache{
		redis: redis,
	}
}

// Key builds the canonical cache key for a request descriptor. Query params
// and body are serialized as JSON with deterministic key ordering, so two
// requests that differ only in parameter insertion order collapse to the
// same key. Redis entries expire server-side, which gives the lazy
// eviction-on-expiry the lookup path relies on.
func Key(method, rawURL string, params url.Values, body interface{}) (string, error) {
	descriptor, err := json.Marshal([]interface{}{method, rawURL, params, body})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request descriptor: %w", err)
	}

	return "request:cache:" + string(descriptor), nil
}

// Get returns the cached payload for key. ErrMiss and ErrUnavailable are
// distinct failure kinds: a backend outage must not be mistaken for a miss
// by callers that care, even though most will fall back to a live call
// either way.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}

		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return payload, nil
}

// Set stores the payload under key with the given expiry.
func (c *Cache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return nil
}
