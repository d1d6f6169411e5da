package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListingCache keeps rendered public listing pages in Redis for a short TTL.
// All operations degrade to cache misses when Redis is unavailable, so the
// cache never affects correctness, only load on Postgres.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache wraps the shared Redis client. A nil client or non-positive
// TTL yields a disabled cache.
func NewListingCache(r *Redis, ttl time.Duration) *ListingCache {
	if r == nil || r.Client == nil || ttl <= 0 {
		return &ListingCache{}
	}
	return &ListingCache{client: r.Client, ttl: ttl}
}

// Get returns the cached payload for key, if present.
func (c *ListingCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	payload, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return payload, true
}

// Set stores the payload under key for the configured TTL.
func (c *ListingCache) Set(ctx context.Context, key, payload string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Invalidate drops the cached payload for key.
func (c *ListingCache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}
