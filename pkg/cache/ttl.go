package cache

import (
	"context"
	"time"
)

// TTLCache caps the lifetime of every entry written through it.
type TTLCache struct {
	Cache
	max time.Duration
}

// WithMaxTTL wraps c so that no entry outlives max. A max <= 0 returns c.
func WithMaxTTL(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return &TTLCache{Cache: c, max: max}
}

// Set stores data with the smaller of ttl and the cap.
func (c *TTLCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}
