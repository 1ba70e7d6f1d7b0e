package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumeo/lumeo/internal/model"
)

const (
	// sessionCachePrefix is the Redis key prefix for session context cache.
	sessionCachePrefix = "session:ctx:"
	// sessionCacheTTL is the time-to-live for cached session contexts.
	sessionCacheTTL = 5 * time.Minute
)

// GetSessionContext retrieves a cached session context by cache key
// (a hash of the identity token). Returns nil on cache miss.
func (c *Cache) GetSessionContext(ctx context.Context, cacheKey string) (*model.SessionContext, error) {
	key := sessionCachePrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached model.SessionContext
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &cached, nil
}

// SetSessionContext caches a resolved session context.
func (c *Cache) SetSessionContext(ctx context.Context, cacheKey string, session *model.SessionContext) error {
	key := sessionCachePrefix + cacheKey

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session context: %w", err)
	}

	return c.client.Set(ctx, key, data, sessionCacheTTL).Err()
}

// DeleteSessionContext removes a cached session context.
func (c *Cache) DeleteSessionContext(ctx context.Context, cacheKey string) error {
	key := sessionCachePrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
