package cache

import (
	"context"
	"fmt"
	"time"

	"loopware.io/user-directory/app/utils/logger"
)

// GetOrLoad serves a read either from cache or from the loader, populating
// the cache on miss. Any cache read failure degrades to a miss; a cache
// write failure is logged and ignored. Loader errors propagate uncached.
// Concurrent misses on the same key are not deduplicated: both calls load
// and both populate with equivalent data, which is harmless.
func GetOrLoad[T any](ctx context.Context, c CacheService, key string, ttl time.Duration, loader func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	value, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to cache value for %s: %v", key, err))
	}
	return value, nil
}

// GetOrLoadOptional is GetOrLoad for single-entity reads that may find
// nothing. An absent result (nil) is returned to the caller but never
// written to the cache, so a subsequent create is visible immediately
// without a dedicated invalidation path.
func GetOrLoadOptional[T any](ctx context.Context, c CacheService, key string, ttl time.Duration, loader func(ctx context.Context) (*T, error)) (*T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	value, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to cache value for %s: %v", key, err))
	}
	return value, nil
}
