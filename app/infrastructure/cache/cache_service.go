package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redsync/redsync/v4"
)

// ErrCacheMiss is returned by Get when the key is not present.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheService defines the interface for cache operations
type CacheService interface {
	// Set stores a value in cache with an expiration time. A zero expiration
	// falls back to the configured default TTL; entries are never unbounded.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get retrieves a value from cache into dest. Returns ErrCacheMiss when absent.
	Get(ctx context.Context, key string, dest any) error

	// Delete removes a key from cache synchronously (blocking)
	Delete(ctx context.Context, key string) error

	// Unlink removes a key from cache asynchronously (non-blocking)
	Unlink(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Keys enumerates the keys currently held that match a glob pattern
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// FlushAll removes every key from the cache
	FlushAll(ctx context.Context) error

	// Close closes the cache connection
	Close() error

	// HealthCheck verifies cache connectivity
	HealthCheck(ctx context.Context) error

	// NewMutex returns a distributed mutex, or nil when the backing store
	// cannot coordinate across processes.
	NewMutex(name string, options ...redsync.Option) *redsync.Mutex
}
