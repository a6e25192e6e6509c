package cache

import (
	"strings"
	"time"

	"loopware.io/user-directory/config/environment_variables"
)

// fallbackTTL bounds cache staleness when no TTL is configured. A crash
// between a storage write and its invalidation leaves stale entries behind;
// the TTL is the safety net that heals them, so it must never be disabled.
const fallbackTTL = 5 * time.Minute

// DefaultTTL returns the configured cache entry TTL.
func DefaultTTL() time.Duration {
	seconds := environment_variables.EnvironmentVariables.CACHE_TTL_SECONDS
	if seconds <= 0 {
		return fallbackTTL
	}
	return time.Duration(seconds) * time.Second
}

// NewCacheService creates a cache service based on configuration
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)

	switch cacheType {
	case "memory":
		return NewMemoryCacheService()
	case "redis":
		return NewRedisCacheService()
	default:
		// Fallback to Redis for unknown types
		return NewRedisCacheService()
	}
}
