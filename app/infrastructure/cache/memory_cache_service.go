package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
)

// MemoryCacheService is an in-process CacheService used for local development
// and as the cache double in tests. Pattern matching follows the same glob
// syntax the Redis implementation uses for SCAN.
type MemoryCacheService struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// NewMemoryCacheService creates an empty in-process cache.
func NewMemoryCacheService() *MemoryCacheService {
	return &MemoryCacheService{
		entries: map[string]memoryEntry{},
	}
}

// Set stores a value with an expiration time
func (m *MemoryCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if expiration <= 0 {
		expiration = DefaultTTL()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		data:      jsonValue,
		expiresAt: time.Now().Add(expiration),
	}
	return nil
}

// Get retrieves a value into dest, removing the entry lazily when expired
func (m *MemoryCacheService) Get(ctx context.Context, key string, dest any) error {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && entry.expired(time.Now()) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	return json.Unmarshal(entry.data, dest)
}

// Delete removes a key
func (m *MemoryCacheService) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Unlink removes a key; in-process removal is already non-blocking
func (m *MemoryCacheService) Unlink(ctx context.Context, key string) error {
	return m.Delete(ctx, key)
}

// DeletePattern removes all keys matching a glob pattern
func (m *MemoryCacheService) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if globMatch(pattern, key) {
			delete(m.entries, key)
		}
	}
	return nil
}

// Keys enumerates all live keys matching a glob pattern
func (m *MemoryCacheService) Keys(ctx context.Context, pattern string) ([]string, error) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []string
	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
			continue
		}
		if globMatch(pattern, key) {
			result = append(result, key)
		}
	}
	return result, nil
}

// globMatch reports whether key matches pattern under Redis SCAN glob
// semantics: `*` matches any run of characters, `?` matches exactly one,
// everything else is literal. `*` must cross every character, `/` included,
// or keys built from arbitrary usernames could escape a family pattern.
func globMatch(pattern, key string) bool {
	pi, ki := 0, 0
	starP, starK := -1, 0
	for ki < len(key) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == key[ki]):
			pi++
			ki++
		case pi < len(pattern) && pattern[pi] == '*':
			starP, starK = pi, ki
			pi++
		case starP >= 0:
			starK++
			pi, ki = starP+1, starK
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

// Exists checks if a live key exists
func (m *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	var probe json.RawMessage
	err := m.Get(ctx, key, &probe)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// FlushAll removes every entry
func (m *MemoryCacheService) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string]memoryEntry{}
	return nil
}

// Close is a no-op for the in-process cache
func (m *MemoryCacheService) Close() error {
	return nil
}

// HealthCheck always succeeds for the in-process cache
func (m *MemoryCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

// NewMutex returns nil: a single-process cache cannot coordinate instances,
// callers must treat a nil mutex as "no cross-process locking available".
func (m *MemoryCacheService) NewMutex(name string, options ...redsync.Option) *redsync.Mutex {
	return nil
}
