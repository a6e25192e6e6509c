package cache

import (
	"context"

	"loopware.io/user-directory/app/utils/logger"
)

// Invalidator removes the cache entries a mutation may have made stale.
// Callers invoke it only after the underlying storage write has been
// applied; running it first would let a concurrent read repopulate the
// cache with pre-write data that is never cleared again.
//
// Every method is best-effort: a failed delete leaves a stale entry whose
// lifetime is bounded by the entry TTL, so failures are logged and never
// surfaced to the write path.
type Invalidator struct {
	cache CacheService
}

// NewInvalidator constructs an Invalidator over a cache store.
func NewInvalidator(cache CacheService) *Invalidator {
	return &Invalidator{cache: cache}
}

// OnUserCreated drops the all-users key and the whole search family: a new
// row can change the membership of any search result for any requester.
func (inv *Invalidator) OnUserCreated(ctx context.Context) {
	inv.unlink(ctx, UsersAllKey)
	inv.deletePattern(ctx, SearchFamilyPattern())
}

// OnUserUpdated drops the all-users key, the user's own key and the whole
// search family, since an update may change any searchable attribute.
func (inv *Invalidator) OnUserUpdated(ctx context.Context, id uint) {
	inv.unlink(ctx, UsersAllKey)
	inv.unlink(ctx, UserKey(id))
	inv.deletePattern(ctx, SearchFamilyPattern())
}

// OnUserDeleted has the same scope as an update.
func (inv *Invalidator) OnUserDeleted(ctx context.Context, id uint) {
	inv.OnUserUpdated(ctx, id)
}

// OnBlockChanged drops only the search results scoped to the blocker.
// Blocking does not alter user rows, so the all-users and single-user
// families stay untouched.
func (inv *Invalidator) OnBlockChanged(ctx context.Context, blockerID uint) {
	inv.deletePattern(ctx, RequesterSearchPattern(blockerID))
}

func (inv *Invalidator) unlink(ctx context.Context, key string) {
	if err := inv.cache.Unlink(ctx, key); err != nil {
		logger.GetLogger().Errorf("invalidator: failed to drop %s: %v", key, err)
	}
}

func (inv *Invalidator) deletePattern(ctx context.Context, pattern string) {
	if err := inv.cache.DeletePattern(ctx, pattern); err != nil {
		logger.GetLogger().Errorf("invalidator: failed to drop pattern %s: %v", pattern, err)
	}
}
