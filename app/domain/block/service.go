package block

import (
	"context"
	"fmt"

	"loopware.io/user-directory/app/domain/user"
	"loopware.io/user-directory/app/infrastructure/cache"
)

// BlockService maintains block relations and keeps the blocker's cached
// search results honest. Blocks never touch user rows, so only the search
// family scoped to the blocker is ever invalidated.
type BlockService struct {
	blocks      BlockRepository
	users       user.UserRepository
	invalidator *cache.Invalidator
}

func NewService(blocks BlockRepository, users user.UserRepository, invalidator *cache.Invalidator) *BlockService {
	return &BlockService{
		blocks:      blocks,
		users:       users,
		invalidator: invalidator,
	}
}

// BlockUser records that blocker hides blocked from their search results.
// Both users must exist.
func (s *BlockService) BlockUser(ctx context.Context, blockerID uint, blockedID uint) (*Block, error) {
	blocker, err := s.users.FindByID(ctx, blockerID)
	if err != nil {
		return nil, err
	}
	if blocker == nil {
		return nil, fmt.Errorf("blocker %d not found", blockerID)
	}

	blocked, err := s.users.FindByID(ctx, blockedID)
	if err != nil {
		return nil, err
	}
	if blocked == nil {
		return nil, fmt.Errorf("blocked user %d not found", blockedID)
	}

	b := &Block{
		BlockerID: blocker.ID,
		BlockedID: blocked.ID,
	}
	if err := s.blocks.Create(ctx, b); err != nil {
		return nil, err
	}
	s.invalidator.OnBlockChanged(ctx, blockerID)
	return b, nil
}

// UnblockUser removes every block row for the pair. The invalidation runs
// even when no row matched: the delete attempt is what scopes the cache
// cleanup, so unblocking is idempotent.
func (s *BlockService) UnblockUser(ctx context.Context, blockerID uint, blockedID uint) error {
	if err := s.blocks.DeleteByPair(ctx, blockerID, blockedID); err != nil {
		return err
	}
	s.invalidator.OnBlockChanged(ctx, blockerID)
	return nil
}

// ListBlocked returns the blocker's current block rows. Reads go straight to
// storage: block lists change exactly when their owner mutates them, so
// caching buys nothing here.
func (s *BlockService) ListBlocked(ctx context.Context, blockerID uint) ([]*Block, error) {
	return s.blocks.FindByBlocker(ctx, blockerID)
}
