package block

import "context"

// Block is a directed "blocker hides blocked from search" relation. No
// uniqueness is enforced over the pair: duplicate rows may exist when
// created independently, and unblocking removes all of them.
type Block struct {
	ID        uint `json:"id"`
	BlockerID uint `json:"blocker_id"`
	BlockedID uint `json:"blocked_id"`
}

type BlockRepository interface {
	Create(ctx context.Context, b *Block) error
	// DeleteByPair removes every row matching (blockerID, blockedID), not
	// just one. Deleting a non-existent pair is not an error.
	DeleteByPair(ctx context.Context, blockerID uint, blockedID uint) error
	FindByBlocker(ctx context.Context, blockerID uint) ([]*Block, error)
}
