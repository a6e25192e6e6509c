package block

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopware.io/user-directory/app/domain/user"
	"loopware.io/user-directory/app/infrastructure/cache"
)

type fakeBlockRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   []*Block
}

func (r *fakeBlockRepo) Create(ctx context.Context, b *Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	clone := *b
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeBlockRepo) DeleteByPair(ctx context.Context, blockerID uint, blockedID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*Block
	for _, row := range r.rows {
		if row.BlockerID == blockerID && row.BlockedID == blockedID {
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return nil
}

func (r *fakeBlockRepo) FindByBlocker(ctx context.Context, blockerID uint) ([]*Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*Block
	for _, row := range r.rows {
		if row.BlockerID == blockerID {
			clone := *row
			result = append(result, &clone)
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[uint]*user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindByFilter(ctx context.Context, filter user.UserFilter) ([]*user.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) UpdateByID(ctx context.Context, id uint, fields user.UserUpdate) (int64, error) {
	return 0, nil
}

func (r *fakeUserRepo) DeleteByID(ctx context.Context, id uint) error {
	return nil
}

func newTestService(t *testing.T, userIDs ...uint) (*BlockService, *fakeBlockRepo, *cache.MemoryCacheService) {
	t.Helper()
	users := &fakeUserRepo{users: map[uint]*user.User{}}
	for _, id := range userIDs {
		users.users[id] = &user.User{ID: id, Username: "u"}
	}
	repo := &fakeBlockRepo{}
	store := cache.NewMemoryCacheService()
	svc := NewService(repo, users, cache.NewInvalidator(store))
	return svc, repo, store
}

func uintPtr(n uint) *uint {
	return &n
}

func seedSearchEntries(t *testing.T, store *cache.MemoryCacheService, requesterIDs ...uint) []string {
	t.Helper()
	ctx := context.Background()
	var keys []string
	for _, id := range requesterIDs {
		key := cache.SearchKey(nil, nil, nil, uintPtr(id))
		require.NoError(t, store.Set(ctx, key, "seed", time.Minute))
		keys = append(keys, key)
	}
	return keys
}

func TestBlockService_BlockUser(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t, 1, 2)
	keys := seedSearchEntries(t, store, 1, 9)

	created, err := svc.BlockUser(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.BlockerID)
	assert.Equal(t, uint(2), created.BlockedID)
	assert.Len(t, repo.rows, 1)

	// The blocker's cached search results are gone; another requester's
	// entry is untouched.
	exists, err := store.Exists(ctx, keys[0])
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = store.Exists(ctx, keys[1])
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBlockService_BlockUser_UnknownUsers(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, 1)

	_, err := svc.BlockUser(ctx, 1, 99)
	assert.Error(t, err)
	_, err = svc.BlockUser(ctx, 99, 1)
	assert.Error(t, err)
	assert.Empty(t, repo.rows)
}

// Duplicate blocks may exist; unblock removes them all.
func TestBlockService_UnblockRemovesAllMatchingRows(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, 1, 2, 3)

	_, err := svc.BlockUser(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.BlockUser(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.BlockUser(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, repo.rows, 3)

	require.NoError(t, svc.UnblockUser(ctx, 1, 2))

	remaining, err := svc.ListBlocked(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, uint(3), remaining[0].BlockedID)
}

// Unblocking a pair that was never blocked succeeds and still clears the
// blocker's search entries: the attempted delete scopes the invalidation.
func TestBlockService_UnblockIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService(t, 1, 2)
	keys := seedSearchEntries(t, store, 1, 9)

	require.NoError(t, svc.UnblockUser(ctx, 1, 2))

	exists, err := store.Exists(ctx, keys[0])
	require.NoError(t, err)
	assert.False(t, exists, "invalidation must run even when nothing was deleted")
	exists, err = store.Exists(ctx, keys[1])
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBlockService_ListBlocked(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, 1, 2, 3)

	_, err := svc.BlockUser(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.BlockUser(ctx, 1, 3)
	require.NoError(t, err)

	blocks, err := svc.ListBlocked(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)

	blocks, err = svc.ListBlocked(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
