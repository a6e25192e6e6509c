package user

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopware.io/user-directory/app/infrastructure/cache"
)

type fakeUserRepo struct {
	mu         sync.Mutex
	nextID     uint
	users      map[uint]*User
	calls      int
	lastFilter *UserFilter
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.sorted(), nil
}

func (r *fakeUserRepo) FindByFilter(ctx context.Context, filter UserFilter) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastFilter = &filter

	excluded := map[uint]struct{}{}
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	var result []*User
	for _, u := range r.sorted() {
		if filter.UsernameContains != nil && !strings.Contains(u.Username, *filter.UsernameContains) {
			continue
		}
		if filter.BirthdateFrom != nil && u.Birthdate.Before(*filter.BirthdateFrom) {
			continue
		}
		if filter.BirthdateTo != nil && u.Birthdate.After(*filter.BirthdateTo) {
			continue
		}
		if _, ok := excluded[u.ID]; ok {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

func (r *fakeUserRepo) UpdateByID(ctx context.Context, id uint, fields UserUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.Surname != nil {
		u.Surname = *fields.Surname
	}
	if fields.Username != nil {
		u.Username = *fields.Username
	}
	if fields.Birthdate != nil {
		u.Birthdate = *fields.Birthdate
	}
	return 1, nil
}

func (r *fakeUserRepo) DeleteByID(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) sorted() []*User {
	var result []*User
	for _, u := range r.users {
		clone := *u
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

type fakeBlocks struct {
	mu      sync.Mutex
	blocked map[uint][]uint
}

func newFakeBlocks() *fakeBlocks {
	return &fakeBlocks{blocked: map[uint][]uint{}}
}

func (f *fakeBlocks) BlockedIDs(ctx context.Context, blockerID uint) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocked[blockerID], nil
}

func (f *fakeBlocks) add(blockerID, blockedID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[blockerID] = append(f.blocked[blockerID], blockedID)
}

func newTestService(t *testing.T) (*UserService, *fakeUserRepo, *fakeBlocks, *cache.MemoryCacheService) {
	t.Helper()
	repo := newFakeUserRepo()
	blocks := newFakeBlocks()
	store := cache.NewMemoryCacheService()
	svc := NewService(repo, blocks, store, cache.NewInvalidator(store))
	svc.now = func() time.Time {
		return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo, blocks, store
}

func seedUser(t *testing.T, svc *UserService, username string, birthdate time.Time) *User {
	t.Helper()
	created, err := svc.Create(context.Background(), &User{
		Name:      username,
		Surname:   "Tester",
		Username:  username,
		Birthdate: birthdate,
	})
	require.NoError(t, err)
	return created
}

func uintPtr(n uint) *uint {
	return &n
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_FindAll_ReadThrough(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, store := newTestService(t)
	seedUser(t, svc, "alice", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

	repo.calls = 0
	first, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.calls)

	second, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls, "second read must be served from cache")

	exists, err := store.Exists(ctx, cache.UsersAllKey)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserService_Create_InvalidatesAllUsersAndSearchFamilies(t *testing.T) {
	ctx := context.Background()
	svc, _, _, store := newTestService(t)
	seedUser(t, svc, "alice", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

	// Warm the keys a create must drop.
	_, err := svc.FindAll(ctx)
	require.NoError(t, err)
	_, err = svc.Search(ctx, SearchParams{Username: strPtr("ali")}, uintPtr(7))
	require.NoError(t, err)

	seedUser(t, svc, "bob", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))

	exists, err := store.Exists(ctx, cache.UsersAllKey)
	require.NoError(t, err)
	assert.False(t, exists, "users_all must be a forced miss after create")

	exists, err = store.Exists(ctx, cache.SearchKey(strPtr("ali"), nil, nil, uintPtr(7)))
	require.NoError(t, err)
	assert.False(t, exists, "search entries must be dropped after create")
}

func TestUserService_Update_IsNotAFullFlush(t *testing.T) {
	ctx := context.Background()
	svc, _, _, store := newTestService(t)
	alice := seedUser(t, svc, "alice", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	bob := seedUser(t, svc, "bob", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))

	// Warm both single-user keys, the all-users key and a search key.
	_, err := svc.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	_, err = svc.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	_, err = svc.FindAll(ctx)
	require.NoError(t, err)
	_, err = svc.Search(ctx, SearchParams{}, nil)
	require.NoError(t, err)

	affected, err := svc.Update(ctx, alice.ID, UserUpdate{Username: strPtr("alicia")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	for key, wantPresent := range map[string]bool{
		cache.UserKey(alice.ID):             false,
		cache.UsersAllKey:                   false,
		cache.SearchKey(nil, nil, nil, nil): false,
		cache.UserKey(bob.ID):               true,
	} {
		exists, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, wantPresent, exists, "key %s", key)
	}
}

func TestUserService_Delete_InvalidatesLikeUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, _, store := newTestService(t)
	alice := seedUser(t, svc, "alice", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	_, err = svc.FindAll(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice.ID))

	for _, key := range []string{cache.UserKey(alice.ID), cache.UsersAllKey} {
		exists, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, "key %s", key)
	}

	found, err := svc.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserService_FindByID_AbsentNotCached(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, store := newTestService(t)

	found, err := svc.FindByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, found)

	exists, err := store.Exists(ctx, cache.UserKey(99))
	require.NoError(t, err)
	assert.False(t, exists)

	// The row appears; the very next read sees it because absence was
	// never cached.
	repo.users[99] = &User{ID: 99, Username: "ghost"}

	found, err = svc.FindByID(ctx, 99)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ghost", found.Username)
}

func TestUserService_Search_AgeBoundariesInclusive(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)
	// now is fixed to 2026-06-15.
	exactlyMin := seedUser(t, svc, "young", time.Date(2008, 6, 15, 12, 0, 0, 0, time.UTC))  // turns 18 today
	exactlyMax := seedUser(t, svc, "old", time.Date(1996, 6, 15, 12, 0, 0, 0, time.UTC))    // turns 30 today
	tooYoung := seedUser(t, svc, "kid", time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))        // 16
	tooOld := seedUser(t, svc, "elder", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))        // 36

	minAge, maxAge := 18, 30
	result, err := svc.Search(ctx, SearchParams{MinAge: &minAge, MaxAge: &maxAge}, nil)
	require.NoError(t, err)

	ids := map[uint]bool{}
	for _, u := range result {
		ids[u.ID] = true
	}
	assert.True(t, ids[exactlyMin.ID], "user exactly at minAge must be included")
	assert.True(t, ids[exactlyMax.ID], "user exactly at maxAge must be included")
	assert.False(t, ids[tooYoung.ID])
	assert.False(t, ids[tooOld.ID])
}

func TestUserService_Search_ZeroBlocksOmitsExclusion(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService(t)
	seedUser(t, svc, "alice", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	seedUser(t, svc, "bob", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))

	result, err := svc.Search(ctx, SearchParams{}, uintPtr(1))
	require.NoError(t, err)
	assert.Len(t, result, 2)

	require.NotNil(t, repo.lastFilter)
	assert.Nil(t, repo.lastFilter.ExcludeIDs, "zero blocks must omit the exclusion clause entirely")
}

func TestUserService_Search_ExcludesBlockedUsers(t *testing.T) {
	ctx := context.Background()
	svc, _, blocks, _ := newTestService(t)
	alice := seedUser(t, svc, "alice", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	bob := seedUser(t, svc, "bob", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))

	blocks.add(alice.ID, bob.ID)

	result, err := svc.Search(ctx, SearchParams{}, &alice.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, alice.ID, result[0].ID)
}

// The end-to-end blocking scenario: A blocks B, A's search results drop B,
// the all-users read still lists B, and another requester's cached search
// is untouched by A's block.
func TestUserService_Search_BlockScenario(t *testing.T) {
	ctx := context.Background()
	svc, _, blocks, store := newTestService(t)
	inv := cache.NewInvalidator(store)

	a := seedUser(t, svc, "alice", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	b := seedUser(t, svc, "bob", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))

	// Both searches warm their requester-scoped entries.
	resultA, err := svc.Search(ctx, SearchParams{}, &a.ID)
	require.NoError(t, err)
	assert.Len(t, resultA, 2)

	otherRequester := uint(42)
	resultOther, err := svc.Search(ctx, SearchParams{}, &otherRequester)
	require.NoError(t, err)
	assert.Len(t, resultOther, 2)

	// A blocks B: the write lands, then A's search family is invalidated.
	blocks.add(a.ID, b.ID)
	inv.OnBlockChanged(ctx, a.ID)

	resultA, err = svc.Search(ctx, SearchParams{}, &a.ID)
	require.NoError(t, err)
	require.Len(t, resultA, 1)
	assert.Equal(t, a.ID, resultA[0].ID)

	// B is still visible in an unfiltered all-users read.
	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// The other requester's cached entry survived A's block.
	exists, err := store.Exists(ctx, cache.SearchKey(nil, nil, nil, &otherRequester))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserService_Search_CachedPerFilterTuple(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService(t)
	seedUser(t, svc, "alice", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

	repo.calls = 0
	_, err := svc.Search(ctx, SearchParams{Username: strPtr("ali")}, nil)
	require.NoError(t, err)
	_, err = svc.Search(ctx, SearchParams{Username: strPtr("ali")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "identical search must hit the cache")

	_, err = svc.Search(ctx, SearchParams{Username: strPtr("bob")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "different filter must miss")
}
