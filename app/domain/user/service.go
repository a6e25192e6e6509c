package user

import (
	"context"
	"time"

	"loopware.io/user-directory/app/infrastructure/cache"
)

// UserService orchestrates user reads through the cache and pairs every
// mutation with its invalidation scope. The storage write always completes
// before invalidation runs.
type UserService struct {
	users       UserRepository
	blocks      BlockedIDsProvider
	cache       cache.CacheService
	invalidator *cache.Invalidator

	// now is overridable in tests; search derives its whole age range from
	// one snapshot per call.
	now func() time.Time
}

func NewService(users UserRepository, blocks BlockedIDsProvider, cacheService cache.CacheService, invalidator *cache.Invalidator) *UserService {
	return &UserService{
		users:       users,
		blocks:      blocks,
		cache:       cacheService,
		invalidator: invalidator,
		now:         time.Now,
	}
}

func (s *UserService) Create(ctx context.Context, u *User) (*User, error) {
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.invalidator.OnUserCreated(ctx)
	return u, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]*User, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.UsersAllKey, cache.DefaultTTL(), func(ctx context.Context) ([]*User, error) {
		return s.users.FindAll(ctx)
	})
}

// FindByID returns (nil, nil) when the user does not exist. Absence is never
// cached, so a create right after a missed read is visible immediately.
func (s *UserService) FindByID(ctx context.Context, id uint) (*User, error) {
	return cache.GetOrLoadOptional(ctx, s.cache, cache.UserKey(id), cache.DefaultTTL(), func(ctx context.Context) (*User, error) {
		return s.users.FindByID(ctx, id)
	})
}

func (s *UserService) Update(ctx context.Context, id uint, fields UserUpdate) (int64, error) {
	affected, err := s.users.UpdateByID(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	s.invalidator.OnUserUpdated(ctx, id)
	return affected, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.users.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidator.OnUserDeleted(ctx, id)
	return nil
}

// Search filters users by username substring and age range, excluding the
// users the requester has blocked. Results are cached per filter tuple and
// per requester, since blocks make them requester-specific. A nil
// requesterID is an anonymous search with no block exclusion.
func (s *UserService) Search(ctx context.Context, params SearchParams, requesterID *uint) ([]*User, error) {
	key := cache.SearchKey(params.Username, params.MinAge, params.MaxAge, requesterID)
	return cache.GetOrLoad(ctx, s.cache, key, cache.DefaultTTL(), func(ctx context.Context) ([]*User, error) {
		from, to := BirthdateRangeForAges(params.MinAge, params.MaxAge, s.now())
		filter := UserFilter{
			UsernameContains: params.Username,
			BirthdateFrom:    from,
			BirthdateTo:      to,
		}

		if requesterID != nil {
			blockedIDs, err := s.blocks.BlockedIDs(ctx, *requesterID)
			if err != nil {
				return nil, err
			}
			// The exclusion clause is added only when there is something to
			// exclude; a requester with zero blocks searches unfiltered.
			if len(blockedIDs) > 0 {
				filter.ExcludeIDs = blockedIDs
			}
		}

		return s.users.FindByFilter(ctx, filter)
	})
}
