package user

import (
	"context"
	"time"
)

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Username  string    `json:"username"`
	Birthdate time.Time `json:"birthdate"`
}

// UserUpdate carries the mutable fields of a user; nil fields stay untouched.
type UserUpdate struct {
	Name      *string
	Surname   *string
	Username  *string
	Birthdate *time.Time
}

// UserFilter narrows a user query. A nil field means the predicate is not
// applied at all, not that it matches everything by accident.
type UserFilter struct {
	UsernameContains *string
	BirthdateFrom    *time.Time
	BirthdateTo      *time.Time
	ExcludeIDs       []uint
}

// SearchParams are the caller-facing search filters. Username is a substring
// match; ages bound the requester-visible age range inclusively.
type SearchParams struct {
	Username *string
	MinAge   *int
	MaxAge   *int
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	// FindByID returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, id uint) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	FindByFilter(ctx context.Context, filter UserFilter) ([]*User, error)
	UpdateByID(ctx context.Context, id uint, fields UserUpdate) (int64, error)
	DeleteByID(ctx context.Context, id uint) error
}

// BlockedIDsProvider reports which users a blocker has hidden from search.
// Implemented by the block repository; declared here so the user domain does
// not depend on the block package.
type BlockedIDsProvider interface {
	BlockedIDs(ctx context.Context, blockerID uint) ([]uint, error)
}
