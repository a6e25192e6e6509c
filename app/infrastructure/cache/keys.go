package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// Cache keys are partitioned into three families by prefix: the users_all
// key, the user_<id> family and the search_<...> family. Invalidation scopes
// deletions by prefix match, so no key may belong to more than one family.
// The formats below are observable by external cache monitoring and must not
// change between releases.
const (
	UsersAllKey     = "users_all"
	UserKeyPrefix   = "user_"
	SearchKeyPrefix = "search_"

	// AbsentPlaceholder marks an optional search field that was not supplied.
	// It keeps "no username filter" distinguishable from an empty-string
	// username filter. A literal username filter of "-" serializes the same
	// as an absent one, so those two queries share a cache entry; the key
	// format is a fixed external contract, so the collision is accepted.
	AbsentPlaceholder = "-"
)

// UserKey returns the single-user cache key for an id.
func UserKey(id uint) string {
	return UserKeyPrefix + strconv.FormatUint(uint64(id), 10)
}

// SearchKey derives the cache key for a search query. The derivation is pure:
// identical filter values and requester always produce the identical key, and
// a change in any one field changes the key. The requester id is always the
// final underscore-separated segment, which RequesterSearchPattern relies on.
func SearchKey(username *string, minAge *int, maxAge *int, requesterID *uint) string {
	segments := []string{
		AbsentPlaceholder,
		AbsentPlaceholder,
		AbsentPlaceholder,
		AbsentPlaceholder,
	}
	if username != nil {
		segments[0] = *username
	}
	if minAge != nil {
		segments[1] = strconv.Itoa(*minAge)
	}
	if maxAge != nil {
		segments[2] = strconv.Itoa(*maxAge)
	}
	if requesterID != nil {
		segments[3] = strconv.FormatUint(uint64(*requesterID), 10)
	}
	return SearchKeyPrefix + strings.Join(segments, "_")
}

// SearchFamilyPattern matches every key in the search family.
func SearchFamilyPattern() string {
	return SearchKeyPrefix + "*"
}

// RequesterSearchPattern matches exactly the search keys scoped to one
// requester. Age and requester segments are digit-only, so the trailing
// "_<id>" cannot match a longer id with the same suffix.
func RequesterSearchPattern(requesterID uint) string {
	return fmt.Sprintf("%s*_%d", SearchKeyPrefix, requesterID)
}
