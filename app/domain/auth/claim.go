package auth

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"loopware.io/user-directory/config/environment_variables"
)

const ContextRequesterID = "context_requester_id"

// RequesterClaim is the bearer-token payload; the subject carries the
// authenticated user's id.
type RequesterClaim struct {
	jwt.RegisteredClaims
}

// RequesterID parses the subject into the integer user id the cache key
// scheme and block-scoped invalidation rely on.
func (c *RequesterClaim) RequesterID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}
	return uint(id), nil
}

// CreateJwtSignedString signs a token for a user id; used by tooling and tests.
func CreateJwtSignedString(claim RequesterClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	return token.SignedString(environment_variables.EnvironmentVariables.JWT_SECRET)
}

func SetRequesterIDToContext(reqCtx *gin.Context, id uint) {
	reqCtx.Set(ContextRequesterID, id)
}

// GetRequesterIDFromContext returns the authenticated requester id, when one
// was extracted by the auth middleware.
func GetRequesterIDFromContext(reqCtx *gin.Context) (uint, bool) {
	v, ok := reqCtx.Get(ContextRequesterID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
