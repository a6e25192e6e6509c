package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"loopware.io/user-directory/app/domain/auth"
	"loopware.io/user-directory/app/interfaces/http/responses"
	"loopware.io/user-directory/config/environment_variables"
)

// AuthMiddleware requires a valid signed bearer token and stores the
// requester id on the request context. Tokens are verified against
// JWT_SECRET; an unverified token never reaches the cache or block layers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requesterID, ok := requesterIDFromHeader(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "8c7e6b25-4f1d-4e83-a1c8-7d9b1f3e0a62",
			})
			return
		}

		auth.SetRequesterIDToContext(c, requesterID)
		c.Next()
	}
}

// OptionalAuthMiddleware extracts the requester id when a valid token is
// present and lets the request through anonymously otherwise. Search uses
// it: anonymous searches skip block exclusion entirely.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if requesterID, ok := requesterIDFromHeader(c); ok {
			auth.SetRequesterIDToContext(c, requesterID)
		}
		c.Next()
	}
}

// AdminKeyMiddleware guards operator endpoints with a static API key.
func AdminKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminKey := environment_variables.EnvironmentVariables.ADMIN_API_KEY
		if adminKey == "" || c.GetHeader("X-Admin-Api-Key") != adminKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "2d1a9f0b-67b4-4d2e-8a3f-5c8e9d4b7f10",
			})
			return
		}
		c.Next()
	}
}

func requesterIDFromHeader(c *gin.Context) (uint, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return 0, false
	}

	token, err := jwt.ParseWithClaims(parts[1], &auth.RequesterClaim{}, func(token *jwt.Token) (interface{}, error) {
		return environment_variables.EnvironmentVariables.JWT_SECRET, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(*auth.RequesterClaim)
	if !ok {
		return 0, false
	}

	requesterID, err := claims.RequesterID()
	if err != nil {
		return 0, false
	}
	return requesterID, true
}
