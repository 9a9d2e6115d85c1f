// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. Tokens resolve to users
// through the in-memory user cache, so the check is CPU-only and adds no
// storage round trip to the request path.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spacenote/spacenote/internal/domain"
)

// userKey is the Gin context key holding the authenticated domain.User.
const userKey = "user"

// TokenResolver resolves an authentication token to a user. Implemented by
// the user service's cache-backed lookup.
type TokenResolver interface {
	GetByToken(token string) (domain.User, error)
}

// Auth returns a middleware that requires a valid bearer token.
//
// Expects: Authorization: Bearer <token>. A missing or malformed header, or
// a token that resolves to no user, aborts with a 401 envelope. On success
// the user and username are stored in the Gin context for handlers and the
// access log.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "missing or malformed Authorization header")
			return
		}

		u, err := resolver.GetByToken(token)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}

		c.Set(userKey, u)
		c.Set(usernameKey, u.Username)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Auth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(domain.User); ok {
			return u, true
		}
	}
	return domain.User{}, false
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.GetString(requestIDKey),
		"code":       "authentication_error",
		"message":    msg,
	})
}
