package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private key type for values this package stores in
// request contexts, so they cannot collide with other packages' keys.
type contextKey string

const (
	loggerKey     = contextKey("logger")
	userIDKey     = contextKey("userID")
	authMethodKey = "authMethod"
)

// setAuthenticatedUser records the authenticated user's ID in both the gin
// context and the request context, so services reached through
// c.Request.Context() see it too.
func setAuthenticatedUser(c *gin.Context, userID string) {
	c.Set(string(userIDKey), userID)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, userID))
}

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware. The second return reports whether a user is authenticated.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}
