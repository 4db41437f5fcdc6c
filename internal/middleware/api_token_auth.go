package middleware

import (
	"log/slog"
	"strings"

	"github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// APITokenAuth authenticates requests carrying a personal API token in the
// x-api-key header. A valid token marks the request authenticated so the
// JWT middleware skips it; anything else falls through to JWT auth.
func APITokenAuth(tokenSvc services.APITokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" || !strings.HasPrefix(apiKey, "gba_") {
			c.Next()
			return
		}

		user, err := tokenSvc.ValidateToken(c.Request.Context(), apiKey)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("API token rejected", slog.String("error", err.Error()))
			c.Next()
			return
		}

		setAuthenticatedUser(c, user.UserID)
		c.Set(authMethodKey, "api_token")
		c.Next()
	}
}
