package middleware

import (
	"net/http"
	"strings"

	"github.com/sahajbooks/gst_books_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are never reported to PostHog.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// PosthogMiddleware reports successful authenticated API calls as PostHog
// events named after the route (e.g. "api_v1_workspaces"). Unauthenticated
// requests and error responses are not tracked.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			// Unmatched routes (404s) have no FullPath.
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}
