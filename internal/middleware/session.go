package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"veeloway/internal/auth"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "veeloway_session"

// SessionGuard returns middleware that gates routes on session presence.
// The token comes from the session cookie or a Bearer header. Requests
// without a live session get 401; the guard never inspects who the session
// belongs to.
func SessionGuard(sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)

		present, err := sessions.Present(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session check failed"})
			return
		}
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
