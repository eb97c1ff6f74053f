package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const SessionHeader = "X-Session-Id"

// RequireSession extracts the client-generated session id that correlates
// anonymous cart state across requests.
func RequireSession(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Session-Id required"})
		return
	}
	c.Set("session_id", sessionID)
	c.Next()
}
