package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/auth/session
//
// Hands out an opaque session id for clients that prefer a server-issued
// handle over generating their own. No row is written; the cart record is
// created lazily on first cart access.
func CreateSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sessionId": uuid.NewString()})
	}
}
