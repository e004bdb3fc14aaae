package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "user_email"
)

// UserID extracts the authenticated user's ID from the Gin context.
// Set by TokenMiddleware; empty means the request was not authenticated.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}
