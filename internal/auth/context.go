package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/multiweb/multiweb-backend/internal/users"
)

const (
	CtxUserID = "user_id"
	CtxUser   = "user"
)

// UserID extracts the authenticated user's id from the gin context.
// Set by Middleware.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// CurrentUser returns the full user row loaded by Middleware, or nil.
func CurrentUser(c *gin.Context) *users.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, ok := v.(*users.User)
	if !ok {
		return nil
	}
	return u
}
