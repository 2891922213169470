package httpapi

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskforge/scheduler/internal/id"
)

const sessionUserIDKey = "user_id"

// RequireAuth mirrors the teacher's middleware.RequireAuth: it resolves
// the authenticated user from the session cookie and aborts with 401
// if none is set.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw, ok := session.Get(sessionUserIDKey).(string)
		if !ok || raw == "" {
			unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		userID, err := id.Parse(raw)
		if err != nil {
			unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Set(sessionUserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID retrieves the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) (id.ID, bool) {
	v, exists := c.Get(sessionUserIDKey)
	if !exists {
		return id.Nil, false
	}
	userID, ok := v.(id.ID)
	return userID, ok
}
