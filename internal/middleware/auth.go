package middleware

import (
	"log/slog"
	"net/http"

	"linkhub/internal/models"
	"linkhub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// CheckUserKey holds the *models.User of the logged in visitor.
	CheckUserKey = "user"
	// SessionTokenKey is where the opaque session token lives inside the SESSION cookie.
	SessionTokenKey = "token"
)

// CurrentUser returns the logged in user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(CheckUserKey)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// AuthRequired ensures a user is logged in. LoadUser must run first.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			// 表单和脚本请求直接返回 401
			if c.Request.Method != http.MethodGet {
				c.String(http.StatusUnauthorized, "You must be logged in to do that!")
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser resolves the session token from the cookie and sets the user on the context.
// Unknown or expired tokens are cleared from the cookie.
func LoadUser(sessionService services.SessionService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(SessionTokenKey).(string)

		if token != "" {
			user, err := sessionService.GetUserFromSession(c.Request.Context(), token)
			switch {
			case err != nil:
				logger.Error("Failed to resolve session", "error", err, "request_id", RequestID(c))
			case user == nil:
				session.Delete(SessionTokenKey)
				if err := session.Save(); err != nil {
					logger.Warn("Failed to clear stale session cookie", "error", err)
				}
			default:
				c.Set(CheckUserKey, user)
			}
		}
		c.Next()
	}
}
