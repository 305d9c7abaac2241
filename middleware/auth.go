package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionCookieName is accepted as an alternative to the Authorization
// header for browser clients.
const SessionCookieName = "session_token"

func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// RequireAuth resolves the session token and aborts with 401 when it is
// missing, unknown or expired.
func RequireAuth(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Login required.",
			})
			return
		}

		session, err := sessions.GetByToken(token)
		if err != nil {
			if errors.Is(err, services.ErrSessionExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"status":  "error",
					"message": "Login required.",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to check session.",
			})
			return
		}

		c.Set(sessionContextKey, &session)
		c.Next()
	}
}

// RequireCapability aborts with 403 before the handler runs unless one of
// the caller's roles carries the capability. Must sit behind RequireAuth.
func RequireCapability(auth *services.AuthService, capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Login required.",
			})
			return
		}

		ok, err := auth.HasCapability(session.StaffID, capability)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to check permissions.",
			})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "You do not have permission to perform this action.",
			})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session attached by RequireAuth, or nil outside an
// authenticated route.
func SessionFrom(c *gin.Context) *models.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}
