package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trailporter/internal/domain"
	"trailporter/internal/services"
)

// SessionCookieName is the browser cookie holding the session id.
const SessionCookieName = "session"

// SessionTTLSeconds is the cookie max age, mirroring the server-side expiry.
const SessionTTLSeconds = int(services.SessionTTL / time.Second)

const (
	ctxUserIDKey   = "auth_user_id"
	ctxUsernameKey = "auth_username"
	ctxRoleKey     = "auth_role"
)

// SetSessionCookie writes the session cookie the way the auth flow expects:
// httpOnly, SameSite=Lax, whole-site path.
func SetSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, sessionID, SessionTTLSeconds, "/", "", false, true)
}

// ClearSessionCookie removes the cookie on logout or when the session died.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// Session resolves the session cookie on every request. Missing or dead
// sessions leave the request anonymous; route guards decide whether that is
// acceptable.
func Session(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		user, err := auth.Authenticate(sessionID)
		if err != nil {
			if domain.IsUnauthorized(err) {
				ClearSessionCookie(c)
			}
			c.Next()
			return
		}

		c.Set(ctxUserIDKey, user.ID)
		c.Set(ctxUsernameKey, user.Username)
		c.Set(ctxRoleKey, user.Role)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Session, if any.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	id, ok := c.Get(ctxUserIDKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	username, _ := c.Get(ctxUsernameKey)
	role, _ := c.Get(ctxRoleKey)

	rc := domain.RequestContext{}
	if s, ok := id.(string); ok {
		rc.UserID = s
	}
	if s, ok := username.(string); ok {
		rc.Username = s
	}
	if r, ok := role.(domain.Role); ok {
		rc.Role = r
	}
	return rc, rc.UserID != ""
}

// RequireUser aborts anonymous requests.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireRoles aborts unless the user holds one of the given roles.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
