package middleware

import (
	"net/http"
	"time"

	"balkan-spine-wellness/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName identifies the visitor's page session
	SessionCookieName = "bsw_session"
	sessionCookieTTL  = 24 * time.Hour
)

// VisitorSession makes sure every visitor carries a session id cookie. The
// id only keys the in-memory contact form state; nothing is persisted.
func VisitorSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookieName)
		if _, parseErr := uuid.Parse(id); err != nil || parseErr != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, id, int(sessionCookieTTL.Seconds()), "/", "", isSecure(c), true)
		}
		c.Set(string(domain.KeySessionID), id)
		c.Next()
	}
}

// SessionID returns the id stored by VisitorSession.
func SessionID(c *gin.Context) string {
	return c.GetString(string(domain.KeySessionID))
}

func isSecure(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}
