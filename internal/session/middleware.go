package session

import (
	"net/http"

	"autotradespot_backend/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextSessionIDKey is the gin context key for the browsing session id.
const ContextSessionIDKey = "sessionID"

// Middleware makes sure every request carries a session cookie.
func Middleware(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.GetSessionCookieName())
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.GetSessionCookieName(),
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.GetSessionTTL().Seconds()),
				HttpOnly: true,
				Secure:   cfg.GetSessionCookieSecure(),
				SameSite: cfg.GetSessionCookieSameSite(),
			})
		}
		c.Set(ContextSessionIDKey, id)
		c.Next()
	}
}

// ID returns the session id attached by Middleware.
func ID(c *gin.Context) string {
	return c.GetString(ContextSessionIDKey)
}
