package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/statusboard/tool"
)

const (
	SessionCookie = "statusboard_session"
	sessionKey    = "sessionId"
)

// Session makes sure every request carries a dashboard session id, issuing a cookie when needed.
func Session(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || !tool.IsValidSessionID(id) {
			id = tool.GenerateRandomUUID()
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(SessionCookie, id, maxAgeSeconds, "/", "", c.Request.TLS != nil, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the id stored by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
