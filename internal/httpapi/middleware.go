package httpapi

import (
	"net/http"
	"time"

	"github.com/fliprlabs/portfolio-api/internal/session"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Context keys set by the session gate.
const (
	// ContextAdminID is the gin context key holding the session owner's ID.
	ContextAdminID = "adminID"
	// ContextSessionToken is the gin context key holding the cookie token.
	ContextSessionToken = "sessionToken"
)

// RequireSession admits a request if and only if its cookie resolves to an
// authenticated, unexpired session. It performs no session mutation.
func RequireSession(sessions *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errCookie := c.Cookie(cookieName)
		if errCookie != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		sess, ok := sessions.Get(token)
		if !ok || !sess.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		c.Set(ContextAdminID, sess.AdminID)
		c.Set(ContextSessionToken, token)
		c.Next()
	}
}

// RequestLogger logs one line per request with method, path, status and
// latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Info("request")
	}
}
