package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/session"
)

const (
	sessionKey = "portalSession"
	storeKey   = "portalSessionStore"
)

// Session loads the browser session before the handler runs. A store failure
// is logged and the request continues with an empty session.
func Session(store session.Store, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Load(c.Request.Context(), c.Request)
		if err != nil {
			logging.FromContext(c.Request.Context(), logger).Warn("session load failed", "error", err)
		}
		c.Set(sessionKey, sess)
		c.Set(storeKey, store)
		c.Next()
	}
}

// SessionFrom returns the session loaded for the request.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	sess := session.New()
	c.Set(sessionKey, sess)
	return sess
}

// SaveSession writes the session back. It must run before the response body
// is written. Failures are logged and never fail the response.
func SaveSession(c *gin.Context) {
	v, ok := c.Get(storeKey)
	if !ok {
		return
	}
	store, ok := v.(session.Store)
	if !ok {
		return
	}
	if err := store.Save(c.Request.Context(), c.Writer, SessionFrom(c)); err != nil {
		logging.FromContext(c.Request.Context(), nil).Error("session save failed", "error", err)
	}
}

// SessionGate enforces session validity on page routes. The landing page
// always drops the stored role; elsewhere a token role without a token is
// cleared and the browser is sent back to the landing page.
func SessionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if session.Validate(sess, c.Request.URL.Path) {
			c.Next()
			return
		}
		SaveSession(c)
		Navigate(c, session.RouteLanding)
		c.Abort()
	}
}

// IsFragmentRequest reports whether htmx issued the request.
func IsFragmentRequest(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// Navigate performs a full page navigation, through HX-Redirect for
// fragment requests.
func Navigate(c *gin.Context, location string) {
	if IsFragmentRequest(c) {
		c.Header("HX-Redirect", location)
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}
