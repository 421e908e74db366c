package demo

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ztacole/BacaDong/internal/logging"
)

// ContextKeyDemoMode is set on every request while the middleware is mounted.
const ContextKeyDemoMode = "demo_mode"

// ReaderRoutes are the write routes a demo visitor may still call: opening,
// viewing and rating books only touch book_history.
var ReaderRoutes = []string{
	"/api/books/:id/open",
	"/api/books/:id/views",
	"/api/books/:id/rating",
}

// Middleware keeps the catalog read-only in demo mode. Reads and reader
// activity pass; category and catalog edits are refused with 403.
type Middleware struct {
	enabled bool
	allowed map[string]struct{}
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	allowed := make(map[string]struct{}, len(ReaderRoutes))
	for _, route := range ReaderRoutes {
		allowed[route] = struct{}{}
	}
	return &Middleware{enabled: enabled, allowed: allowed}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks catalog writes. It matches on
// the registered route pattern, so it must be mounted on the engine rather
// than wrapped around it.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if _, ok := m.allowed[c.FullPath()]; ok {
			c.Next()
			return
		}

		log := logging.Component("demo")
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Blocked write in demo mode")
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "This action is disabled in demo mode",
			"demo_mode": true,
		})
	}
}

// InjectContext adds the demo flag to the request context.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)
		c.Next()
	}
}
