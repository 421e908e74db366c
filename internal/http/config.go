package http

import (
	"github.com/ztacole/BacaDong/internal/demo"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Stores
	Books      BookStore
	Categories CategoryStore
	Members    MemberGetter
	Catalog    CatalogPages

	// Covers serves book cover images; nil leaves the route unregistered.
	Covers CoverResolver

	// Database is pinged by the health check; nil reports "not configured".
	Database Pinger

	// Member used when a request carries no X-Member-ID header
	DefaultMemberID uint

	// Limit for list endpoints called without ?limit=
	DefaultLimit int

	// Application info
	Version string

	// Demo mode
	DemoMiddleware *demo.Middleware

	// Expose Prometheus metrics on /metrics
	MetricsEnabled bool
}
