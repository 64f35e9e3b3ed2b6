package http

import (
	"log/slog"

	"github.com/mrlokans/quotes/internal/auth"
	"github.com/mrlokans/quotes/internal/readonly"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Store    CatalogStore
	Database Pinger
	Logger   *slog.Logger

	// Pagination bounds for every listing
	Pagination PageLimits

	// UI paths; an empty TemplatesPath uses the embedded pages
	TemplatesPath string
	StaticPath    string

	// Web safety, all optional
	SessionManager *auth.SessionManager
	CSRFSecret     []byte // nil disables CSRF
	SecureCookies  bool
	AdminGuard     *auth.AdminGuard
	ReadOnly       *readonly.Middleware
	CORSOrigins    []string

	// Task queue client (optional)
	TaskQueue TaskQueue

	// Application info
	Version string
}
