package http

import (
	"github.com/fozemdestaque/portal/internal/auth"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
// This replaces a long parameter list in NewRouter for better
// maintainability.
type RouterConfig struct {
	// Stores backing the public API
	PostStore     PostStore
	CategoryStore CategoryStore
	UserStore     UserStore

	// Import pipeline
	Importer WXRImporter

	// Authentication
	AuthMiddleware *auth.Middleware

	// Application info
	Version string
}
