package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/fozemdestaque/portal/internal/auth"
	"github.com/fozemdestaque/portal/internal/database"
	"github.com/fozemdestaque/portal/internal/http"
	"github.com/fozemdestaque/portal/internal/importer"
	"github.com/fozemdestaque/portal/internal/scheduler"
	"github.com/fozemdestaque/portal/internal/storage"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.PostStore = (*database.Database)(nil)
var _ http.CategoryStore = (*database.Database)(nil)
var _ http.UserStore = (*database.Database)(nil)
var _ auth.TokenStore = (*database.Database)(nil)
var _ scheduler.AdminResolver = (*database.Database)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

var _ importer.Store = (*database.Database)(nil)
var _ http.WXRImporter = (*importer.Importer)(nil)

// =============================================================================
// Blob Storage
// =============================================================================

var _ storage.Uploader = (*storage.SupabaseStorage)(nil)
