// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - PostStore: published post listing (internal/http/posts.go)
//   - CategoryStore: category listing (internal/http/categories.go)
//   - UserStore: credential lookup for login (internal/http/login.go)
//   - TokenStore: bearer token resolution (internal/auth/middleware.go)
//   - importer.Store: the subset of the database the import pipeline writes through
//
// ## Import Pipeline Interfaces
//
//   - WXRImporter: one paged import invocation (internal/http/import_wxr.go)
//   - storage.Uploader: blob uploads for rehosted images (internal/storage/storage.go)
//
// # Adding a New Import Source
//
// To import posts from a source other than a WordPress WXR export:
//
//  1. Parse the source format into importer-friendly values.
//
//  2. Create an HTTP handler in internal/http/ that builds importer.RunOptions
//     and calls the pipeline.
//
//  3. Register the route in router.go behind auth.RequireImportPermission.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
