package http

import (
	"github.com/gin-gonic/gin"

	"github.com/fozemdestaque/portal/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Resolve bearer tokens on every request; public endpoints simply
	// ignore the resolved user.
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	healthController := NewHealthController()
	router.GET("/health", healthController.Health)
	router.GET("/ping", healthController.Ping)

	if cfg.UserStore != nil {
		authController := NewAuthController(cfg.UserStore)
		router.POST("/api/auth/login", authController.Login)
	}

	postsController := NewPostsController(cfg.PostStore)
	router.GET("/api/posts", postsController.List)
	router.GET("/api/posts/:slug", postsController.Get)

	categoriesController := NewCategoriesController(cfg.CategoryStore)
	router.GET("/api/categories", categoriesController.List)

	admin := router.Group("/api/admin")
	admin.Use(auth.RequireImportPermission())
	{
		importController := NewWXRImportController(cfg.Importer)
		admin.POST("/import/wordpress", importController.Import)
	}

	return router
}
