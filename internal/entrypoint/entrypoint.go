package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fozemdestaque/portal/internal/auth"
	"github.com/fozemdestaque/portal/internal/config"
	"github.com/fozemdestaque/portal/internal/database"
	http_controllers "github.com/fozemdestaque/portal/internal/http"
	"github.com/fozemdestaque/portal/internal/importer"
	"github.com/fozemdestaque/portal/internal/scheduler"
	"github.com/fozemdestaque/portal/internal/storage"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. SIGKILL cannot be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Foz em Destaque portal v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Blob storage is optional. Without it, imports keep original image URLs
	// unless the caller asks for rehosting, which then fails per run.
	var uploader storage.Uploader
	if cfg.StorageConfigured() {
		uploader = storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey, cfg.Storage.Bucket)
		log.Printf("Blob storage configured: bucket %q", cfg.Storage.Bucket)
	} else {
		log.Printf("WARNING: Supabase storage is not configured. Image rehosting is disabled. Set 'SUPABASE_URL' and 'SUPABASE_SERVICE_KEY' environment variables to enable.")
	}

	imp := importer.New(db, uploader, importer.Config{
		MaxBatchLimit: cfg.Import.MaxBatchLimit,
		UserAgent:     cfg.Import.UserAgent,
		FetchTimeout:  cfg.Import.FetchTimeout,
	})

	authMiddleware := auth.NewMiddleware(db)

	routerCfg := http_controllers.RouterConfig{
		PostStore:      db,
		CategoryStore:  db,
		UserStore:      db,
		Importer:       imp,
		AuthMiddleware: authMiddleware,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	feedSync := scheduler.NewFeedSyncScheduler(imp, db, cfg.FeedSync)
	if err := feedSync.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start feed sync scheduler: %v", err)
	}

	onShutdown := func(ctx context.Context) {
		feedSync.Stop()
	}

	Serve(router, cfg, onShutdown)
}
