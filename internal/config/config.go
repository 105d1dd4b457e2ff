package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Storage
		Import
		FeedSync
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	// Storage configures the Supabase bucket used for rehosted images.
	// Leaving URL or key empty disables rehosting.
	Storage struct {
		SupabaseURL string
		SupabaseKey string
		Bucket      string
	}
	Import struct {
		MaxBatchLimit int
		UserAgent     string
		FetchTimeout  time.Duration
	}
	// FeedSync schedules periodic imports of a remote WXR export.
	FeedSync struct {
		Enabled    bool
		Schedule   string // Cron format: "0 * * * *" = hourly
		SourceURL  string
		SkipImages bool
	}
	Auth struct {
		BcryptCost int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Blob storage defaults
	v.SetDefault("supabase_url", "")
	v.SetDefault("supabase_service_key", "")
	v.SetDefault("storage_bucket", "public-images")

	// Import defaults
	v.SetDefault("import_max_batch_limit", 50)
	v.SetDefault("import_user_agent", DefaultImportUserAgent)
	v.SetDefault("import_fetch_timeout", "30s")

	// Feed sync defaults
	v.SetDefault("feed_sync_enabled", false)
	v.SetDefault("feed_sync_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("feed_sync_url", "")
	v.SetDefault("feed_sync_skip_images", false)

	// Auth defaults
	v.SetDefault("auth_bcrypt_cost", 12)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			SupabaseURL: v.GetString("SUPABASE_URL"),
			SupabaseKey: v.GetString("SUPABASE_SERVICE_KEY"),
			Bucket:      v.GetString("STORAGE_BUCKET"),
		},
		Import: Import{
			MaxBatchLimit: v.GetInt("IMPORT_MAX_BATCH_LIMIT"),
			UserAgent:     v.GetString("IMPORT_USER_AGENT"),
			FetchTimeout:  v.GetDuration("IMPORT_FETCH_TIMEOUT"),
		},
		FeedSync: FeedSync{
			Enabled:    v.GetBool("FEED_SYNC_ENABLED"),
			Schedule:   v.GetString("FEED_SYNC_SCHEDULE"),
			SourceURL:  v.GetString("FEED_SYNC_URL"),
			SkipImages: v.GetBool("FEED_SYNC_SKIP_IMAGES"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
	}
}

// StorageConfigured reports whether blob storage credentials are present.
func (c *Config) StorageConfigured() bool {
	return c.Storage.SupabaseURL != "" && c.Storage.SupabaseKey != ""
}
