// Package cli implements the portal's command line subcommands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fozemdestaque/portal/internal/config"
	"github.com/fozemdestaque/portal/internal/database"
	"github.com/fozemdestaque/portal/internal/importer"
	"github.com/fozemdestaque/portal/internal/storage"
)

// WXRImportCommand imports a WordPress export into the portal database.
type WXRImportCommand struct {
	FilePath   string
	URL        string
	Offset     int
	Limit      int
	SkipImages bool
	All        bool
}

// NewWXRImportCommand creates a new WXRImportCommand.
func NewWXRImportCommand() *WXRImportCommand {
	return &WXRImportCommand{}
}

// ParseFlags parses command line flags.
func (cmd *WXRImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("wxr-import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to a WXR export file")
	fs.StringVar(&cmd.URL, "url", "", "URL of a remote WXR export")
	fs.IntVar(&cmd.Offset, "offset", 0, "Index of the first post to import")
	fs.IntVar(&cmd.Limit, "limit", 0, "Posts per batch (0 uses the configured default)")
	fs.BoolVar(&cmd.SkipImages, "skip-images", false, "Keep original image URLs instead of rehosting")
	fs.BoolVar(&cmd.All, "all", false, "Import every batch until the export is exhausted")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s wxr-import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import posts from a WordPress WXR export into the portal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s wxr-import -file export.xml -all\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s wxr-import -url https://antigo.fozemdestaque.com.br/export.xml -offset 50 -limit 50\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s wxr-import -file export.xml -skip-images\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" && cmd.URL == "" {
		fs.Usage()
		return fmt.Errorf("either -file or -url is required")
	}
	if cmd.FilePath != "" && cmd.URL != "" {
		return fmt.Errorf("-file and -url are mutually exclusive")
	}

	return nil
}

// Run executes the import.
func (cmd *WXRImportCommand) Run() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	var uploader storage.Uploader
	if cfg.StorageConfigured() {
		uploader = storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey, cfg.Storage.Bucket)
	} else if !cmd.SkipImages {
		fmt.Println("Supabase storage is not configured; importing with -skip-images")
		cmd.SkipImages = true
	}

	admin, err := db.GetAdminUser()
	if err != nil {
		return fmt.Errorf("no admin account found, create one with 'create-user -role admin' first: %w", err)
	}

	opts := importer.RunOptions{
		SourceURL:  cmd.URL,
		Offset:     cmd.Offset,
		Limit:      cmd.Limit,
		SkipImages: cmd.SkipImages,
		AuthorID:   admin.ID,
	}

	if cmd.FilePath != "" {
		absPath, err := filepath.Abs(cmd.FilePath)
		if err != nil {
			return fmt.Errorf("failed to resolve export path: %w", err)
		}
		data, err := os.ReadFile(absPath)
		if err != nil {
			return fmt.Errorf("failed to read export file: %w", err)
		}
		opts.Data = data
		fmt.Printf("Importing from %s\n", absPath)
	} else {
		fmt.Printf("Importing from %s\n", cmd.URL)
	}

	imp := importer.New(db, uploader, importer.Config{
		MaxBatchLimit: cfg.Import.MaxBatchLimit,
		UserAgent:     cfg.Import.UserAgent,
		FetchTimeout:  cfg.Import.FetchTimeout,
	})

	ctx := context.Background()

	var summary *importer.Summary
	if cmd.All {
		summary, err = imp.RunAll(ctx, opts)
	} else {
		summary, err = imp.Run(ctx, opts)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("\nImported:           %d\n", summary.Imported)
	fmt.Printf("Skipped:            %d\n", summary.Skipped)
	fmt.Printf("Failed:             %d\n", summary.Failed)
	fmt.Printf("Categories created: %d\n", summary.CategoriesCreated)
	for _, msg := range summary.Errors {
		fmt.Printf("  error: %s\n", msg)
	}
	if summary.HasMore && summary.NextOffset != nil {
		fmt.Printf("More posts remain, continue with -offset %d\n", *summary.NextOffset)
	}

	return nil
}
