// Package importer implements the WordPress (WXR) content import pipeline:
// parse the export, resolve categories and attachments, rehost images, and
// persist posts page by page.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fozemdestaque/portal/internal/entities"
	"github.com/fozemdestaque/portal/internal/storage"
	"github.com/fozemdestaque/portal/internal/utils"
	"github.com/fozemdestaque/portal/internal/wxr"
)

// DefaultBatchLimit bounds how many posts one invocation processes.
const DefaultBatchLimit = 50

// wpDateLayout is the post_date format WordPress exports use.
const wpDateLayout = "2006-01-02 15:04:05"

// Store is the slice of the content store the importer needs.
type Store interface {
	GetAllCategories() ([]entities.Category, error)
	GetCategoryBySlug(slug string) (*entities.Category, error)
	CreateCategory(category *entities.Category) error
	PostSlugExists(slug string) (bool, error)
	CreatePost(post *entities.Post) error
}

// Config tunes the importer.
type Config struct {
	MaxBatchLimit int           // upper bound for a caller-supplied limit
	UserAgent     string        // sent when fetching exports and images
	FetchTimeout  time.Duration // per-request timeout for remote fetches
}

// Importer drives WXR imports against the content store and blob storage.
type Importer struct {
	store    Store
	uploader storage.Uploader
	client   *http.Client
	cfg      Config
}

// New creates an Importer. The uploader may be nil, in which case runs that
// request image rehosting fail with a configuration error.
func New(store Store, uploader storage.Uploader, cfg Config) *Importer {
	if cfg.MaxBatchLimit <= 0 {
		cfg.MaxBatchLimit = DefaultBatchLimit
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "FozEmDestaque-Importer/1.0"
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	return &Importer{
		store:    store,
		uploader: uploader,
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		cfg:      cfg,
	}
}

// RunOptions describes one import invocation. Exactly one of Data and
// SourceURL must be set.
type RunOptions struct {
	Data       []byte // raw WXR bytes, e.g. from an uploaded file
	SourceURL  string // remote export to fetch instead
	Offset     int
	Limit      int
	SkipImages bool   // persist original image URLs verbatim
	AuthorID   string // owner of the created posts
}

// Summary reports the outcome of one import invocation.
type Summary struct {
	Imported          int      `json:"imported"`
	Skipped           int      `json:"skipped"`
	Failed            int      `json:"failed"`
	Total             int      `json:"total"`
	HasMore           bool     `json:"has_more"`
	NextOffset        *int     `json:"next_offset,omitempty"`
	CategoriesCreated int      `json:"categories_created"`
	Errors            []string `json:"errors,omitempty"`
}

// runState carries the run-scoped maps so repeated runs cannot
// cross-contaminate each other.
type runState struct {
	categories  map[string]string // category slug -> destination id
	attachments map[string]string // attachment post id -> source URL
	images      *imageCache
}

// ErrStorageNotConfigured refuses rehosting runs when no blob storage
// credentials are present.
var ErrStorageNotConfigured = errors.New("blob storage is not configured: set the storage credentials or run with skip_images")

// Run executes one paged import invocation. A rehosting run without a
// configured uploader is refused before anything is parsed or written.
func (imp *Importer) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	if !opts.SkipImages && imp.uploader == nil {
		return nil, ErrStorageNotConfigured
	}

	data, err := imp.acquire(ctx, opts)
	if err != nil {
		return nil, err
	}

	channel, err := wxr.Parse(data)
	if err != nil {
		return nil, err
	}

	state := &runState{images: newImageCache()}
	state.attachments = buildAttachmentMap(channel)

	created, err := imp.resolveCategories(channel, state)
	if err != nil {
		return nil, fmt.Errorf("resolving categories: %w", err)
	}

	posts := channel.Posts()
	total := len(posts)

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	limit := opts.Limit
	if limit <= 0 || limit > imp.cfg.MaxBatchLimit {
		limit = imp.cfg.MaxBatchLimit
	}

	batch := pageOf(posts, offset, limit)

	summary := &Summary{Total: total, CategoriesCreated: created}
	for _, item := range batch {
		if err := imp.importItem(ctx, item, opts, state, summary); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, err.Error())
			log.Printf("Import: item %q failed: %v", item.Title.String(), err)
		}
	}

	if offset+len(batch) < total {
		summary.HasMore = true
		next := offset + len(batch)
		summary.NextOffset = &next
	}

	return summary, nil
}

// RunAll repeatedly invokes Run with increasing offsets until the source is
// exhausted, merging the page summaries. Paging starts at the caller's
// offset. Used by the CLI and the feed sync.
func (imp *Importer) RunAll(ctx context.Context, opts RunOptions) (*Summary, error) {
	merged := &Summary{}
	for {
		page, err := imp.Run(ctx, opts)
		if err != nil {
			return nil, err
		}
		merged.Imported += page.Imported
		merged.Skipped += page.Skipped
		merged.Failed += page.Failed
		merged.CategoriesCreated += page.CategoriesCreated
		merged.Errors = append(merged.Errors, page.Errors...)
		merged.Total = page.Total
		if !page.HasMore {
			return merged, nil
		}
		opts.Offset = *page.NextOffset
	}
}

// importItem runs steps (a)-(k) for a single source post. A returned error
// counts the item as failed; processing of the batch continues.
func (imp *Importer) importItem(ctx context.Context, item wxr.Item, opts RunOptions, state *runState, summary *Summary) error {
	title := item.Title.String()
	if title == "" {
		summary.Skipped++
		return nil
	}

	status := entities.PostStatusDraft
	if item.Status.String() == wxr.StatusPublish {
		status = entities.PostStatusPublished
	}

	content := wxr.FirstNonEmpty(item.Content, item.Description).String()
	excerpt := item.Excerpt.String()

	baseSlug := utils.Slugify(item.PostName.String())
	if baseSlug == "" {
		baseSlug = utils.Slugify(title)
	}

	categoryID := imp.resolveItemCategory(item, state)
	featured := resolveFeaturedImage(item, state.attachments)

	if !opts.SkipImages {
		content, featured = imp.rehostImages(ctx, content, featured, state.images)
	}

	slug, err := imp.allocateSlug(baseSlug)
	if err != nil {
		return fmt.Errorf("allocating slug for %q: %w", title, err)
	}

	var publishedAt *time.Time
	if status == entities.PostStatusPublished {
		publishedAt = parsePublishDate(item)
	}

	post := &entities.Post{
		Title:         title,
		Slug:          slug,
		Excerpt:       excerpt,
		Content:       content,
		FeaturedImage: featured,
		CategoryID:    categoryID,
		Status:        status,
		AuthorID:      opts.AuthorID,
		PublishedAt:   publishedAt,
	}

	if err := imp.store.CreatePost(post); err != nil {
		return fmt.Errorf("inserting %q: %w", title, err)
	}

	summary.Imported++
	return nil
}

// acquire returns the raw WXR bytes for this run, reading them from the
// request body or fetching the configured remote URL.
func (imp *Importer) acquire(ctx context.Context, opts RunOptions) ([]byte, error) {
	if len(opts.Data) > 0 {
		return opts.Data, nil
	}
	if opts.SourceURL == "" {
		return nil, fmt.Errorf("no import source: provide a file or a URL")
	}
	if !strings.HasPrefix(opts.SourceURL, "http") {
		return nil, fmt.Errorf("invalid source URL %q", opts.SourceURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.SourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building fetch request: %w", err)
	}
	req.Header.Set("User-Agent", imp.cfg.UserAgent)

	resp, err := imp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching export: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return data, nil
}

// parsePublishDate prefers wp:post_date, falling back to the RFC1123-style
// pubDate. Unparseable dates yield nil rather than an error.
func parsePublishDate(item wxr.Item) *time.Time {
	if raw := item.PostDate.String(); raw != "" {
		if t, err := time.Parse(wpDateLayout, raw); err == nil {
			return &t
		}
	}
	if raw := item.PubDate.String(); raw != "" {
		if t, err := time.Parse(time.RFC1123Z, raw); err == nil {
			return &t
		}
	}
	return nil
}

// pageOf slices items to the [offset, offset+limit) window.
func pageOf(items []wxr.Item, offset, limit int) []wxr.Item {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
