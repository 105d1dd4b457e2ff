package importer

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// maxImageBytes caps how much of a remote image is read.
const maxImageBytes = 20 * 1024 * 1024

// imageCache memoizes rehost results within a single run so an image
// referenced by several posts (or by both the featured field and the body)
// is fetched and uploaded once. Failures are cached too, as "".
type imageCache struct {
	urls map[string]string
}

func newImageCache() *imageCache {
	return &imageCache{urls: make(map[string]string)}
}

// rehostImages rewrites a post's body and featured image to durable URLs.
// URLs that fail to rehost keep their original value; the post is still
// imported. Run guarantees the uploader is present before any item
// reaches this point.
func (imp *Importer) rehostImages(ctx context.Context, content, featured string, cache *imageCache) (string, string) {
	for _, original := range collectImageURLs(content, featured) {
		durable, cached := cache.urls[original]
		if !cached {
			durable = imp.rehostOne(ctx, original)
			cache.urls[original] = durable
		}
		if durable == "" {
			continue
		}
		content = strings.ReplaceAll(content, original, durable)
		if featured == original {
			featured = durable
		}
	}

	return content, featured
}

// collectImageURLs returns the distinct image URLs a post references: the
// featured image plus every <img src> in the body, in first-seen order.
func collectImageURLs(content, featured string) []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || !strings.HasPrefix(u, "http") || seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}

	add(featured)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return urls
	}
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			add(src)
		}
	})

	return urls
}

// rehostOne downloads one image and uploads it to blob storage, returning
// the durable URL or "" on any failure. It never returns an error: callers
// fall back to the original URL.
func (imp *Importer) rehostOne(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", imp.cfg.UserAgent)

	resp, err := imp.client.Do(req)
	if err != nil {
		log.Printf("Import: fetching image %s: %v", url, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Import: fetching image %s: status %d", url, resp.StatusCode)
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		log.Printf("Import: reading image %s: %v", url, err)
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	path := fmt.Sprintf("imports/%d-%s%s", time.Now().UnixNano(), shortID(), extensionFor(contentType))

	durable, err := imp.uploader.Upload(ctx, path, data, contentType)
	if err != nil {
		log.Printf("Import: uploading image %s: %v", url, err)
		return ""
	}
	return durable
}

// extensionFor picks a file extension from the response content type,
// defaulting to jpg.
func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	default:
		return ".jpg"
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}
