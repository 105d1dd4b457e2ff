package importer

import (
	"strings"

	"github.com/fozemdestaque/portal/internal/wxr"
)

// buildAttachmentMap maps source attachment post ids to their media URLs,
// preferring the explicit wp:attachment_url and falling back to the guid.
// Malformed entries are silently dropped.
func buildAttachmentMap(channel *wxr.Channel) map[string]string {
	attachments := make(map[string]string)
	for _, item := range channel.Attachments() {
		id := item.PostID.String()
		if id == "" {
			continue
		}
		url := wxr.FirstNonEmpty(item.AttachmentURL, item.GUID).String()
		if url == "" || !strings.HasPrefix(url, "http") {
			continue
		}
		attachments[id] = url
	}
	return attachments
}

// resolveFeaturedImage looks up the item's _thumbnail_id meta value in the
// attachment map. Absence of a match yields "".
func resolveFeaturedImage(item wxr.Item, attachments map[string]string) string {
	thumbID := item.ThumbnailID()
	if thumbID == "" {
		return ""
	}
	return attachments[thumbID]
}
