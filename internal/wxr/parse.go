package wxr

import (
	"encoding/xml"
	"errors"
)

// ErrInvalidFormat is returned when the document has no channel node under
// either an rss root or a bare channel root.
var ErrInvalidFormat = errors.New("invalid WXR format: channel not found")

type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel *Channel `xml:"channel"`
}

// Parse decodes a WXR export. The channel is accepted either nested under the
// usual <rss> root or as the document root itself.
func Parse(data []byte) (*Channel, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err == nil && doc.Channel != nil {
		return doc.Channel, nil
	}

	var channel struct {
		XMLName xml.Name `xml:"channel"`
		Channel
	}
	if err := xml.Unmarshal(data, &channel); err == nil {
		return &channel.Channel, nil
	}

	return nil, ErrInvalidFormat
}

// Posts returns the items with post_type "post", in document order.
func (c *Channel) Posts() []Item {
	var posts []Item
	for _, item := range c.Items {
		if item.PostType.String() == PostTypePost {
			posts = append(posts, item)
		}
	}
	return posts
}

// Attachments returns the items with post_type "attachment", in document order.
func (c *Channel) Attachments() []Item {
	var attachments []Item
	for _, item := range c.Items {
		if item.PostType.String() == PostTypeAttachment {
			attachments = append(attachments, item)
		}
	}
	return attachments
}

// ThumbnailID returns the value of the item's _thumbnail_id meta entry,
// or "" when the item has none.
func (i Item) ThumbnailID() string {
	for _, m := range i.Meta {
		if m.Key.String() == "_thumbnail_id" {
			return m.Value.String()
		}
	}
	return ""
}

// CategoryReference returns the first category reference whose domain is
// "category", skipping tags and other taxonomies. The second return value is
// false when the item carries none.
func (i Item) CategoryReference() (ItemCategory, bool) {
	for _, c := range i.Categories {
		if c.Domain == "category" {
			return c, true
		}
	}
	return ItemCategory{}, false
}
