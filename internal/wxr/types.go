// Package wxr decodes WordPress eXtended RSS (WXR) export documents into
// plain Go values the import pipeline can work with.
package wxr

import (
	"encoding/xml"
	"strings"
)

// Item post types we care about. Anything else (nav_menu_item, revision, ...)
// is ignored by the importer.
const (
	PostTypePost       = "post"
	PostTypeAttachment = "attachment"
)

// Status values as exported by WordPress.
const (
	StatusPublish = "publish"
)

// Channel is the decoded root of a WXR export: the declared source categories
// plus the ordered item list.
type Channel struct {
	Title      Value      `xml:"title"`
	Link       Value      `xml:"link"`
	Categories []Category `xml:"category"`
	Items      []Item     `xml:"item"`
}

// Category is a wp:category declaration at channel level.
type Category struct {
	Name     Value `xml:"cat_name"`
	NiceName Value `xml:"category_nicename"`
}

// Item is a single <item> entry: a post, an attachment, or something the
// importer does not handle.
type Item struct {
	Title         Value          `xml:"title"`
	Link          Value          `xml:"link"`
	GUID          Value          `xml:"guid"`
	PubDate       Value          `xml:"pubDate"`
	Content       Value          `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
	Excerpt       Value          `xml:"http://wordpress.org/export/1.2/excerpt/ encoded"`
	Description   Value          `xml:"description"`
	PostID        Value          `xml:"post_id"`
	PostDate      Value          `xml:"post_date"`
	PostName      Value          `xml:"post_name"`
	PostType      Value          `xml:"post_type"`
	Status        Value          `xml:"status"`
	AttachmentURL Value          `xml:"attachment_url"`
	Categories    []ItemCategory `xml:"category"`
	Meta          []Meta         `xml:"postmeta"`
}

// ItemCategory is a per-item <category> reference. Domain distinguishes
// categories from tags.
type ItemCategory struct {
	Domain   string `xml:"domain,attr"`
	NiceName string `xml:"nicename,attr"`
	Text     string `xml:",chardata"`
}

// Meta is a wp:postmeta key/value pair. The importer only looks at
// _thumbnail_id entries.
type Meta struct {
	Key   Value `xml:"meta_key"`
	Value Value `xml:"meta_value"`
}

// Value normalizes the heterogeneous shapes WXR exports use for element
// content: plain character data, CDATA sections, and elements with nested
// markup all collapse to a single trimmed string. A missing element is the
// zero Value and yields "".
type Value struct {
	raw string
}

// UnmarshalXML collects every piece of character data inside the element,
// descending through nested elements, so mixed content degrades to its text.
func (v *Value) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name == start.Name {
				v.raw = sb.String()
				return nil
			}
		}
	}
}

// String returns the trimmed text content, "" for absent or malformed input.
func (v Value) String() string {
	return strings.TrimSpace(v.raw)
}

// IsEmpty reports whether the value has no usable text.
func (v Value) IsEmpty() bool {
	return v.String() == ""
}

// FirstNonEmpty returns the first value with usable text, or the zero Value.
func FirstNonEmpty(values ...Value) Value {
	for _, v := range values {
		if !v.IsEmpty() {
			return v
		}
	}
	return Value{}
}
