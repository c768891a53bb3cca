// Package feed synthesizes RSS 2.0 documents from extracted items.
package feed

import (
	"crypto/md5" //nolint:gosec // identifiers, not security
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/html2rss/pkg/domain"
	"github.com/umputun/html2rss/pkg/token"
)

const (
	// ItemInterval separates synthetic publication times of neighbour items
	ItemInterval = 60 * time.Second
	// TimeFormat is the RFC 822 style GMT date used for pubDate and lastBuildDate
	TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

	torrentType = "application/x-bittorrent"
)

// Channel describes the feed as a whole
type Channel struct {
	Title       string
	Link        string // page the items were extracted from
	Description string
	SelfURL     string // optional feed url, adds an atom self link
}

// Generator creates RSS feeds from extracted items
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// GenerateRSS creates an RSS 2.0 feed. Items keep their order, the first one gets the
// generation time as pubDate and each following item is one ItemInterval older.
func (g *Generator) GenerateRSS(ch Channel, items []domain.FeedItem) (string, error) {
	now := g.now().UTC()

	rssItems := make([]*RSSItem, 0, len(items))
	for i, item := range items {
		rssItems = append(rssItems, convertToRSSItem(item, ch.Description, now.Add(-time.Duration(i)*ItemInterval)))
	}

	feed := &RSS{
		Version: "2.0",
		Channel: &RSSChannel{
			Title:         CDATA{Text: xmlText(ch.Title)},
			Link:          ch.Link,
			Description:   CDATA{Text: xmlText(ch.Description)},
			LastBuildDate: now.Format(TimeFormat),
			Items:         rssItems,
		},
	}
	if ch.SelfURL != "" {
		feed.Atom = "http://www.w3.org/2005/Atom"
		feed.Channel.AtomLink = &AtomLink{Href: ch.SelfURL, Rel: "self", Type: "application/rss+xml"}
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts an extracted item, magnet links get an enclosure and a torrent block
func convertToRSSItem(item domain.FeedItem, channelDesc string, published time.Time) *RSSItem {
	itemTitle := strings.TrimSpace(xmlText(item.Title))
	desc := itemTitle
	if desc == "" {
		desc = xmlText(channelDesc)
	}

	res := &RSSItem{
		Title:       CDATA{Text: itemTitle},
		GUID:        GUID{IsPermaLink: "false", Value: ShortID(item.Link)},
		PubDate:     published.Format(TimeFormat),
		Description: CDATA{Text: desc},
	}

	if !item.IsMagnet() {
		res.Link = ItemLink{Text: item.Link}
		return res
	}
	magnet := xmlText(item.Link)
	res.Link = ItemLink{CDATA: magnet}
	res.Enclosure = &Enclosure{URL: EnclosureURL(magnet), Length: "0", Type: torrentType}
	res.Torrent = &Torrent{MagnetURI: CDATA{Text: magnet}}
	return res
}

// xmlText drops runes XML 1.0 doesn't allow. CDATA sections are written as is, so a single
// control character from a scraped page would make the whole document unparsable.
func xmlText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r >= 0x20 && r <= 0xD7FF, r >= 0xE000 && r <= 0xFFFD, r >= 0x10000 && r <= 0x10FFFF:
			return r
		default:
			return -1
		}
	}, s)
}

// EnclosureURL strips a magnet URI down to its first parameter, the content hash
func EnclosureURL(link string) string {
	if i := strings.Index(link, "&"); i >= 0 {
		return link[:i]
	}
	return link
}

// ShortID returns a stable identifier of link: the first 8 bytes of its MD5 in base62
func ShortID(link string) string {
	sum := md5.Sum([]byte(link)) //nolint:gosec // identifiers, not security
	return token.EncodeBase62(sum[:8])
}
