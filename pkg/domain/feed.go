package domain

import "strings"

// MagnetScheme is the URI prefix of magnet links
const MagnetScheme = "magnet:"

// FeedItem is a single extracted entry, identified by its link
type FeedItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// IsMagnet reports whether the item points to a magnet URI rather than a web page
func (i FeedItem) IsMagnet() bool {
	return IsMagnet(i.Link)
}

// IsMagnet reports whether link is a magnet URI
func IsMagnet(link string) bool {
	return strings.HasPrefix(strings.ToLower(link), MagnetScheme)
}

// FetchResult is the outcome of one page fetch. Produced per call, never cached.
type FetchResult struct {
	Text     string // decoded page text
	Raw      []byte // body bytes as received
	URL      string // requested URL
	FinalURL string // URL after redirects
	Charset  string // charset used to decode Raw
}

// BaseURL returns the URL relative links on the page resolve against
func (r *FetchResult) BaseURL() string {
	if r.FinalURL != "" {
		return r.FinalURL
	}
	return r.URL
}
