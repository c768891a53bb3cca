package feed

import (
	"encoding/xml"
)

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Atom    string      `xml:"xmlns:atom,attr,omitempty"`
	Channel *RSSChannel `xml:"channel"`
}

// RSSChannel represents an RSS channel
type RSSChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         CDATA      `xml:"title"`
	Link          string     `xml:"link"`
	Description   CDATA      `xml:"description"`
	AtomLink      *AtomLink  `xml:"http://www.w3.org/2005/Atom link"`
	LastBuildDate string     `xml:"lastBuildDate"`
	Items         []*RSSItem `xml:"item"`
}

// AtomLink represents an Atom link element within RSS
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem represents an item in an RSS feed
type RSSItem struct {
	Title       CDATA      `xml:"title"`
	Link        ItemLink   `xml:"link"`
	GUID        GUID       `xml:"guid"`
	PubDate     string     `xml:"pubDate"`
	Enclosure   *Enclosure `xml:"enclosure"`
	Description CDATA      `xml:"description"`
	Torrent     *Torrent   `xml:"http://xmlns.ezrss.it/0.1/ torrent"`
}

// CDATA is element text written as a CDATA section
type CDATA struct {
	Text string `xml:",cdata"`
}

// ItemLink is written as plain text for web links and as CDATA for magnet URIs,
// only one of the fields is set
type ItemLink struct {
	Text  string `xml:",chardata"`
	CDATA string `xml:",cdata"`
}

// GUID is the item identifier, never a permalink
type GUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Enclosure references the binary resource of a magnet item
type Enclosure struct {
	URL    string `xml:"url,attr"`
	Length string `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// Torrent is the ezrss torrent extension block of magnet items
type Torrent struct {
	MagnetURI CDATA `xml:"magnetURI"`
}
