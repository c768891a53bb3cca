// Package reader assembles a single reading-view document from a chapter page and its
// within-chapter continuation pages.
package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/html2rss/pkg/domain"
)

// MaxPages is the hard bound of pages fetched for one document
const MaxPages = 5

// Fetcher retrieves and decodes a page
type Fetcher interface {
	Fetch(ctx context.Context, pageURL, charset string) (*domain.FetchResult, error)
}

// Cleaner turns raw body text into a cleaned html fragment
type Cleaner interface {
	Clean(raw string) string
}

// Config for the reader
type Config struct {
	MaxPages            int  // pages fetched per document, capped by MaxPages
	TrafilaturaFallback bool // extract with trafilatura when the container heuristic finds nothing
}

// Document is the assembled reading view
type Document struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"body"` // cleaned html fragment
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
	TOC   string `json:"toc,omitempty"`
	Pages int    `json:"pages"`
}

// Reader follows "next page" links and concatenates page bodies
type Reader struct {
	fetcher  Fetcher
	cleaner  Cleaner
	maxPages int
	fallback bool
}

// New makes a Reader. MaxPages outside of 1..MaxPages is set to MaxPages.
func New(fetcher Fetcher, cleaner Cleaner, cfg Config) *Reader {
	res := &Reader{fetcher: fetcher, cleaner: cleaner, maxPages: cfg.MaxPages, fallback: cfg.TrafilaturaFallback}
	if res.maxPages <= 0 || res.maxPages > MaxPages {
		res.maxPages = MaxPages
	}
	return res
}

// Read crawls from pageURL until no next page is found or the page bound is reached.
// Bodies are cleaned once, after the crawl. A failure on the first page fails the read,
// a failure on a continuation page stops the crawl with the pages collected so far.
func (r *Reader) Read(ctx context.Context, pageURL, charset string) (*Document, error) {
	doc := &Document{URL: pageURL}
	visited := map[string]bool{}
	var segments, sources []string

	current := pageURL
	for current != "" && doc.Pages < r.maxPages {
		res, err := r.fetcher.Fetch(ctx, current, charset)
		if err != nil {
			if doc.Pages == 0 {
				return nil, fmt.Errorf("read %s: %w", pageURL, err)
			}
			lgr.Printf("[WARN] stop reading %s at page %d: %v", pageURL, doc.Pages+1, err)
			break
		}
		doc.Pages++
		visited[current] = true
		visited[res.BaseURL()] = true

		page, err := goquery.NewDocumentFromReader(strings.NewReader(res.Text))
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", current, err)
		}
		p := parsePage(page, res.BaseURL())
		lgr.Printf("[DEBUG] read page %d of %s, %d bytes of text", doc.Pages, pageURL, len(p.text))

		if doc.Pages == 1 {
			doc.Title = p.title
		}
		doc.Next = firstNonEmpty(doc.Next, p.next)
		doc.Prev = firstNonEmpty(doc.Prev, p.prev)
		doc.TOC = firstNonEmpty(doc.TOC, p.toc)
		segments = append(segments, p.text)
		sources = append(sources, res.Text)

		current = ""
		if p.nextPage != "" && !visited[p.nextPage] {
			current = p.nextPage
		}
	}

	doc.Body = r.cleaner.Clean(strings.Join(segments, "\n"))
	if doc.Body == "" && r.fallback {
		lgr.Printf("[DEBUG] no content in containers of %s, trying trafilatura", pageURL)
		doc.Body = r.cleaner.Clean(fallbackText(pageURL, sources))
	}
	if doc.Body == "" {
		return nil, domain.Extractionf("no readable content found on %s", pageURL)
	}
	return doc, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
