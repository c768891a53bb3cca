// Package service runs single requests through the conversion pipeline: fetch, extract,
// normalize titles and synthesize a feed, or read a chapter into a reading view.
package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/html2rss/pkg/domain"
	"github.com/umputun/html2rss/pkg/extract"
	"github.com/umputun/html2rss/pkg/feed"
	"github.com/umputun/html2rss/pkg/reader"
	"github.com/umputun/html2rss/pkg/title"
	"github.com/umputun/html2rss/pkg/token"
)

// Fetcher retrieves and decodes a page
type Fetcher interface {
	Fetch(ctx context.Context, pageURL, charset string) (*domain.FetchResult, error)
}

// PageReader assembles the reading view of a chapter
type PageReader interface {
	Read(ctx context.Context, pageURL, charset string) (*reader.Document, error)
}

// Config of the converter, fixed for the process lifetime
type Config struct {
	Code    string // verification code required by every request
	BaseURL string // public url of the service, used for feed self links and reading-mode links
}

// ReadRequest is a reading view request, the page is given either as URL or as a proxy token
type ReadRequest struct {
	URL     string
	Proxy   string
	Code    string
	Charset string
}

// Converter handles feed, read and detect requests. It holds no per-request state.
type Converter struct {
	fetcher   Fetcher
	reader    PageReader
	extractor *extract.Extractor
	generator *feed.Generator
	code      string
	baseURL   string
}

// NewConverter makes a Converter
func NewConverter(cfg Config, fetcher Fetcher, rd PageReader) *Converter {
	return &Converter{
		fetcher:   fetcher,
		reader:    rd,
		extractor: extract.New(),
		generator: feed.NewGenerator(),
		code:      cfg.Code,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// CheckCode compares code with the configured verification code
func (c *Converter) CheckCode(code string) error {
	if c.code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(c.code)) != 1 {
		return domain.ErrAuth
	}
	return nil
}

// Feed validates params, fetches the page and returns the RSS document of extracted items
func (c *Converter) Feed(ctx context.Context, p domain.Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if err := c.CheckCode(p.Code); err != nil {
		return "", err
	}
	if p.Reading && c.baseURL == "" {
		return "", domain.Validationf("reading mode needs server.base_url to build public links")
	}

	res, err := c.fetcher.Fetch(ctx, p.URL, p.CharsetHint())
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Text))
	if err != nil {
		return "", fmt.Errorf("parse page %s: %w", p.URL, err)
	}

	items, err := c.extractor.Extract(doc, res.BaseURL(), p.Rule())
	if err != nil {
		return "", err
	}
	items = c.normalize(items, p)

	pageTitle, description := extract.PageMeta(doc, p.URL)
	ch := feed.Channel{Title: pageTitle, Link: p.URL, Description: description}
	if c.baseURL != "" {
		tkn, err := token.Pack(p)
		if err != nil {
			return "", fmt.Errorf("pack params: %w", err)
		}
		ch.SelfURL = c.FeedURL(tkn)
	}

	rss, err := c.generator.GenerateRSS(ch, items)
	if err != nil {
		return "", fmt.Errorf("generate feed: %w", err)
	}
	lgr.Printf("[INFO] feed for %s, %d items", p.URL, len(items))
	return rss, nil
}

// FeedByToken unpacks a packed token and serves it as Feed
func (c *Converter) FeedByToken(ctx context.Context, tkn string) (string, error) {
	p, err := token.Unpack(tkn)
	if err != nil {
		return "", err
	}
	return c.Feed(ctx, p)
}

// Pack validates params and returns the packed token with the feed url serving it
func (c *Converter) Pack(p domain.Params) (tkn, feedURL string, err error) {
	if err = p.Validate(); err != nil {
		return "", "", err
	}
	if err = c.CheckCode(p.Code); err != nil {
		return "", "", err
	}
	if tkn, err = token.Pack(p); err != nil {
		return "", "", fmt.Errorf("pack params: %w", err)
	}
	return tkn, c.FeedURL(tkn), nil
}

// CheckToken unpacks tkn and checks it carries valid params with the right code
func (c *Converter) CheckToken(tkn string) error {
	p, err := token.Unpack(tkn)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return c.CheckCode(p.Code)
}

// Read returns the reading view of a chapter, following within-chapter pages
func (c *Converter) Read(ctx context.Context, req ReadRequest) (*reader.Document, error) {
	if err := c.CheckCode(req.Code); err != nil {
		return nil, err
	}
	pageURL := req.URL
	if req.Proxy != "" {
		u, err := token.ProxyDecode(req.Proxy)
		if err != nil {
			return nil, err
		}
		pageURL = u
	}
	if err := checkURL(pageURL); err != nil {
		return nil, err
	}
	charset := req.Charset
	if charset == "" {
		charset = domain.CharsetAuto
	}
	return c.reader.Read(ctx, pageURL, charset)
}

// Detect fetches the page and suggests link and title selectors for it
func (c *Converter) Detect(ctx context.Context, pageURL, code string) (extract.Suggestion, error) {
	if err := c.CheckCode(code); err != nil {
		return extract.Suggestion{}, err
	}
	if err := checkURL(pageURL); err != nil {
		return extract.Suggestion{}, err
	}
	res, err := c.fetcher.Fetch(ctx, pageURL, domain.CharsetAuto)
	if err != nil {
		return extract.Suggestion{}, fmt.Errorf("fetch page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Text))
	if err != nil {
		return extract.Suggestion{}, fmt.Errorf("parse page %s: %w", pageURL, err)
	}
	return extract.Detect(doc)
}

// FeedURL is the public url serving a packed token
func (c *Converter) FeedURL(tkn string) string {
	return c.baseURL + "/html2rss/" + tkn
}

// ReadURL routes target through the reading view
func (c *Converter) ReadURL(target string) string {
	return c.baseURL + "/read?u=" + token.ProxyEncode(target) + "&code=" + url.QueryEscape(c.code)
}

// normalize applies episode numbering, novel chapter filtering and reading-mode links.
// Novel ordering is by title, so links are rewritten last.
func (c *Converter) normalize(items []domain.FeedItem, p domain.Params) []domain.FeedItem {
	if p.Season > 0 {
		for i := range items {
			items[i].Title = title.FormatEpisode(items[i].Title, p.Season)
		}
	}
	if p.Novel {
		items = title.Chapters(items)
	}
	if p.Reading {
		for i := range items {
			if !items[i].IsMagnet() {
				items[i].Link = c.ReadURL(items[i].Link)
			}
		}
	}
	return items
}

func checkURL(pageURL string) error {
	if pageURL == "" {
		return domain.Validationf("missing required parameter url")
	}
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Validationf("invalid url %q", pageURL)
	}
	return nil
}
