// Package fetcher retrieves pages with browser-like headers, a fixed retry policy
// and a charset resolution chain. Nothing is cached.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/html2rss/pkg/domain"
)

// defaults for Config fields left empty
const (
	DefaultTimeout    = 30 * time.Second
	DefaultAttempts   = 3
	DefaultRetryDelay = time.Second
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	maxBodySize = 16 << 20
)

// Config for the fetcher
type Config struct {
	Timeout         time.Duration
	Attempts        int
	RetryDelay      time.Duration
	UserAgent       string
	FallbackCharset string
	MinConfidence   int
}

// HTTPFetcher fetches pages over HTTP
type HTTPFetcher struct {
	client     *http.Client
	attempts   int
	retryDelay time.Duration
	userAgent  string
	decoder    *Decoder
}

// New creates a fetcher, zero config values are replaced by defaults
func New(cfg Config) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		attempts:   cfg.Attempts,
		retryDelay: cfg.RetryDelay,
		userAgent:  cfg.UserAgent,
		decoder:    NewDecoder(cfg.FallbackCharset, cfg.MinConfidence),
	}
}

// Fetch retrieves pageURL and decodes it. charsetHint is a charset label or "auto".
// Non-2xx responses and transport errors are retried, the returned *domain.FetchError
// carries the last cause once all attempts are used.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL, charsetHint string) (*domain.FetchResult, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, domain.Validationf("parse url %q: %v", pageURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, domain.Validationf("invalid url: %s", pageURL)
	}

	var raw []byte
	var finalURL string
	var lastErr error
	attempt := 0

	err = repeater.NewFixed(f.attempts, f.retryDelay).Do(ctx, func() error {
		attempt++
		body, final, e := f.get(ctx, pageURL)
		if e != nil {
			lastErr = e
			lgr.Printf("[WARN] fetch %s, attempt %d/%d: %v", pageURL, attempt, f.attempts, e)
			return e
		}
		raw, finalURL = body, final
		return nil
	})
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return nil, &domain.FetchError{URL: pageURL, Attempts: attempt, Err: lastErr}
	}

	text, used := f.decoder.Decode(raw, charsetHint)
	lgr.Printf("[DEBUG] fetched %s, %d bytes, charset %s", pageURL, len(raw), used)
	return &domain.FetchResult{Text: text, Raw: raw, URL: pageURL, FinalURL: finalURL, Charset: used}, nil
}

// get performs a single request, returns body and the final url after redirects
func (f *HTTPFetcher) get(ctx context.Context, pageURL string) (body []byte, finalURL string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}

	finalURL = pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return body, finalURL, nil
}
