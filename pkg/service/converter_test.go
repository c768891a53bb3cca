package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/html2rss/pkg/domain"
	"github.com/umputun/html2rss/pkg/extract"
	"github.com/umputun/html2rss/pkg/reader"
	"github.com/umputun/html2rss/pkg/token"
)

type fetchFunc func(ctx context.Context, pageURL, charset string) (*domain.FetchResult, error)

func (f fetchFunc) Fetch(ctx context.Context, pageURL, charset string) (*domain.FetchResult, error) {
	return f(ctx, pageURL, charset)
}

type readFunc func(ctx context.Context, pageURL, charset string) (*reader.Document, error)

func (f readFunc) Read(ctx context.Context, pageURL, charset string) (*reader.Document, error) {
	return f(ctx, pageURL, charset)
}

func pageFetcher(t *testing.T, page string, calls *int) fetchFunc {
	return func(_ context.Context, pageURL, _ string) (*domain.FetchResult, error) {
		*calls++
		return &domain.FetchResult{Text: page, URL: pageURL, FinalURL: pageURL, Charset: "utf-8"}, nil
	}
}

const bookPage = `<html><head><title>My Book</title><meta name="description" content="a story"></head><body>
<ul id="list">
  <li><a href="/b/2.html">第2章 相遇</a></li>
  <li><a href="/b/about.html">作品相关</a></li>
  <li><a href="/b/10.html">第10章 离别</a></li>
  <li><a href="/b/1.html">第1章 开端</a></li>
</ul>
<div class="eps">
  <a href="/e/13">Show Name 13.mp4</a>
  <a href="magnet:?xt=urn:btih:abc&dn=Show%20Name%2014">x</a>
</div>
</body></html>`

func parseFeed(t *testing.T, rss string) *gofeed.Feed {
	t.Helper()
	parsed, err := gofeed.NewParser().ParseString(rss)
	require.NoError(t, err)
	return parsed
}

func itemTitles(f *gofeed.Feed) []string {
	res := make([]string, 0, len(f.Items))
	for _, it := range f.Items {
		res = append(res, it.Title)
	}
	return res
}

func TestConverter_Feed(t *testing.T) {
	calls := 0
	c := NewConverter(Config{Code: "secret", BaseURL: "https://rss.example.com/"}, pageFetcher(t, bookPage, &calls), nil)

	t.Run("plain list", func(t *testing.T) {
		p := domain.Params{URL: "https://example.com/b/index.html", Links: "#list a", Code: "secret"}
		rss, err := c.Feed(context.Background(), p)
		require.NoError(t, err)

		f := parseFeed(t, rss)
		assert.Equal(t, "My Book", f.Title)
		assert.Equal(t, "a story", f.Description)
		assert.Equal(t, []string{"第2章 相遇", "作品相关", "第10章 离别", "第1章 开端"}, itemTitles(f))
		assert.Equal(t, "https://example.com/b/2.html", f.Items[0].Link)

		tkn, err := token.Pack(p)
		require.NoError(t, err)
		assert.Contains(t, rss, `href="https://rss.example.com/html2rss/`+tkn+`"`)
	})

	t.Run("novel mode", func(t *testing.T) {
		rss, err := c.Feed(context.Background(), domain.Params{URL: "https://example.com/b/", Links: "#list a",
			Code: "secret", Novel: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"第10章 离别", "第2章 相遇", "第1章 开端"}, itemTitles(parseFeed(t, rss)))
	})

	t.Run("episode mode", func(t *testing.T) {
		rss, err := c.Feed(context.Background(), domain.Params{URL: "https://example.com/", Links: ".eps a",
			Code: "secret", Season: 2})
		require.NoError(t, err)
		f := parseFeed(t, rss)
		assert.Equal(t, []string{"Show Name S02E13.mp4", "Show Name S02E14"}, itemTitles(f))
	})

	t.Run("reading mode", func(t *testing.T) {
		rss, err := c.Feed(context.Background(), domain.Params{URL: "https://example.com/", Links: ".eps a",
			Code: "secret", Reading: true})
		require.NoError(t, err)
		f := parseFeed(t, rss)
		require.Len(t, f.Items, 2)
		assert.Equal(t, "https://rss.example.com/read?u="+token.ProxyEncode("https://example.com/e/13")+"&code=secret",
			f.Items[0].Link)
		assert.Equal(t, "magnet:?xt=urn:btih:abc&dn=Show%20Name%2014", f.Items[1].Link, "magnets are not proxied")
	})
}

func TestConverter_FeedErrors(t *testing.T) {
	calls := 0
	c := NewConverter(Config{Code: "secret"}, pageFetcher(t, bookPage, &calls), nil)

	tests := []struct {
		name    string
		params  domain.Params
		wantErr error
		fetched bool
	}{
		{name: "missing url", params: domain.Params{Links: "a", Code: "secret"}, wantErr: domain.ErrValidation},
		{name: "missing selector", params: domain.Params{URL: "https://example.com", Code: "secret"}, wantErr: domain.ErrValidation},
		{name: "relative url", params: domain.Params{URL: "/x", Links: "a", Code: "secret"}, wantErr: domain.ErrValidation},
		{name: "wrong code", params: domain.Params{URL: "https://example.com", Links: "a", Code: "nope"}, wantErr: domain.ErrAuth},
		{name: "no links", params: domain.Params{URL: "https://example.com", Links: "table a", Code: "secret"},
			wantErr: domain.ErrExtraction, fetched: true},
		{name: "reading mode without base url", params: domain.Params{URL: "https://example.com", Links: "a",
			Code: "secret", Reading: true}, wantErr: domain.ErrValidation},
		{name: "bad selector", params: domain.Params{URL: "https://example.com", Links: "a[", Code: "secret"},
			wantErr: domain.ErrExtraction, fetched: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = 0
			_, err := c.Feed(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.fetched, calls > 0)
		})
	}

	t.Run("fetch failure", func(t *testing.T) {
		failing := fetchFunc(func(_ context.Context, pageURL, _ string) (*domain.FetchResult, error) {
			return nil, &domain.FetchError{URL: pageURL, Attempts: 3, Err: errors.New("status 503")}
		})
		_, err := NewConverter(Config{Code: "secret"}, failing, nil).Feed(context.Background(),
			domain.Params{URL: "https://example.com", Links: "a", Code: "secret"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrFetch))
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("no self link without base url", func(t *testing.T) {
		rss, err := c.Feed(context.Background(), domain.Params{URL: "https://example.com/b/", Links: "#list a", Code: "secret"})
		require.NoError(t, err)
		assert.NotContains(t, rss, `rel="self"`)
		assert.NotContains(t, rss, "localhost")
	})

	t.Run("empty configured code rejects everything", func(t *testing.T) {
		_, err := NewConverter(Config{}, pageFetcher(t, bookPage, &calls), nil).Feed(context.Background(),
			domain.Params{URL: "https://example.com", Links: "a", Code: ""})
		require.Error(t, err)
	})
}

func TestConverter_FeedByToken(t *testing.T) {
	calls := 0
	var gotCharset string
	f := fetchFunc(func(ctx context.Context, pageURL, charset string) (*domain.FetchResult, error) {
		gotCharset = charset
		return pageFetcher(t, bookPage, &calls)(ctx, pageURL, charset)
	})
	c := NewConverter(Config{Code: "secret"}, f, nil)

	tkn, feedURL, err := c.Pack(domain.Params{URL: "https://example.com/b/", Links: "#list a", Code: "secret", Charset: "gbk"})
	require.NoError(t, err)
	assert.Equal(t, "/html2rss/"+tkn, feedURL)
	require.NoError(t, c.CheckToken(tkn))

	rss, err := c.FeedByToken(context.Background(), tkn)
	require.NoError(t, err)
	assert.Len(t, parseFeed(t, rss).Items, 4)
	assert.Equal(t, "gbk", gotCharset)

	_, err = c.FeedByToken(context.Background(), "not-a-token!")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, _, err = c.Pack(domain.Params{URL: "https://example.com/b/", Links: "#list a", Code: "wrong"})
	assert.True(t, errors.Is(err, domain.ErrAuth))

	wrongCode, err := token.Pack(domain.Params{URL: "https://example.com/b/", Links: "a", Code: "wrong"})
	require.NoError(t, err)
	assert.True(t, errors.Is(c.CheckToken(wrongCode), domain.ErrAuth))
}

func TestConverter_Read(t *testing.T) {
	var gotURL, gotCharset string
	rd := readFunc(func(_ context.Context, pageURL, charset string) (*reader.Document, error) {
		gotURL, gotCharset = pageURL, charset
		return &reader.Document{URL: pageURL, Title: "第1章", Body: "<p>text</p>", Pages: 1}, nil
	})
	c := NewConverter(Config{Code: "secret"}, nil, rd)

	doc, err := c.Read(context.Background(), ReadRequest{URL: "https://example.com/1.html", Code: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "<p>text</p>", doc.Body)
	assert.Equal(t, "https://example.com/1.html", gotURL)
	assert.Equal(t, domain.CharsetAuto, gotCharset)

	_, err = c.Read(context.Background(), ReadRequest{Proxy: token.ProxyEncode("https://example.com/2.html"),
		Code: "secret", Charset: "gb18030"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/2.html", gotURL)
	assert.Equal(t, "gb18030", gotCharset)

	_, err = c.Read(context.Background(), ReadRequest{URL: "https://example.com/1.html", Code: "bad"})
	assert.True(t, errors.Is(err, domain.ErrAuth))

	_, err = c.Read(context.Background(), ReadRequest{Proxy: "%%%", Code: "secret"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = c.Read(context.Background(), ReadRequest{URL: "ftp://example.com/1", Code: "secret"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = c.Read(context.Background(), ReadRequest{Code: "secret"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestConverter_Detect(t *testing.T) {
	calls := 0
	page := `<table><tr><td><a href="/t/1">Title one</a></td><td><a href="magnet:?xt=urn:btih:a">DL</a></td></tr></table>`
	c := NewConverter(Config{Code: "secret"}, pageFetcher(t, page, &calls), nil)

	s, err := c.Detect(context.Background(), "https://example.com/", "secret")
	require.NoError(t, err)
	assert.Equal(t, extract.Suggestion{Links: `a[href^="magnet:"]`, Titles: "tr a:nth-of-type(1)", Attr: "href",
		Message: "Found magnets with distinct titles in table!"}, s)

	_, err = c.Detect(context.Background(), "https://example.com/", "bad")
	assert.True(t, errors.Is(err, domain.ErrAuth))
	assert.Equal(t, 1, calls)
}

func TestConverter_ReadURL(t *testing.T) {
	c := NewConverter(Config{Code: "a&b", BaseURL: "http://localhost:8080/"}, nil, nil)
	link := c.ReadURL("https://example.com/x?y=1")
	assert.True(t, strings.HasPrefix(link, "http://localhost:8080/read?u="))
	assert.True(t, strings.HasSuffix(link, "&code=a%26b"))
}

func TestConverter_ReadURLWithoutBaseURL(t *testing.T) {
	c := NewConverter(Config{Code: "c"}, nil, nil)
	assert.Equal(t, "/read?u="+token.ProxyEncode("https://example.com/2.html")+"&code=c", c.ReadURL("https://example.com/2.html"))
	assert.Equal(t, "/html2rss/abc", c.FeedURL("abc"))
}
