package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/html2rss/pkg/domain"
	"github.com/umputun/html2rss/server/mocks"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>test</title></channel></rss>`

func TestServer_feedHandler(t *testing.T) {
	conv := &mocks.ConverterMock{
		FeedFunc: func(ctx context.Context, p domain.Params) (string, error) {
			return testRSS, nil
		},
	}
	srv := New(testConfig(), conv, nil, "1.0.0", false)

	q := url.Values{}
	q.Set("url", " https://example.com/list ")
	q.Set("a", "ul.list a")
	q.Set("t", "ul.list span")
	q.Set("code", "secret")
	q.Set("charset", "gbk")
	q.Set("as", "d")
	q.Set("ts", "a")
	q.Set("s", "2")
	q.Set("n", "1")

	req := httptest.NewRequest("GET", "/html2rss?"+q.Encode(), http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, testRSS, w.Body.String())

	require.Len(t, conv.FeedCalls(), 1)
	assert.Equal(t, domain.Params{URL: "https://example.com/list", Links: "ul.list a", Titles: "ul.list span",
		Code: "secret", Charset: "gbk", LinkOrder: "d", Season: 2, Novel: true}, conv.FeedCalls()[0].P)
}

func TestServer_feedHandlerPacked(t *testing.T) {
	conv := &mocks.ConverterMock{
		FeedByTokenFunc: func(ctx context.Context, tkn string) (string, error) {
			return testRSS, nil
		},
	}
	srv := New(testConfig(), conv, nil, "1.0.0", false)

	t.Run("query token", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/html2rss?p=abc123", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testRSS, w.Body.String())
	})

	t.Run("path token", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/html2rss/xyz789", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	calls := conv.FeedByTokenCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "abc123", calls[0].Tkn)
	assert.Equal(t, "xyz789", calls[1].Tkn)
}

func TestServer_feedHandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		feedErr  error
		wantCode int
	}{
		{name: "validation", query: "url=x", feedErr: domain.Validationf("missing required parameters"),
			wantCode: http.StatusBadRequest},
		{name: "bad code", query: "url=x&a=a&code=bad", feedErr: domain.ErrAuth, wantCode: http.StatusForbidden},
		{name: "fetch failed", query: "url=x&a=a&code=c",
			feedErr: &domain.FetchError{URL: "x", Attempts: 3, Err: errors.New("refused")}, wantCode: http.StatusBadGateway},
		{name: "nothing extracted", query: "url=x&a=a&code=c", feedErr: domain.Extractionf("no links"),
			wantCode: http.StatusBadRequest},
		{name: "bad season", query: "url=x&a=a&code=c&s=two", wantCode: http.StatusBadRequest},
		{name: "bad flag", query: "url=x&a=a&code=c&n=maybe", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &mocks.ConverterMock{
				FeedFunc: func(ctx context.Context, p domain.Params) (string, error) {
					return "", tt.feedErr
				},
			}
			srv := New(testConfig(), conv, nil, "1.0.0", false)

			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/html2rss?"+tt.query, http.NoBody))
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			if tt.feedErr == nil {
				assert.Empty(t, conv.FeedCalls(), "converter should not be called for malformed query")
			}
		})
	}
}

func TestServer_presetFeedHandler(t *testing.T) {
	conv := &mocks.ConverterMock{
		FeedByTokenFunc: func(ctx context.Context, tkn string) (string, error) {
			return testRSS, nil
		},
	}
	presets := &mocks.PresetStoreMock{
		GetPresetFunc: func(ctx context.Context, name string) (*domain.Preset, error) {
			if name != "novel" {
				return nil, fmt.Errorf("preset %q: %w", name, domain.ErrNotFound)
			}
			return &domain.Preset{Name: name, Token: "tkn-novel", CreatedAt: time.Now()}, nil
		},
	}
	srv := New(testConfig(), conv, presets, "1.0.0", false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/feed/novel", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, conv.FeedByTokenCalls(), 1)
	assert.Equal(t, "tkn-novel", conv.FeedByTokenCalls()[0].Tkn)

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/feed/unknown", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, conv.FeedByTokenCalls(), 1)
}

func TestServer_presetFeedHandlerDisabled(t *testing.T) {
	srv := New(testConfig(), &mocks.ConverterMock{}, nil, "1.0.0", false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/feed/novel", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "presets storage is disabled")
}

func TestParamsFromQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    domain.Params
		wantErr bool
	}{
		{name: "required only", query: "url=https://example.com&a=a.item&code=c",
			want: domain.Params{URL: "https://example.com", Links: "a.item", Code: "c"}},
		{name: "defaults dropped", query: "url=u&a=a&code=c&charset=auto&ts=a&as=a",
			want: domain.Params{URL: "u", Links: "a", Code: "c"}},
		{name: "descending and attr", query: "url=u&a=a&code=c&ts=d&as=d&attr=data-url",
			want: domain.Params{URL: "u", Links: "a", Code: "c", TitleOrder: "d", LinkOrder: "d", Attr: "data-url"}},
		{name: "flags", query: "url=u&a=a&code=c&n=true&r=1",
			want: domain.Params{URL: "u", Links: "a", Code: "c", Novel: true, Reading: true}},
		{name: "false flags", query: "url=u&a=a&code=c&n=0&r=false",
			want: domain.Params{URL: "u", Links: "a", Code: "c"}},
		{name: "season", query: "url=u&a=a&code=c&s=3", want: domain.Params{URL: "u", Links: "a", Code: "c", Season: 3}},
		{name: "bad season", query: "s=x", wantErr: true},
		{name: "bad reading flag", query: "r=yes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			got, err := paramsFromQuery(q)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
