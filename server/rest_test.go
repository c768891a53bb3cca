package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/html2rss/pkg/domain"
	"github.com/umputun/html2rss/server/mocks"
)

func checkCode(code string) error {
	if code != "secret" {
		return domain.ErrAuth
	}
	return nil
}

func TestServer_packHandler(t *testing.T) {
	conv := &mocks.ConverterMock{
		PackFunc: func(p domain.Params) (string, string, error) {
			if p.Code != "secret" {
				return "", "", domain.ErrAuth
			}
			return "packed", "http://localhost:8080/html2rss/packed", nil
		},
	}
	srv := New(testConfig(), conv, nil, "1.0.0", false)

	t.Run("packed", func(t *testing.T) {
		body := `{"url":"https://example.com","a":"a.item","code":"secret","n":true}`
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/pack", strings.NewReader(body)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"packed","feed_url":"http://localhost:8080/html2rss/packed"}`, w.Body.String())

		calls := conv.PackCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, domain.Params{URL: "https://example.com", Links: "a.item", Code: "secret", Novel: true}, calls[0].P)
	})

	t.Run("wrong code", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/pack", strings.NewReader(`{"code":"bad"}`)))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/pack", strings.NewReader(`{bad json`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, conv.PackCalls(), 2)
	})
}

func TestServer_listPresetsHandler(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	presets := &mocks.PresetStoreMock{
		ListPresetsFunc: func(ctx context.Context) ([]domain.Preset, error) {
			return []domain.Preset{{Name: "novel", Token: "t1", CreatedAt: ts, UpdatedAt: ts}}, nil
		},
	}
	srv := New(testConfig(), &mocks.ConverterMock{CheckCodeFunc: checkCode}, presets, "1.0.0", false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/presets?code=secret", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp []domain.Preset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "novel", resp[0].Name)
	assert.Equal(t, "t1", resp[0].Token)
	assert.True(t, ts.Equal(resp[0].CreatedAt))

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/presets?code=bad", http.NoBody))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, presets.ListPresetsCalls(), 1)
}

func TestServer_savePresetHandler(t *testing.T) {
	presets := &mocks.PresetStoreMock{
		SavePresetFunc: func(ctx context.Context, name, tkn string) (*domain.Preset, error) {
			if name == "" {
				return nil, domain.Validationf("invalid preset name %q", name)
			}
			return &domain.Preset{Name: name, Token: tkn}, nil
		},
	}
	conv := &mocks.ConverterMock{
		CheckTokenFunc: func(tkn string) error {
			if tkn != "good" {
				return fmt.Errorf("token: %w", domain.ErrAuth)
			}
			return nil
		},
	}
	srv := New(testConfig(), conv, presets, "1.0.0", false)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "saved", body: `{"name":"novel","token":"good"}`, wantCode: http.StatusOK},
		{name: "foreign token", body: `{"name":"novel","token":"bad"}`, wantCode: http.StatusForbidden},
		{name: "empty name", body: `{"name":"","token":"good"}`, wantCode: http.StatusBadRequest},
		{name: "malformed", body: `not json`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/presets", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}

	calls := presets.SavePresetCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "novel", calls[0].Name)
	assert.Equal(t, "good", calls[0].Tkn)
}

func TestServer_deletePresetHandler(t *testing.T) {
	presets := &mocks.PresetStoreMock{
		DeletePresetFunc: func(ctx context.Context, name string) error {
			if name == "missing" {
				return fmt.Errorf("preset %q: %w", name, domain.ErrNotFound)
			}
			if name == "broken" {
				return errors.New("disk I/O error")
			}
			return nil
		},
	}
	srv := New(testConfig(), &mocks.ConverterMock{CheckCodeFunc: checkCode}, presets, "1.0.0", false)

	tests := []struct {
		path     string
		wantCode int
	}{
		{path: "/api/v1/presets/novel?code=secret", wantCode: http.StatusOK},
		{path: "/api/v1/presets/missing?code=secret", wantCode: http.StatusNotFound},
		{path: "/api/v1/presets/broken?code=secret", wantCode: http.StatusInternalServerError},
		{path: "/api/v1/presets/novel?code=bad", wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, httptest.NewRequest("DELETE", tt.path, http.NoBody))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
	assert.Len(t, presets.DeletePresetCalls(), 3)
	assert.Equal(t, "novel", presets.DeletePresetCalls()[0].Name)
}

func TestServer_presetsDisabled(t *testing.T) {
	srv := New(testConfig(), &mocks.ConverterMock{}, nil, "1.0.0", false)

	for _, r := range []*http.Request{
		httptest.NewRequest("GET", "/api/v1/presets?code=secret", http.NoBody),
		httptest.NewRequest("POST", "/api/v1/presets", strings.NewReader(`{"name":"a","token":"b"}`)),
		httptest.NewRequest("DELETE", "/api/v1/presets/a?code=secret", http.NoBody),
	} {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusNotFound, w.Code, r.Method)
	}
}
