package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/html2rss/pkg/domain"
	"github.com/umputun/html2rss/pkg/extract"
	"github.com/umputun/html2rss/pkg/reader"
	"github.com/umputun/html2rss/pkg/service"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/converter.go -pkg mocks -skip-ensure -fmt goimports . Converter
//go:generate moq -out mocks/presets.go -pkg mocks -skip-ensure -fmt goimports . PresetStore

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	converter Converter
	presets   PresetStore // nil when presets storage is disabled
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Converter runs feed, read and detect requests
type Converter interface {
	Feed(ctx context.Context, p domain.Params) (string, error)
	FeedByToken(ctx context.Context, tkn string) (string, error)
	Pack(p domain.Params) (tkn, feedURL string, err error)
	CheckCode(code string) error
	CheckToken(tkn string) error
	Read(ctx context.Context, req service.ReadRequest) (*reader.Document, error)
	Detect(ctx context.Context, pageURL, code string) (extract.Suggestion, error)
	ReadURL(target string) string
}

// PresetStore keeps named packed tokens
type PresetStore interface {
	SavePreset(ctx context.Context, name, tkn string) (*domain.Preset, error)
	GetPreset(ctx context.Context, name string) (*domain.Preset, error)
	ListPresets(ctx context.Context) ([]domain.Preset, error)
	DeletePreset(ctx context.Context, name string) error
}

// New initializes a new server instance, presets may be nil
func New(cfg ConfigProvider, converter Converter, presets PresetStore, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		converter: converter,
		presets:   presets,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and shuts it down when ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
		return nil
	})
	return g.Wait()
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("html2rss", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /pack", s.packHandler)
		r.HandleFunc("GET /presets", s.listPresetsHandler)
		r.HandleFunc("POST /presets", s.savePresetHandler)
		r.HandleFunc("DELETE /presets/{name}", s.deletePresetHandler)
	})

	s.router.HandleFunc("GET /html2rss", s.feedHandler)
	s.router.HandleFunc("GET /html2rss/{token}", s.feedTokenHandler)
	s.router.HandleFunc("GET /feed/{name}", s.presetFeedHandler)
	s.router.HandleFunc("GET /read", s.readHandler)
	s.router.HandleFunc("GET /detect", s.detectHandler)
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"presets": s.presets != nil,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// errorCode maps error kinds to http status codes
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrExtraction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuth):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// renderFailure logs err and sends it with the status of its kind
func renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	code := errorCode(err)
	if code >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	} else {
		log.Printf("[DEBUG] %s %s rejected with %d: %v", r.Method, r.URL.Path, code, err)
	}
	renderError(w, r, err, code)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
