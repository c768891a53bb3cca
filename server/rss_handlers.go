package server

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/umputun/html2rss/pkg/domain"
)

// feedHandler serves a feed for query parameters, either plain or packed into p
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if tkn := q.Get("p"); tkn != "" {
		s.serveFeed(w, r, func() (string, error) { return s.converter.FeedByToken(r.Context(), tkn) })
		return
	}

	p, err := paramsFromQuery(q)
	if err != nil {
		renderFailure(w, r, err)
		return
	}
	s.serveFeed(w, r, func() (string, error) { return s.converter.Feed(r.Context(), p) })
}

// feedTokenHandler serves a feed for a packed token in the path
func (s *Server) feedTokenHandler(w http.ResponseWriter, r *http.Request) {
	tkn := r.PathValue("token")
	s.serveFeed(w, r, func() (string, error) { return s.converter.FeedByToken(r.Context(), tkn) })
}

// presetFeedHandler serves the feed of a saved preset
func (s *Server) presetFeedHandler(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w, r) {
		return
	}
	preset, err := s.presets.GetPreset(r.Context(), r.PathValue("name"))
	if err != nil {
		renderFailure(w, r, err)
		return
	}
	s.serveFeed(w, r, func() (string, error) { return s.converter.FeedByToken(r.Context(), preset.Token) })
}

func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request, generate func() (string, error)) {
	rss, err := generate()
	if err != nil {
		renderFailure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// paramsFromQuery reads feed parameters, flags accept 1/true/0/false
func paramsFromQuery(q url.Values) (domain.Params, error) {
	p := domain.Params{
		URL:        strings.TrimSpace(q.Get("url")),
		Links:      q.Get("a"),
		Code:       q.Get("code"),
		Titles:     q.Get("t"),
		Attr:       q.Get("attr"),
		Charset:    q.Get("charset"),
		TitleOrder: q.Get("ts"),
		LinkOrder:  q.Get("as"),
	}
	if p.Charset == domain.CharsetAuto {
		p.Charset = ""
	}
	if p.TitleOrder == domain.Ascending.String() {
		p.TitleOrder = ""
	}
	if p.LinkOrder == domain.Ascending.String() {
		p.LinkOrder = ""
	}

	if v := q.Get("s"); v != "" {
		season, err := strconv.Atoi(v)
		if err != nil {
			return domain.Params{}, domain.Validationf("invalid season %q", v)
		}
		p.Season = season
	}

	var err error
	if p.Novel, err = queryFlag(q, "n"); err != nil {
		return domain.Params{}, err
	}
	if p.Reading, err = queryFlag(q, "r"); err != nil {
		return domain.Params{}, err
	}
	return p, nil
}

func queryFlag(q url.Values, name string) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	res, err := strconv.ParseBool(v)
	if err != nil {
		return false, domain.Validationf("invalid flag %s=%q", name, v)
	}
	return res, nil
}

// presetsEnabled renders 404 when the server runs without presets storage
func (s *Server) presetsEnabled(w http.ResponseWriter, r *http.Request) bool {
	if s.presets != nil {
		return true
	}
	renderFailure(w, r, fmt.Errorf("presets storage is disabled: %w", domain.ErrNotFound))
	return false
}
