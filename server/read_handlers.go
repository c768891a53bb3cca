package server

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/html2rss/pkg/reader"
	"github.com/umputun/html2rss/pkg/service"
)

//go:embed templates/read.html
var templatesFS embed.FS

var (
	readTemplate = template.Must(template.ParseFS(templatesFS, "templates/read.html"))
	bodyPolicy   = bluemonday.UGCPolicy()
)

// readPage is the data of the reading view template
type readPage struct {
	Title string
	Body  template.HTML
	Prev  string
	TOC   string
	Next  string
	Pages int
}

// readHandler renders a chapter in the reading view, as html (default), markdown or json
func (s *Server) readHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doc, err := s.converter.Read(r.Context(), service.ReadRequest{
		URL:     q.Get("url"),
		Proxy:   q.Get("u"),
		Code:    q.Get("code"),
		Charset: q.Get("charset"),
	})
	if err != nil {
		renderFailure(w, r, err)
		return
	}

	switch q.Get("format") {
	case "json":
		renderJSON(w, r, http.StatusOK, doc)
	case "md":
		s.renderMarkdown(w, r, doc)
	default:
		s.renderReadPage(w, r, doc)
	}
}

func (s *Server) renderReadPage(w http.ResponseWriter, r *http.Request, doc *reader.Document) {
	page := readPage{
		Title: doc.Title,
		Body:  template.HTML(bodyPolicy.Sanitize(doc.Body)), //nolint:gosec // sanitized above
		TOC:   doc.TOC,
		Pages: doc.Pages,
	}
	if doc.Prev != "" {
		page.Prev = s.converter.ReadURL(doc.Prev)
	}
	if doc.Next != "" {
		page.Next = s.converter.ReadURL(doc.Next)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := readTemplate.Execute(w, page); err != nil {
		log.Printf("[ERROR] failed to render reading view for %s: %v", r.URL.String(), err)
	}
}

func (s *Server) renderMarkdown(w http.ResponseWriter, r *http.Request, doc *reader.Document) {
	md, err := htmltomarkdown.ConvertString(bodyPolicy.Sanitize(doc.Body))
	if err != nil {
		renderFailure(w, r, fmt.Errorf("convert to markdown: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := fmt.Fprintf(w, "# %s\n\n%s\n", doc.Title, md); err != nil {
		log.Printf("[ERROR] failed to write markdown response: %v", err)
	}
}

// detectHandler suggests selectors for a page
func (s *Server) detectHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	suggestion, err := s.converter.Detect(r.Context(), q.Get("url"), q.Get("code"))
	if err != nil {
		renderFailure(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, suggestion)
}
