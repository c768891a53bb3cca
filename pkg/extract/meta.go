package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageMeta returns the page title, the url when the page has none, and the meta description
func PageMeta(doc *goquery.Document, pageURL string) (pageTitle, description string) {
	pageTitle = Text(doc.Find("title").First())
	if pageTitle == "" {
		pageTitle = pageURL
	}
	doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(s.AttrOr("name", ""), "description") {
			return true
		}
		description = strings.TrimSpace(s.AttrOr("content", ""))
		return false
	})
	return pageTitle, description
}
