// Package extract applies selector rules to a parsed page and produces ordered,
// deduplicated feed items.
package extract

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/umputun/html2rss/pkg/domain"
	"github.com/umputun/html2rss/pkg/title"
)

// NoTitle is used when neither the title nor the link element carries any text
const NoTitle = "No Title"

// fallbackAttrs are tried in order when the rule attribute is missing on a link element
var fallbackAttrs = []string{"href", "data-href", "data-url", "data-link", "data-src", "src"}

// absoluteSchemes are kept as-is instead of being resolved against the page URL
var absoluteSchemes = []string{"magnet:", "http:", "https:", "ftp:"}

// Extractor turns link/title selector matches into feed items
type Extractor struct{}

// New makes an Extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract applies rule to doc. pageURL is the base for relative links.
// Errors wrap domain.ErrExtraction for invalid selectors and pages without matching links.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string, rule domain.Rule) ([]domain.FeedItem, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, domain.Validationf("parse page url %q: %v", pageURL, err)
	}

	links, err := Select(doc, rule.LinkSelectors)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, domain.Extractionf("no links found with the provided selector")
	}

	titles, err := Select(doc, rule.TitleSelectors)
	if err != nil {
		return nil, err
	}
	if len(titles) != len(links) {
		titles = links // self-titling
	}

	// each sequence is reversed on its own before pairing
	if rule.LinkOrder == domain.Descending {
		links = reversed(links)
	}
	if rule.TitleOrder == domain.Descending {
		titles = reversed(titles)
	}

	attr := rule.Attr
	if attr == "" {
		attr = domain.DefaultAttr
	}

	items := make([]domain.FeedItem, 0, len(links))
	seen := make(map[string]bool, len(links))
	for i, link := range links {
		raw := linkValue(link, attr)
		if raw == "" {
			continue
		}
		resolved := Resolve(base, raw)
		if resolved == "" || seen[resolved] {
			continue
		}
		seen[resolved] = true

		t := title.Magnet(elementTitle(titles[i], link), resolved)
		if t == "" {
			t = NoTitle
		}
		items = append(items, domain.FeedItem{Title: t, Link: resolved})
	}
	return items, nil
}

// Select runs each selector expression, an expression may be a comma separated group.
// Matches are concatenated per selector in expression order, not merged in document order.
func Select(doc *goquery.Document, exprs []string) ([]*goquery.Selection, error) {
	var res []*goquery.Selection
	for _, expr := range exprs {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		group, err := cascadia.ParseGroup(expr)
		if err != nil {
			return nil, domain.Extractionf("selector syntax invalid %q: %v", expr, err)
		}
		for _, sel := range group {
			doc.FindMatcher(cascadia.Selector(sel.Match)).Each(func(_ int, s *goquery.Selection) {
				res = append(res, s)
			})
		}
	}
	return res, nil
}

// Resolve makes raw absolute against base and strips whitespace and control characters
func Resolve(base *url.URL, raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return ""
	}

	lower := strings.ToLower(cleaned)
	for _, scheme := range absoluteSchemes {
		if strings.HasPrefix(lower, scheme) {
			return cleaned
		}
	}

	ref, err := url.Parse(cleaned)
	if err != nil || base == nil {
		return cleaned
	}
	return base.ResolveReference(ref).String()
}

// linkValue reads the link from attr, then from the fallback attributes
func linkValue(s *goquery.Selection, attr string) string {
	if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
		return v
	}
	for _, a := range fallbackAttrs {
		if a == attr {
			continue
		}
		if v, ok := s.Attr(a); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// elementTitle returns the text of the title element, its title/alt attribute or the link text
func elementTitle(t, link *goquery.Selection) string {
	if txt := Text(t); txt != "" {
		return txt
	}
	for _, a := range []string{"title", "alt"} {
		if v := strings.TrimSpace(t.AttrOr(a, "")); v != "" {
			return v
		}
	}
	return Text(link)
}

// Text returns the selection text with whitespace runs collapsed
func Text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func reversed(in []*goquery.Selection) []*goquery.Selection {
	res := make([]*goquery.Selection, len(in))
	for i, s := range in {
		res[len(in)-1-i] = s
	}
	return res
}
