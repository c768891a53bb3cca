package reader

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/umputun/html2rss/pkg/extract"
	"github.com/umputun/html2rss/pkg/title"
)

const (
	maxHeadingLen  = 50 // longer headings are not taken as the chapter title
	maxNextPageLen = 12 // longer anchor texts are sentences, not "next page" links
)

// navigation keyword sets, matched against lowercased anchor text without spaces
var (
	nextChapterWords = []string{"下一章", "nextchapter"}
	prevChapterWords = []string{"上一章", "previouschapter", "prevchapter"}
	tocWords         = []string{"目录", "tableofcontents"}
	nextPageWords    = []string{"下一页", "下页", "nextpage", "next"}
)

// content containers in priority order
var (
	contentIDs = []string{"content", "chaptercontent", "chapterContent", "booktxt", "txt",
		"htmlContent", "BookText", "nr1", "TextContent", "article"}
	contentClasses = []string{"content", "chapter-content", "read-content", "article-content",
		"txtnav", "post-content", "entry-content"}
)

// chrome removed from the container before its text is taken
const chromeSelector = "script, style, iframe, header, footer, nav, aside, button, noscript"

// titleDelimiters separate the page title from the site name suffix
var titleDelimiters = []string{"_", "|", " - ", "–", "—"}

// page is what one fetched page contributes to the document
type page struct {
	title    string
	text     string
	next     string // next chapter
	prev     string // previous chapter
	toc      string
	nextPage string // continuation of the current chapter
}

// parsePage extracts title, navigation targets and body text. Body extraction mutates doc.
func parsePage(doc *goquery.Document, pageURL string) page {
	base, _ := url.Parse(pageURL)
	res := page{title: pageTitle(doc)}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}
		text := anchorKey(a)
		if text == "" {
			return
		}
		target := extract.Resolve(base, href)

		switch {
		case containsAny(text, nextChapterWords):
			res.next = firstNonEmpty(res.next, target)
		case containsAny(text, prevChapterWords):
			res.prev = firstNonEmpty(res.prev, target)
		case containsAny(text, tocWords):
			res.toc = firstNonEmpty(res.toc, target)
		case utf8.RuneCountInString(text) <= maxNextPageLen && containsAny(text, nextPageWords):
			if target != pageURL {
				res.nextPage = firstNonEmpty(res.nextPage, target)
			}
		}
	})

	res.text = bodyText(contentContainer(doc))
	return res
}

// pageTitle prefers a short chapter-like heading, then the <title> without its site suffix
func pageTitle(doc *goquery.Document) string {
	var heading string
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := extract.Text(s)
		if txt != "" && utf8.RuneCountInString(txt) <= maxHeadingLen && title.IsChapter(txt) {
			heading = txt
			return false
		}
		return true
	})
	if heading != "" {
		return heading
	}
	return stripSiteSuffix(extract.Text(doc.Find("title").First()))
}

// stripSiteSuffix cuts the title at the first delimiter, keeping the whole title
// when nothing is left before it
func stripSiteSuffix(s string) string {
	cut := len(s)
	for _, d := range titleDelimiters {
		if i := strings.Index(s, d); i > 0 && i < cut {
			cut = i
		}
	}
	if res := strings.TrimSpace(s[:cut]); res != "" {
		return res
	}
	return strings.TrimSpace(s)
}

// contentContainer picks the first matching id, then class, then body, then the whole document
func contentContainer(doc *goquery.Document) *goquery.Selection {
	for _, id := range contentIDs {
		if s := doc.Find(`[id="` + id + `"]`).First(); s.Length() > 0 {
			return s
		}
	}
	for _, class := range contentClasses {
		if s := doc.Find("." + class).First(); s.Length() > 0 {
			return s
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// bodyText drops chrome and returns the container text with paragraph and line breaks kept
func bodyText(s *goquery.Selection) string {
	s.Find(chromeSelector).Remove()
	s.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(newline())
	})
	s.Find("p, div, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, block *goquery.Selection) {
		block.AppendNodes(newline())
	})
	return strings.TrimSpace(s.Text())
}

func newline() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n"}
}

// anchorKey is the lowercased anchor text with all whitespace removed
func anchorKey(a *goquery.Selection) string {
	return strings.ToLower(strings.Join(strings.Fields(a.Text()), ""))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
