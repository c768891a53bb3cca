package extract

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/html2rss/pkg/domain"
)

const magnetSelector = `a[href^="magnet:"]`

// Suggestion is a selector rule proposed for a page
type Suggestion struct {
	Links   string `json:"a"`
	Titles  string `json:"t"`
	Attr    string `json:"attr"`
	Message string `json:"message"`
}

// Detect guesses a link/title selector pair. Pages with magnet links get a magnet rule,
// other pages get the most common parent of content-looking links.
func Detect(doc *goquery.Document) (Suggestion, error) {
	if magnets := doc.Find(magnetSelector); magnets.Length() > 0 {
		return detectMagnets(magnets.First()), nil
	}

	var parents []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if len(parents) >= 10 {
			return
		}
		href := s.AttrOr("href", "")
		if utf8.RuneCountInString(Text(s)) <= 5 || !(strings.HasPrefix(href, "http") || strings.HasPrefix(href, "/")) {
			return
		}
		parents = append(parents, signature(s.Parent()))
	})
	if len(parents) == 0 {
		return Suggestion{}, domain.Extractionf("could not detect patterns")
	}

	best := mostCommon(parents)
	return Suggestion{
		Links:   best + " a",
		Titles:  best + " a",
		Attr:    domain.DefaultAttr,
		Message: "Detected general list pattern.",
	}, nil
}

// detectMagnets checks whether magnet anchors carry their own titles or sit in table rows
// whose first anchor is the title
func detectMagnets(sample *goquery.Selection) Suggestion {
	txt := Text(sample)
	if domain.IsMagnet(txt) || utf8.RuneCountInString(txt) < 3 {
		if row := sample.Closest("tr"); row.Length() > 0 {
			if first := row.Find("a").First(); first.Length() > 0 && !first.IsSelection(sample) {
				return Suggestion{
					Links:   magnetSelector,
					Titles:  "tr a:nth-of-type(1)",
					Attr:    domain.DefaultAttr,
					Message: "Found magnets with distinct titles in table!",
				}
			}
		}
	}
	return Suggestion{
		Links:   magnetSelector,
		Titles:  magnetSelector,
		Attr:    domain.DefaultAttr,
		Message: "Found magnet links!",
	}
}

// signature is "tag.class1.class2" or just "tag" for an element without classes
func signature(s *goquery.Selection) string {
	name := goquery.NodeName(s)
	classes := strings.Fields(s.AttrOr("class", ""))
	if len(classes) == 0 {
		return name
	}
	return name + "." + strings.Join(classes, ".")
}

// mostCommon returns the most frequent value, ties go to the value seen first
func mostCommon(values []string) string {
	counts := map[string]int{}
	first := map[string]int{}
	for i, v := range values {
		if _, ok := first[v]; !ok {
			first[v] = i
		}
		counts[v]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return first[keys[i]] < first[keys[j]]
	})
	return keys[0]
}
