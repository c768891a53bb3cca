package title

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/umputun/html2rss/pkg/domain"
)

// chapterMarkerRe recognizes chapter and section markers once whitespace is removed
var chapterMarkerRe = regexp.MustCompile(`第[0-9０-９零〇一二两三四五六七八九十百千万]+[章节回卷集部篇话]|(?i:chapter)\d+|^\d+[.、]`)

// Chapter normalizes a novel chapter title. Titles without a chapter marker are rejected (ok=false).
// All whitespace is removed and a single space is put back right after the marker.
func Chapter(title string) (string, bool) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, title)

	loc := chapterMarkerRe.FindStringIndex(compact)
	if loc == nil {
		return "", false
	}
	if loc[1] == len(compact) {
		return compact, true
	}
	return compact[:loc[1]] + " " + compact[loc[1]:], true
}

// IsChapter reports whether the title carries a chapter marker
func IsChapter(title string) bool {
	_, ok := Chapter(title)
	return ok
}

// Chapters filters items to chapter-like entries with normalized titles, then orders them
// by natural sort key, highest chapter first
func Chapters(items []domain.FeedItem) []domain.FeedItem {
	res := make([]domain.FeedItem, 0, len(items))
	for _, it := range items {
		t, ok := Chapter(it.Title)
		if !ok {
			continue
		}
		res = append(res, domain.FeedItem{Title: t, Link: it.Link})
	}
	SortNatural(res, true)
	return res
}

// SortNatural sorts items by the natural key of their titles, stable for equal keys
func SortNatural(items []domain.FeedItem, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return NaturalLess(items[j].Title, items[i].Title)
		}
		return NaturalLess(items[i].Title, items[j].Title)
	})
}

// NaturalLess compares two strings by natural key: digit runs compare by numeric value,
// other runs case-insensitively, and a digit run sorts before a text run at the same position
func NaturalLess(a, b string) bool {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if c := ka[i].compare(kb[i]); c != 0 {
			return c < 0
		}
	}
	return len(ka) < len(kb)
}

// keyPart is one run of a natural key
type keyPart struct {
	digits bool
	text   string // lower-cased text, or digits without leading zeros
}

func (p keyPart) compare(o keyPart) int {
	switch {
	case p.digits && !o.digits:
		return -1
	case !p.digits && o.digits:
		return 1
	case p.digits:
		// numbers of any size, compared by length first
		if len(p.text) != len(o.text) {
			if len(p.text) < len(o.text) {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(p.text, o.text)
}

func naturalKey(s string) []keyPart {
	var parts []keyPart
	var cur strings.Builder
	curDigits := false

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		text := cur.String()
		if curDigits {
			text = strings.TrimLeft(text, "0")
		} else {
			text = strings.ToLower(text)
		}
		parts = append(parts, keyPart{digits: curDigits, text: text})
		cur.Reset()
	}

	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		if cur.Len() > 0 && isDigit != curDigits {
			flush()
		}
		curDigits = isDigit
		cur.WriteRune(r)
	}
	flush()
	return parts
}
