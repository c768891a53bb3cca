package domain

import (
	"net/url"
	"strings"
)

// DefaultAttr is the attribute links are read from unless a rule says otherwise
const DefaultAttr = "href"

// CharsetAuto asks the fetcher to detect the page encoding
const CharsetAuto = "auto"

// Order of a candidate sequence before link and title candidates are paired
type Order int

// supported orders
const (
	Ascending Order = iota
	Descending
)

// ParseOrder converts the wire value ("a" or "d") into an Order, anything but "d" is ascending
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), "d") {
		return Descending
	}
	return Ascending
}

// String returns the wire value of the order
func (o Order) String() string {
	if o == Descending {
		return "d"
	}
	return "a"
}

// Rule tells the extractor which elements carry links and titles. Immutable once built.
type Rule struct {
	LinkSelectors  []string
	TitleSelectors []string
	Attr           string
	LinkOrder      Order
	TitleOrder     Order
}

// Params is the full parameter set of a feed request, the payload of a packed token.
// Optional fields are omitted when empty so packing is stable.
type Params struct {
	URL        string `json:"url"`
	Links      string `json:"a"`
	Code       string `json:"code"`
	Titles     string `json:"t,omitempty"`
	Attr       string `json:"attr,omitempty"`
	Charset    string `json:"charset,omitempty"`
	TitleOrder string `json:"ts,omitempty"`
	LinkOrder  string `json:"as,omitempty"`
	Season     int    `json:"s,omitempty"`
	Novel      bool   `json:"n,omitempty"`
	Reading    bool   `json:"r,omitempty"`
}

// Validate checks required parameters and the target URL
func (p Params) Validate() error {
	if p.URL == "" || p.Links == "" || p.Code == "" {
		return Validationf("missing required parameters (url, a, code)")
	}
	u, err := url.Parse(p.URL)
	if err != nil {
		return Validationf("invalid url %q: %v", p.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Validationf("invalid url %q: only absolute http(s) urls are supported", p.URL)
	}
	if p.Season < 0 {
		return Validationf("season must be positive, got %d", p.Season)
	}
	return nil
}

// Rule builds the extraction rule with defaults applied
func (p Params) Rule() Rule {
	r := Rule{
		LinkSelectors: []string{p.Links},
		Attr:          p.Attr,
		LinkOrder:     ParseOrder(p.LinkOrder),
		TitleOrder:    ParseOrder(p.TitleOrder),
	}
	if r.Attr == "" {
		r.Attr = DefaultAttr
	}
	if strings.TrimSpace(p.Titles) != "" {
		r.TitleSelectors = []string{p.Titles}
	}
	return r
}

// CharsetHint returns the requested charset, CharsetAuto if none given
func (p Params) CharsetHint() string {
	if strings.TrimSpace(p.Charset) == "" {
		return CharsetAuto
	}
	return p.Charset
}
