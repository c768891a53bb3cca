// Package title rewrites extracted item titles: magnet display names, episode numbering
// and novel chapter normalization with natural ordering.
package title

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/umputun/html2rss/pkg/domain"
)

var magnetNameRe = regexp.MustCompile(`dn=([^&]+)`)

// MagnetName returns the display name embedded in a magnet URI, empty if none
func MagnetName(link string) string {
	if !domain.IsMagnet(link) {
		return ""
	}
	m := magnetNameRe.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	name, err := url.PathUnescape(m[1])
	if err != nil {
		name = m[1]
	}
	return strings.TrimSpace(name)
}

// Magnet recovers a readable title for magnet items. A title which is itself a magnet URI
// is replaced by its own display name, and a magnet link with a display name overrides
// whatever title was extracted for it. Without a display name the extracted title is kept,
// however short. Non-magnet titles and links pass unchanged.
func Magnet(title, link string) string {
	title = strings.TrimSpace(title)
	if domain.IsMagnet(title) {
		if dn := MagnetName(title); dn != "" {
			title = dn
		}
	}
	if !domain.IsMagnet(link) {
		return title
	}
	if dn := MagnetName(link); dn != "" {
		return dn
	}
	return title
}
