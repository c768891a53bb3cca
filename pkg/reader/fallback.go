package reader

import (
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
)

// fallbackText runs trafilatura over each fetched page and joins the extracted texts.
// Pages trafilatura can't handle are skipped.
func fallbackText(pageURL string, pages []string) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	texts := make([]string, 0, len(pages))
	for i, src := range pages {
		result, err := trafilatura.Extract(strings.NewReader(src), opts)
		if err != nil {
			lgr.Printf("[DEBUG] trafilatura failed on page %d of %s: %v", i+1, pageURL, err)
			continue
		}
		if result == nil || strings.TrimSpace(result.ContentText) == "" {
			continue
		}
		texts = append(texts, strings.TrimSpace(result.ContentText))
	}
	return strings.Join(texts, "\n")
}
