package title

import (
	"fmt"
	"regexp"
	"strconv"
)

// episode number patterns in priority order, the first one matching wins
var (
	// keyword forms, the whole matched phrase is replaced
	episodeKeywordRe = regexp.MustCompile(`(?i)第\s*(\d{1,4})\s*[集话話期回]|\b(?:episode|ep|part|pt|e)\.?\s*(\d{1,4})\b`)
	// digit run bounded by spaces, brackets, dashes or a file extension, only digits replaced
	episodeBoundedRe = regexp.MustCompile(`(?:^|[\s\[\(【（\-_#])(\d{1,3})(?:$|[\s\]\)】）\-_]|\.[A-Za-z0-9]{2,4}$)`)
	// whole trailing digit run with optional version suffix and extension, only digits replaced.
	// longer runs such as years or resolutions don't match at all.
	episodeTrailingRe = regexp.MustCompile(`(?:^|\D)(\d{1,3})(?:[vV]\d)?(?:\.[A-Za-z0-9]{2,4})?\s*$`)

	seasonEpisodeRe = regexp.MustCompile(`(?i)\bS\d{1,2}E\d{1,4}\b`)
)

// FormatEpisode injects a zero padded SxxEyy token for the episode number found in the title.
// season <= 0 means no season was supplied and the title is returned unchanged, as are titles
// already carrying a season/episode token or without a plausible episode number.
func FormatEpisode(title string, season int) string {
	if season <= 0 || seasonEpisodeRe.MatchString(title) {
		return title
	}

	if m := episodeKeywordRe.FindStringSubmatchIndex(title); m != nil {
		num := ""
		switch {
		case m[2] >= 0:
			num = title[m[2]:m[3]]
		case m[4] >= 0:
			num = title[m[4]:m[5]]
		}
		return title[:m[0]] + episodeToken(season, num) + title[m[1]:]
	}

	for _, re := range []*regexp.Regexp{episodeBoundedRe, episodeTrailingRe} {
		if m := re.FindStringSubmatchIndex(title); m != nil {
			return title[:m[2]] + episodeToken(season, title[m[2]:m[3]]) + title[m[3]:]
		}
	}
	return title
}

func episodeToken(season int, num string) string {
	n, err := strconv.Atoi(num)
	if err != nil {
		return num
	}
	return fmt.Sprintf("S%02dE%02d", season, n)
}
