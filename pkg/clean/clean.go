// Package clean strips navigation, legal and script boilerplate from extracted body text.
// It is a majority-vote heuristic over a fixed set of junk patterns, not a content extractor:
// a line is dropped when enough patterns agree it is chrome rather than prose.
package clean

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minLineLen   = 2  // shorter trimmed lines are dropped
	shortLineLen = 45 // a single junk hit drops lines shorter than this
)

// junkPatterns are site independent phrases of page chrome, each one counts as a single vote
var junkPatterns = []string{
	`上一章|下一章|上一页|下一页|返回目录|章节目录|章节列表|加入书签|投推荐票|推荐本书|返回书页|返回列表|首页|书架|排行`,
	`本站|网址|最新章节|手机阅读|手机版|请收藏|收藏本站|书友|笔趣阁|全文阅读|免费阅读|一秒记住|最快更新|无弹窗`,
	`(?i)https?://|www\.|\.(?:com|net|org|cc|la|info|xyz)\b`,
	`(?i)javascript|function\s*\(|\bvar\s+\w+\s*=|\bdocument\.\w+\s*\(|\bwindow\.\w+|<script|\bonclick\b`,
	`(?i)copyright|all rights reserved|版权|备案|\bICP\b`,
	`(?i)next chapter|previous chapter|prev chapter|table of contents|bookmark|sign in|log ?in|subscribe`,
	`广告|点击|登录|注册|客户端|下载APP|(?i:download app)`,
}

var (
	// separators used to split the raw text into lines before filtering
	breakTagsRe  = regexp.MustCompile(`(?i)</?p\s*>|<br\s*/?>`)
	separatorsRe = regexp.MustCompile(`[ \t\x{00A0}\x{3000}]{2,}|\|`)
	spacesRe     = regexp.MustCompile(`[\s\x{00A0}\x{3000}]+`)

	// copyright mention, drops short lines only
	copyrightRe = regexp.MustCompile(`(?i)©|\(c\)|copyright|版权所有|all rights reserved`)

	// copyright stamp at the start of a line and bare year ranges, drop lines of any length
	copyrightStampRe = regexp.MustCompile(`(?i)^(?:©|\(c\)\s*(?:19|20)\d{2}|copyright\s*(?:©|\(c\)|(?:19|20)\d{2})|版权所有)`)
	yearRangeRe      = regexp.MustCompile(`^[\s\d©年\-–~]*(?:19|20)\d{2}\s*[-–~]\s*(?:19|20)\d{2}[\s年]*$`)
	separatorOnly    = regexp.MustCompile(`^[\s\-_=*~·•.。,，、|/\\#<>《》【】\[\]()（）:：;；!！?？'"“”‘’…]+$`)
)

// Cleaner filters junk lines, patterns are compiled once in New
type Cleaner struct {
	junk []*regexp.Regexp
}

// New makes a Cleaner with the built-in junk patterns
func New() *Cleaner {
	c := &Cleaner{junk: make([]*regexp.Regexp, 0, len(junkPatterns))}
	for _, p := range junkPatterns {
		c.junk = append(c.junk, regexp.MustCompile(p))
	}
	return c
}

// Clean splits raw text into lines, drops junk and returns the survivors as <p> fragments
// in original order. Input may be plain text or a fragment previously returned by Clean,
// cleaning such a fragment again returns it unchanged.
func (c *Cleaner) Clean(raw string) string {
	var sb strings.Builder
	for _, line := range c.Lines(raw) {
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(line))
		sb.WriteString("</p>")
	}
	return sb.String()
}

// Lines returns the kept lines with whitespace collapsed
func (c *Cleaner) Lines(raw string) []string {
	text := breakTagsRe.ReplaceAllString(raw, "\n")
	text = html.UnescapeString(text)
	text = separatorsRe.ReplaceAllString(text, "\n")

	var res []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spacesRe.ReplaceAllString(line, " "))
		if c.isJunk(line) {
			continue
		}
		res = append(res, line)
	}
	return res
}

// isJunk decides whether a single trimmed, collapsed line is boilerplate
func (c *Cleaner) isJunk(line string) bool {
	size := utf8.RuneCountInString(line)
	if size < minLineLen {
		return true
	}
	if separatorOnly.MatchString(line) || copyrightStampRe.MatchString(line) || yearRangeRe.MatchString(line) {
		return true
	}
	if size < shortLineLen && copyrightRe.MatchString(line) {
		return true
	}

	hits := 0
	for _, re := range c.junk {
		if re.MatchString(line) {
			hits++
		}
	}
	return hits >= 2 || (hits == 1 && size < shortLineLen)
}
