package fetcher

import (
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/umputun/html2rss/pkg/domain"
)

// DefaultFallbackCharset is used when detection is not confident, a superset of GBK and GB2312
const DefaultFallbackCharset = "gb18030"

// DefaultMinConfidence is the lowest chardet confidence (0-100) accepted
const DefaultMinConfidence = 50

// detectorAliases maps chardet names to labels charset.Lookup understands
var detectorAliases = map[string]string{
	"gb-18030": "gb18030",
}

// strategy tries to decode raw bytes, returns ok=false to pass to the next strategy in the chain
type strategy func(raw []byte, hint string) (text, name string, ok bool)

// Decoder turns raw page bytes into text. Strategies run in order, first success wins:
// explicit charset, statistical detection, fixed fallback charset, lossy UTF-8.
// Decoding never fails, the worst case is text with U+FFFD replacement runes.
type Decoder struct {
	fallback      encoding.Encoding
	fallbackName  string
	minConfidence int
	chain         []strategy
}

// NewDecoder makes a Decoder with the given fallback charset label and minimal detection confidence
func NewDecoder(fallback string, minConfidence int) *Decoder {
	if fallback == "" {
		fallback = DefaultFallbackCharset
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	d := &Decoder{fallbackName: strings.ToLower(fallback), minConfidence: minConfidence}
	if enc, name := charset.Lookup(fallback); enc != nil {
		d.fallback, d.fallbackName = enc, name
	} else {
		lgr.Printf("[WARN] unknown fallback charset %q, using %s", fallback, DefaultFallbackCharset)
		d.fallback, d.fallbackName = simplifiedchinese.GB18030, DefaultFallbackCharset
	}
	d.chain = []strategy{d.explicit, d.detected, d.fixedFallback, lossyUTF8}
	return d
}

// Decode returns the decoded text and the name of the charset used
func (d *Decoder) Decode(raw []byte, hint string) (text, used string) {
	for _, s := range d.chain {
		if text, name, ok := s(raw, hint); ok {
			return text, name
		}
	}
	// unreachable, lossyUTF8 always succeeds
	text, used, _ = lossyUTF8(raw, hint)
	return text, used
}

// explicit uses the caller supplied charset unless it is empty, "auto" or unknown
func (d *Decoder) explicit(raw []byte, hint string) (string, string, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" || strings.EqualFold(hint, domain.CharsetAuto) {
		return "", "", false
	}
	enc, name := charset.Lookup(hint)
	if enc == nil {
		lgr.Printf("[WARN] unknown charset %q requested, detecting instead", hint)
		return "", "", false
	}
	text, err := decodeWith(enc, raw)
	if err != nil {
		lgr.Printf("[WARN] can't decode with requested charset %s: %v", name, err)
		return "", "", false
	}
	return text, name, true
}

// detected runs statistical detection and accepts results above the confidence threshold
func (d *Decoder) detected(raw []byte, _ string) (string, string, bool) {
	if len(raw) == 0 {
		return "", "", false
	}
	res, err := chardet.NewHtmlDetector().DetectBest(raw)
	if err != nil || res == nil {
		return "", "", false
	}
	if res.Confidence < d.minConfidence {
		lgr.Printf("[DEBUG] charset detection not confident, %s at %d%%", res.Charset, res.Confidence)
		return "", "", false
	}
	label := strings.ToLower(res.Charset)
	if alias, ok := detectorAliases[label]; ok {
		label = alias
	}
	if label == "utf-8" && utf8.Valid(raw) {
		return string(raw), "utf-8", true
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", "", false
	}
	text, err := decodeWith(enc, raw)
	if err != nil {
		return "", "", false
	}
	return text, name, true
}

// fixedFallback decodes with the configured fallback charset, accepted only for a clean decode
func (d *Decoder) fixedFallback(raw []byte, _ string) (string, string, bool) {
	text, err := decodeWith(d.fallback, raw)
	if err != nil || strings.ContainsRune(text, utf8.RuneError) {
		return "", "", false
	}
	return text, d.fallbackName, true
}

// lossyUTF8 is the last resort, invalid sequences become U+FFFD
func lossyUTF8(raw []byte, _ string) (string, string, bool) {
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), "utf-8", true
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
