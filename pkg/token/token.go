// Package token packs request parameters into a single url-safe path segment and back.
// A packed token is the base62 form of the big-endian integer made of the parameters' JSON bytes,
// so it needs neither padding nor escaping in a URL path.
package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/umputun/html2rss/pkg/domain"
)

// alphabet is the digit order used by big.Int for base 62
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Pack encodes params into a packed token
func Pack(p domain.Params) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // keep selectors like "ul > li" compact
	if err := enc.Encode(p); err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	payload := bytes.TrimRight(buf.Bytes(), "\n")
	return EncodeBase62(payload), nil
}

// Unpack decodes a packed token. Malformed tokens fail with domain.ErrValidation.
func Unpack(tkn string) (domain.Params, error) {
	payload, err := DecodeBase62(tkn)
	if err != nil {
		return domain.Params{}, domain.Validationf("failed to decode parameters: %v", err)
	}
	var p domain.Params
	if err := json.Unmarshal(payload, &p); err != nil {
		return domain.Params{}, domain.Validationf("failed to decode parameters: %v", err)
	}
	return p, nil
}

// EncodeBase62 returns the base62 representation of data read as a big-endian unsigned integer
func EncodeBase62(data []byte) string {
	n := new(big.Int).SetBytes(data)
	return n.Text(62)
}

// DecodeBase62 reverses EncodeBase62. Only canonical input is accepted: non-empty,
// alphabet characters only and no leading zero digit.
func DecodeBase62(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("empty token")
	}
	if i := strings.IndexFunc(s, func(r rune) bool { return !strings.ContainsRune(alphabet, r) }); i >= 0 {
		return nil, fmt.Errorf("invalid character %q at position %d", s[i], i)
	}
	if s[0] == '0' {
		return nil, fmt.Errorf("non-canonical token with leading zero")
	}
	n, ok := new(big.Int).SetString(s, 62)
	if !ok {
		return nil, fmt.Errorf("can't parse token %q", s)
	}
	return n.Bytes(), nil
}

// ProxyEncode turns a URL into a reversible token for links routed through the reading view
func ProxyEncode(rawURL string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(rawURL))
}

// ProxyDecode reverses ProxyEncode
func ProxyDecode(tkn string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(tkn))
	if err != nil {
		return "", domain.Validationf("invalid proxy token: %v", err)
	}
	return string(data), nil
}
