package detect

import (
	"encoding/base64"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cloakscan/cloakscan/internal/types"
)

// Base64-shaped runs long enough to hide a credential.
var reBase64Run = regexp.MustCompile(`[A-Za-z0-9+/]{20,}={0,2}`)

// scanBase64 decodes Base64-shaped runs and re-matches decodable patterns
// against the decoded text. Hits are reported over the original encoded
// run so redaction removes the encoded form. Recursion stays at depth
// one: only the matcher runs on decoded text, never the full pipeline.
func (e *Engine) scanBase64(text string) []types.Detection {
	var out []types.Detection
	for _, loc := range reBase64Run.FindAllStringIndex(text, -1) {
		decoded, ok := decodeBase64(text[loc[0]:loc[1]])
		if !ok || !looksLikeText(decoded) {
			continue
		}
		plain := string(decoded)
		lower := strings.ToLower(plain)
		for _, p := range e.patterns {
			if !p.Decodable || !keywordHit(lower, p.Keywords) {
				continue
			}
			for _, hit := range matchOne(p, plain, "_base64") {
				hit.Start, hit.End = loc[0], loc[1]
				out = append(out, hit)
			}
		}
	}
	return out
}

func decodeBase64(s string) ([]byte, bool) {
	var dec []byte
	var err error
	if strings.HasSuffix(s, "=") {
		dec, err = base64.StdEncoding.DecodeString(s)
	} else {
		dec, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, false
	}
	return dec, true
}

// looksLikeText accepts decoded bytes only when they are valid UTF-8 and
// almost entirely printable. Binary payloads are silently dropped.
func looksLikeText(b []byte) bool {
	if len(b) < 8 || !utf8.Valid(b) {
		return false
	}
	printable := 0
	total := 0
	for _, r := range string(b) {
		total++
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return total > 0 && float64(printable)/float64(total) >= 0.9
}
