// Package preprocess normalizes evasion tricks out of content before
// pattern matching: zero-width characters inserted mid-token and Unicode
// homoglyphs standing in for ASCII. It keeps an exact byte-level mapping
// from the cleaned text back to the original so downstream spans always
// index the unmodified input.
package preprocess

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Homoglyphs commonly used to smuggle secrets past ASCII patterns.
// NFKC does not fold cross-script confusables, so these are explicit.
var homoglyphs = map[rune]rune{
	// Cyrillic uppercase
	'А': 'A', 'В': 'B', 'С': 'C', 'Е': 'E', 'Н': 'H', 'І': 'I', 'Ј': 'J',
	'К': 'K', 'М': 'M', 'О': 'O', 'Р': 'P', 'Ѕ': 'S', 'Т': 'T', 'Х': 'X',
	// Cyrillic lowercase
	'а': 'a', 'с': 'c', 'е': 'e', 'і': 'i', 'ј': 'j', 'о': 'o', 'р': 'p',
	'ѕ': 's', 'х': 'x', 'у': 'y',
	// Greek
	'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Ζ': 'Z', 'Η': 'H', 'Ι': 'I', 'Κ': 'K',
	'Μ': 'M', 'Ν': 'N', 'Ο': 'O', 'Ρ': 'P', 'Τ': 'T', 'Υ': 'Y', 'Χ': 'X',
	'ο': 'o', 'ν': 'v',
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\ufeff':
		return true
	}
	return false
}

// foldRune maps one original rune to its cleaned representation. ASCII
// passes through untouched; confusables go through the explicit table;
// everything else gets NFKC compatibility folding (fullwidth Latin,
// ligatures, and similar), which may expand to several runes.
func foldRune(r rune) string {
	if r < 0x80 {
		return string(r)
	}
	if a, ok := homoglyphs[r]; ok {
		return string(a)
	}
	return norm.NFKC.String(string(r))
}

// Mapping relates cleaned text to the original input. For every byte i of
// Cleaned, starts[i] is the original offset of the rune that produced it
// and ends[i] is the offset just past that rune. A nil Mapping (or one
// from Identity) maps spans through unchanged.
type Mapping struct {
	Cleaned string
	starts  []int
	ends    []int
}

// Identity wraps content without any rewriting, for callers that disable
// preprocessing.
func Identity(content string) *Mapping {
	return &Mapping{Cleaned: content}
}

// Span projects a half-open span over Cleaned onto the original input.
// The projection is exact: removed zero-width runes inside the match do
// not shift the recovered offsets.
func (m *Mapping) Span(start, end int) (int, int) {
	if m == nil || m.starts == nil || start >= end {
		return start, end
	}
	if start < 0 {
		start = 0
	}
	if end > len(m.Cleaned) {
		end = len(m.Cleaned)
	}
	return m.starts[start], m.ends[end-1]
}

// Clean normalizes content and returns the mapping back to it. Steps, in
// order per rune: drop zero-width characters (U+200B/C/D, U+FEFF), fold
// homoglyphs to ASCII, NFKC-fold compatibility forms.
func Clean(content string) *Mapping {
	// Fast path: pure ASCII needs no rewriting.
	ascii := true
	for i := 0; i < len(content); i++ {
		if content[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return Identity(content)
	}

	var b strings.Builder
	b.Grow(len(content))
	starts := make([]int, 0, len(content))
	ends := make([]int, 0, len(content))
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid byte: pass through untouched.
			b.WriteByte(content[i])
			starts = append(starts, i)
			ends = append(ends, i+1)
			i++
			continue
		}
		if isZeroWidth(r) {
			i += size
			continue
		}
		folded := foldRune(r)
		b.WriteString(folded)
		for j := 0; j < len(folded); j++ {
			starts = append(starts, i)
			ends = append(ends, i+size)
		}
		i += size
	}
	return &Mapping{Cleaned: b.String(), starts: starts, ends: ends}
}
