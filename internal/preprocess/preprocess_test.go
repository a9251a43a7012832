package preprocess

import (
	"strings"
	"testing"
)

func TestIdentityForASCII(t *testing.T) {
	in := "plain ascii, nothing to do"
	m := Clean(in)
	if m.Cleaned != in {
		t.Fatalf("ascii content rewritten: %q", m.Cleaned)
	}
	s, e := m.Span(6, 11)
	if s != 6 || e != 11 {
		t.Fatalf("identity span changed: %d-%d", s, e)
	}
}

func TestZeroWidthStripped(t *testing.T) {
	in := "AKIA1234\u200b5678\u200b90AB\u200bCDEF"
	m := Clean(in)
	if m.Cleaned != "AKIA1234567890ABCDEF" {
		t.Fatalf("cleaned = %q", m.Cleaned)
	}
	// The whole cleaned token projects back over every removed rune.
	s, e := m.Span(0, len(m.Cleaned))
	if s != 0 || e != len(in) {
		t.Fatalf("span = %d-%d, want 0-%d", s, e, len(in))
	}
}

func TestZeroWidthExactInteriorSpans(t *testing.T) {
	in := "xx\u200bAB\u200b\u200bCD\u200byy"
	m := Clean(in)
	if m.Cleaned != "xxABCDyy" {
		t.Fatalf("cleaned = %q", m.Cleaned)
	}
	// "ABCD" sits at cleaned [2,6). Original: A at 5, D ends before the
	// trailing zero-width at byte 13.
	s, e := m.Span(2, 6)
	if in[s] != 'A' {
		t.Fatalf("start %d points at %q", s, in[s])
	}
	if in[e-1] != 'D' {
		t.Fatalf("end %d not just past D", e)
	}
	if strings.ContainsRune(in[s:e], 'y') || strings.ContainsRune(in[s:e], 'x') {
		t.Fatalf("span leaked into padding: %q", in[s:e])
	}
}

func TestHomoglyphFold(t *testing.T) {
	// Cyrillic А/К and fullwidth Ａ should all land on ASCII.
	m := Clean("АКIA")
	if m.Cleaned != "AKIA" {
		t.Fatalf("cyrillic fold = %q", m.Cleaned)
	}
	m = Clean("ＡＫIA")
	if m.Cleaned != "AKIA" {
		t.Fatalf("fullwidth fold = %q", m.Cleaned)
	}
}

func TestFoldedSpanCoversOriginalRunes(t *testing.T) {
	in := "xАy" // Cyrillic A is 2 bytes
	m := Clean(in)
	if m.Cleaned != "xAy" {
		t.Fatalf("cleaned = %q", m.Cleaned)
	}
	s, e := m.Span(1, 2)
	if s != 1 || e != 3 {
		t.Fatalf("folded rune span = %d-%d, want 1-3", s, e)
	}
}

func TestBOMStripped(t *testing.T) {
	m := Clean("\ufeffsecret")
	if m.Cleaned != "secret" {
		t.Fatalf("cleaned = %q", m.Cleaned)
	}
	s, e := m.Span(0, 6)
	if s != 3 || e != 9 {
		t.Fatalf("span = %d-%d, want 3-9", s, e)
	}
}
