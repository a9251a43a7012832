package detect

import (
	"regexp"
	"strings"

	"github.com/cloakscan/cloakscan/internal/types"
)

// The false-positive filter suppresses known-benign shapes before overlap
// resolution. It only ever drops detections; recall is the matcher's job.
var (
	reUUID      = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	reHashLabel = regexp.MustCompile(`(?i)(?:sha(?:1|256|512):|commit[\s:="']{0,5})\s*$`)
	reDataURI   = regexp.MustCompile(`(?i)data:[a-z0-9.+-]{1,64}/[a-z0-9.+-]{1,64}(?:;base64)?,[A-Za-z0-9+/=]{0,512}$`)
	rePlacehold = regexp.MustCompile(`(?i)example|your_[a-z0-9_]{0,40}_here|your[_-](?:api[_-]?key|token|secret)|changeme|placeholder|x{6,}|\*{4,}|<[a-z_ -]{1,32}>|\$\{[a-z_]{1,48}\}`)
)

// falsePositive reports whether a detection should be suppressed. Spans
// are in original-content coordinates by the time this runs.
func falsePositive(content string, d types.Detection) bool {
	if reUUID.MatchString(d.Value) {
		return true
	}
	if hexHashLabeled(content, d) {
		return true
	}
	if insideDataURI(content, d.Start) {
		return true
	}
	if d.Confidence <= 0.7 {
		if rePlacehold.MatchString(d.Value) || sameChar(d.Value) {
			return true
		}
	}
	return false
}

// hexHashLabeled drops 40/64-hex runs that a nearby label identifies as a
// digest: sha1:/sha256:/sha512:, a commit reference, or an "integrity"
// field.
func hexHashLabeled(content string, d types.Detection) bool {
	if !allHex(d.Value) {
		return false
	}
	// Widen to the containing hex run; entropy sub-spans can start
	// mid-digest.
	rs, re := d.Start, d.End
	for rs > 0 && isHex(content[rs-1]) {
		rs--
	}
	for re < len(content) && isHex(content[re]) {
		re++
	}
	if n := re - rs; n != 40 && n != 64 {
		return false
	}
	pre := content[maxInt(0, rs-24):rs]
	if reHashLabel.MatchString(pre) {
		return true
	}
	return strings.Contains(content[maxInt(0, rs-120):rs], `"integrity"`)
}

// insideDataURI drops anything sitting in the payload of a data: URI.
func insideDataURI(content string, start int) bool {
	pre := content[maxInt(0, start-640):start]
	return reDataURI.MatchString(pre)
}

func allHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return false
		}
	}
	return true
}

func isHex(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func sameChar(s string) bool {
	if len(s) < 2 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
