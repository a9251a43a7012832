// Package redact replaces detection spans with markers. It is pure over
// the detections it is given; scanning is the caller's business, which
// keeps this package usable for ad hoc single-value redaction too.
package redact

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cloakscan/cloakscan/internal/types"
)

// Content splices a marker over every detection span. Spans are processed
// in descending start order so earlier offsets stay valid while splicing
// from the back of the string.
func Content(content string, dets []types.Detection, opts types.RedactionOptions) string {
	if len(dets) == 0 {
		return content
	}
	ordered := make([]types.Detection, len(dets))
	copy(ordered, dets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	out := content
	for _, d := range ordered {
		if d.Start < 0 || d.End > len(out) || d.Start >= d.End {
			continue
		}
		value := d.Value
		if value == "" {
			value = content[d.Start:d.End]
		}
		out = out[:d.Start] + marker(value, d.Type, opts) + out[d.End:]
	}
	return out
}

// Value redacts a single value outside any full-content scan.
func Value(value string, t types.SecretType, opts types.RedactionOptions) string {
	return marker(value, t, opts)
}

func marker(value string, t types.SecretType, opts types.RedactionOptions) string {
	label := "REDACTED"
	if !opts.NoTypeLabel {
		label = strings.ToUpper(string(t))
	}
	if opts.ShowPartial {
		n := opts.EffectivePartialLength()
		if len(value) > 2*n {
			label = fmt.Sprintf("%s:%s...%s", label, value[:n], value[len(value)-n:])
		}
	}
	switch opts.EffectiveFormat() {
	case types.FormatAsterisk:
		return "***" + label + "***"
	case types.FormatHash:
		return "###" + label + "###"
	default:
		if opts.NoTypeLabel {
			return "[" + label + "]"
		}
		return "[REDACTED:" + label + "]"
	}
}

// A ScanFunc produces detections for file content; redaction helpers take
// one so this package never depends on the engine.
type ScanFunc func(content string) []types.Detection

// Apply rewrites a file in place when redaction changes it. It reports
// whether the file was modified.
func Apply(path string, scan ScanFunc, opts types.RedactionOptions) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	redacted := Content(string(b), scan(string(b)), opts)
	if bytes.Equal(b, []byte(redacted)) {
		return false, nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(redacted), st.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// WouldChange is the dry-run variant of Apply.
func WouldChange(path string, scan ScanFunc, opts types.RedactionOptions) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	content := string(b)
	return Content(content, scan(content), opts) != content, nil
}
