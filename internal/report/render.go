// Package report renders scan results for humans and machines. Values are
// always masked; the raw secret never reaches an io.Writer here.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cloakscan/cloakscan/internal/types"
)

type PrintOptions struct {
	Source   string
	Duration time.Duration
}

// PrintTable writes a line per detection plus a type-count summary
// footer.
func PrintTable(w io.Writer, dets []types.Detection, opts PrintOptions) {
	if len(dets) == 0 {
		fmt.Fprintln(w, "No secrets found")
		return
	}
	maxPat := 8
	for _, d := range dets {
		if l := len(d.Pattern); l > maxPat {
			maxPat = l
		}
	}
	for _, d := range dets {
		where := fmt.Sprintf("%d-%d", d.Start, d.End)
		if opts.Source != "" {
			where = fmt.Sprintf("%s:%s", opts.Source, where)
		}
		fmt.Fprintf(w, "%-14s %-*s %.2f  %s  %s\n",
			d.Type, maxPat, d.Pattern, d.Confidence, where, maskValue(d.Value))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (%s)\n", len(dets), summaryLine(dets))
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %s\n", opts.Duration.Round(time.Millisecond))
	}
}

// PrintJSON emits the detections as a JSON array. Detection.Value is
// tagged out of serialization, so this is safe to pipe anywhere.
func PrintJSON(w io.Writer, dets []types.Detection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dets)
}

func summaryLine(dets []types.Detection) string {
	counts := map[types.SecretType]int{}
	for _, d := range dets {
		counts[d.Type]++
	}
	keys := make([]string, 0, len(counts))
	for t := range counts {
		keys = append(keys, string(t))
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s: %d", k, counts[types.SecretType(k)])
	}
	return out
}

func maskValue(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}
