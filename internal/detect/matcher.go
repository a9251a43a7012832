package detect

import (
	"strings"
	"unicode/utf8"

	"github.com/cloakscan/cloakscan/internal/patterns"
	"github.com/cloakscan/cloakscan/internal/types"
)

const (
	placeholder   = "[REDACTED]"
	contextWindow = 20
)

// matchPatterns runs every enabled pattern over text and returns raw
// detections in text-space coordinates. Matching is independent per
// pattern; cross-pattern overlap is resolved later.
func (e *Engine) matchPatterns(text string) []types.Detection {
	lower := strings.ToLower(text)
	var out []types.Detection
	for _, p := range e.patterns {
		if !keywordHit(lower, p.Keywords) {
			continue
		}
		out = append(out, matchOne(p, text, "")...)
	}
	return out
}

// keywordHit reports whether the lowercased content contains any of the
// pattern's keywords. Patterns without keywords always run.
func keywordHit(lower string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// matchOne collects every non-overlapping match of a single pattern.
// When the regex has a capture group, group 1 is the reported span.
func matchOne(p patterns.Pattern, text, nameSuffix string) []types.Detection {
	locs := p.Re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]types.Detection, 0, len(locs))
	for _, loc := range locs {
		s, t := loc[0], loc[1]
		if p.HasGroup() && len(loc) >= 4 && loc[2] >= 0 {
			s, t = loc[2], loc[3]
		}
		if s >= t {
			continue
		}
		out = append(out, types.Detection{
			Type:        p.Type,
			Pattern:     p.Name + nameSuffix,
			Start:       s,
			End:         t,
			Confidence:  p.Confidence,
			Value:       text[s:t],
			Description: p.Description,
		})
	}
	return out
}

// buildContext renders a +-20 character window around a span in the
// original content with the match itself replaced by the placeholder, so
// logs can show where a secret sat without showing the secret.
func buildContext(content string, d types.Detection) string {
	pre := snapLeft(content, d.Start-contextWindow)
	post := snapRight(content, d.End+contextWindow)
	return content[pre:d.Start] + placeholder + content[d.End:post]
}

func snapLeft(s string, i int) int {
	if i < 0 {
		return 0
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func snapRight(s string, i int) int {
	if i > len(s) {
		return len(s)
	}
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
