package detect

import (
	"math"
	"regexp"

	"github.com/cloakscan/cloakscan/internal/types"
)

// Entropy scanning catches opaque random tokens that match no fixed
// format. A sliding window over long token-ish runs keeps low-entropy
// padding around a secret from diluting the score below threshold.
const (
	entropyMinRun = 50
	entropyWindow = 32
	entropyStep   = 8
	// log2(32): the ceiling a 32-byte window of distinct characters
	// can reach. Confidence scales from threshold up to this.
	entropyMax = 5.0
	// Sub-spans shorter than this after trimming are noise.
	entropyMinSpan = 16
)

var reTokenRun = regexp.MustCompile(`[A-Za-z0-9_/+=-]{50,}`)

func entropyThreshold(s types.Sensitivity) float64 {
	switch s {
	case types.SensStrict:
		return 3.2
	case types.SensPermissive:
		return 3.8
	default:
		return 3.5
	}
}

// shannon computes bits of entropy per character over an ASCII window.
func shannon(s string) float64 {
	if s == "" {
		return 0
	}
	var freq [128]int
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 128 {
			freq[b]++
		}
	}
	n := float64(len(s))
	var h float64
	for _, f := range freq {
		if f == 0 {
			continue
		}
		p := float64(f) / n
		h -= p * math.Log2(p)
	}
	return h
}

// scanEntropy reports the high-entropy sub-span of each qualifying run as
// a generic secret. The sub-span is the union of windows whose entropy
// exceeds the threshold, trimmed of repeated-character filler at either
// end, so padding never widens the reported span.
func (e *Engine) scanEntropy(text string) []types.Detection {
	var out []types.Detection
	for _, loc := range reTokenRun.FindAllStringIndex(text, -1) {
		run := text[loc[0]:loc[1]]
		spanStart, spanEnd, best := -1, -1, 0.0
		for w := 0; ; w += entropyStep {
			end := w + entropyWindow
			if end > len(run) {
				// Final window hugs the run end.
				w = len(run) - entropyWindow
				end = len(run)
			}
			h := shannon(run[w:end])
			if h > e.entropyThresh {
				if spanStart < 0 {
					spanStart = w
				}
				if end > spanEnd {
					spanEnd = end
				}
				if h > best {
					best = h
				}
			}
			if end == len(run) {
				break
			}
		}
		if spanStart < 0 {
			continue
		}
		spanStart, spanEnd = trimRepeats(run, spanStart, spanEnd)
		if spanEnd-spanStart < entropyMinSpan {
			continue
		}
		conf := entropyConfidence(best, e.entropyThresh)
		out = append(out, types.Detection{
			Type:        types.TypeGenericSecret,
			Pattern:     "entropy",
			Start:       loc[0] + spanStart,
			End:         loc[0] + spanEnd,
			Confidence:  conf,
			Value:       run[spanStart:spanEnd],
			Description: "High-entropy string",
		})
	}
	return out
}

// entropyConfidence maps entropy linearly from threshold (0.5) toward the
// window's maximum (0.9).
func entropyConfidence(h, threshold float64) float64 {
	frac := (h - threshold) / (entropyMax - threshold)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return 0.5 + 0.4*frac
}

// trimRepeats shrinks a span past any leading/trailing run of three or
// more identical characters. Low-entropy filler is by construction
// repetitive; random token material almost never is.
func trimRepeats(run string, start, end int) (int, int) {
	for start < end {
		c := run[start]
		n := start
		for n < end && run[n] == c {
			n++
		}
		if n-start < 3 {
			break
		}
		start = n
	}
	for end > start {
		c := run[end-1]
		n := end
		for n > start && run[n-1] == c {
			n--
		}
		if end-n < 3 {
			break
		}
		end = n
	}
	return start, end
}

// quickEntropy is the cheap pre-check behind the hasSecrets fast path:
// coarser stride, first qualifying window wins.
func quickEntropy(text string, threshold float64) bool {
	for _, loc := range reTokenRun.FindAllStringIndex(text, -1) {
		run := text[loc[0]:loc[1]]
		for w := 0; ; w += entropyWindow / 2 {
			end := w + entropyWindow
			if end > len(run) {
				w = len(run) - entropyWindow
				end = len(run)
			}
			if shannon(run[w:end]) > threshold {
				return true
			}
			if end == len(run) {
				break
			}
		}
	}
	return false
}
