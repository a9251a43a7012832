package detect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"

	"github.com/cloakscan/cloakscan/internal/patterns"
	"github.com/cloakscan/cloakscan/internal/preprocess"
	"github.com/cloakscan/cloakscan/internal/redact"
	"github.com/cloakscan/cloakscan/internal/types"
)

// Engine is an immutable scanner built from a pattern table and options.
// After New returns, nothing mutates it, so a single Engine is safe for
// concurrent use without locking.
type Engine struct {
	opts          types.DetectionOptions
	patterns      []patterns.Pattern // enabled, confidence-scaled, sorted by confidence desc
	minConf       float64
	entropyThresh float64
}

// New builds an engine. Malformed custom patterns are logged and skipped
// rather than failing the build; Scan on the resulting engine never
// errors.
func New(opts types.DetectionOptions) *Engine {
	e := &Engine{
		opts:          opts,
		minConf:       opts.EffectiveMinConfidence(),
		entropyThresh: entropyThreshold(opts.EffectiveSensitivity()),
	}
	mult := confidenceMultiplier(opts.EffectiveSensitivity())

	all := patterns.Builtin()
	candidates := make([]patterns.Pattern, 0, len(all)+len(opts.CustomPatterns))
	candidates = append(candidates, all...)
	for _, spec := range opts.CustomPatterns {
		p, err := patterns.Compile(spec)
		if err != nil {
			log.Warn().Str("pattern", spec.Name).Err(err).
				Msg("skipping malformed custom pattern")
			continue
		}
		candidates = append(candidates, p)
	}

	for _, p := range candidates {
		if opts.PatternExcluded(p.Name) || !opts.TypeAllowed(p.Type) {
			continue
		}
		p.Confidence = clamp01(p.Confidence * mult)
		if p.Confidence < e.minConf {
			continue
		}
		e.patterns = append(e.patterns, p)
	}
	// Descending confidence so the hasSecrets fast path tries the most
	// certain formats first.
	sort.SliceStable(e.patterns, func(i, j int) bool {
		return e.patterns[i].Confidence > e.patterns[j].Confidence
	})
	return e
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the lazily-built process-wide engine with default
// options. Construction is idempotent and the value is never mutated, so
// sharing it across goroutines needs no further coordination.
func Default() *Engine {
	defaultOnce.Do(func() { defaultEngine = New(types.DetectionOptions{}) })
	return defaultEngine
}

func confidenceMultiplier(s types.Sensitivity) float64 {
	switch s {
	case types.SensStrict:
		return 1.05
	case types.SensPermissive:
		return 0.95
	default:
		return 1.0
	}
}

func clamp01(f float64) float64 {
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// Scan runs the full pipeline and never fails: empty or enormous inputs
// degrade to "no secrets found".
func (e *Engine) Scan(content string) types.ScanResult {
	res := types.ScanResult{Secrets: []types.Detection{}}
	if content == "" {
		return res
	}
	res.RedactedContent = content

	m := e.preprocessed(content)
	raw := e.matchPatterns(m.Cleaned)
	if !e.opts.DisableEntropy {
		raw = append(raw, e.scanEntropy(m.Cleaned)...)
	}
	if !e.opts.DisableBase64 {
		raw = append(raw, e.scanBase64(m.Cleaned)...)
	}

	kept := raw[:0]
	for _, d := range raw {
		d.Start, d.End = m.Span(d.Start, d.End)
		if d.Start < 0 || d.Start >= d.End || d.End > len(content) {
			continue
		}
		if d.Confidence < e.minConf || !e.opts.TypeAllowed(d.Type) {
			continue
		}
		if falsePositive(content, d) {
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) == 0 {
		return res
	}

	resolved := resolveOverlaps(kept)
	for i := range resolved {
		resolved[i].Context = buildContext(content, resolved[i])
		resolved[i].Fingerprint = fingerprint(resolved[i])
	}
	res.Secrets = resolved
	res.HasSecrets = true
	res.SecretCount = len(resolved)
	res.RedactedContent = redact.Content(content, resolved, types.RedactionOptions{})
	log.Debug().Int("secrets", res.SecretCount).Msg("scan complete")
	return res
}

// HasSecrets short-circuits on the first qualifying pattern hit, trying
// patterns in descending confidence order. Entropy runs only as a cheap
// fallback pre-check; the Base64 decoder and overlap resolver never run.
func (e *Engine) HasSecrets(content string) bool {
	if content == "" {
		return false
	}
	m := e.preprocessed(content)
	lower := strings.ToLower(m.Cleaned)
	for _, p := range e.patterns {
		if !keywordHit(lower, p.Keywords) {
			continue
		}
		for _, hit := range matchOne(p, m.Cleaned, "") {
			hit.Start, hit.End = m.Span(hit.Start, hit.End)
			if !falsePositive(content, hit) {
				return true
			}
		}
	}
	if e.opts.DisableEntropy || !e.opts.TypeAllowed(types.TypeGenericSecret) {
		return false
	}
	return quickEntropy(m.Cleaned, e.entropyThresh)
}

// Summary aggregates detections into type counts, safe to log since it
// carries no values.
func (e *Engine) Summary(content string) map[types.SecretType]int {
	out := make(map[types.SecretType]int)
	for _, d := range e.Scan(content).Secrets {
		out[d.Type]++
	}
	return out
}

// Redact scans and replaces every detection span with a marker.
func (e *Engine) Redact(content string, opts types.RedactionOptions) string {
	if content == "" {
		return content
	}
	return redact.Content(content, e.Scan(content).Secrets, opts)
}

func (e *Engine) preprocessed(content string) *preprocess.Mapping {
	if e.opts.DisablePreprocessing {
		return preprocess.Identity(content)
	}
	return preprocess.Clean(content)
}

// fingerprint gives a detection a stable identity across scans so callers
// can baseline known findings. The raw value feeds the hash but never
// appears in the output.
func fingerprint(d types.Detection) string {
	h := xxhash.New()
	_, _ = h.WriteString(string(d.Type))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(d.Pattern)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(d.Value)
	return fmt.Sprintf("%016x", h.Sum64())
}
