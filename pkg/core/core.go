package core

import (
	"github.com/cloakscan/cloakscan/internal/detect"
	"github.com/cloakscan/cloakscan/internal/redact"
	"github.com/cloakscan/cloakscan/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable
// path; they can become decoupled structs later without breaking callers.
type (
	SecretType       = types.SecretType
	Sensitivity      = types.Sensitivity
	Detection        = types.Detection
	ScanResult       = types.ScanResult
	PatternSpec      = types.PatternSpec
	DetectionOptions = types.DetectionOptions
	RedactionFormat  = types.RedactionFormat
	RedactionOptions = types.RedactionOptions
	Engine           = detect.Engine
)

const (
	TypeAPIKey        = types.TypeAPIKey
	TypeAWSKey        = types.TypeAWSKey
	TypeGitHubToken   = types.TypeGitHubToken
	TypePrivateKey    = types.TypePrivateKey
	TypePassword      = types.TypePassword
	TypeJWT           = types.TypeJWT
	TypeDatabaseURL   = types.TypeDatabaseURL
	TypeOAuthToken    = types.TypeOAuthToken
	TypeGenericSecret = types.TypeGenericSecret

	SensStrict     = types.SensStrict
	SensNormal     = types.SensNormal
	SensPermissive = types.SensPermissive

	FormatBracket  = types.FormatBracket
	FormatAsterisk = types.FormatAsterisk
	FormatHash     = types.FormatHash
)

// NewEngine builds an immutable engine from options. The engine is safe
// for concurrent use. Malformed custom patterns are logged and skipped.
func NewEngine(opts DetectionOptions) *Engine { return detect.New(opts) }

// Default returns the shared engine with default options, built once on
// first use.
func Default() *Engine { return detect.Default() }

// engineFor returns the shared default engine for nil options and a
// transient engine otherwise.
func engineFor(opts *DetectionOptions) *Engine {
	if opts == nil {
		return detect.Default()
	}
	return detect.New(*opts)
}

// Scan finds secrets in content. It never fails; empty input yields an
// empty result.
func Scan(content string, opts *DetectionOptions) ScanResult {
	return engineFor(opts).Scan(content)
}

// HasSecrets is the short-circuiting variant of Scan for callers that
// only need a yes/no answer.
func HasSecrets(content string, opts *DetectionOptions) bool {
	return engineFor(opts).HasSecrets(content)
}

// Redact returns content with every detection span replaced by a marker.
// When detections is nil a full scan runs first.
func Redact(content string, detections []Detection, opts *RedactionOptions) string {
	var ro RedactionOptions
	if opts != nil {
		ro = *opts
	}
	if detections == nil {
		return detect.Default().Redact(content, ro)
	}
	return redact.Content(content, detections, ro)
}

// RedactValue redacts a single already-extracted value.
func RedactValue(value string, t SecretType, opts *RedactionOptions) string {
	var ro RedactionOptions
	if opts != nil {
		ro = *opts
	}
	return redact.Value(value, t, ro)
}

// Summary returns type counts for content, safe for logging.
func Summary(content string, opts *DetectionOptions) map[SecretType]int {
	return engineFor(opts).Summary(content)
}
