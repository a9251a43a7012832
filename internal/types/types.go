package types

// SecretType classifies what kind of credential a detection looks like.
type SecretType string

const (
	TypeAPIKey        SecretType = "api_key"
	TypeAWSKey        SecretType = "aws_key"
	TypeGitHubToken   SecretType = "github_token"
	TypePrivateKey    SecretType = "private_key"
	TypePassword      SecretType = "password"
	TypeJWT           SecretType = "jwt"
	TypeDatabaseURL   SecretType = "database_url"
	TypeOAuthToken    SecretType = "oauth_token"
	TypeGenericSecret SecretType = "generic_secret"
)

// AllSecretTypes lists every known type in a stable order.
func AllSecretTypes() []SecretType {
	return []SecretType{
		TypeAPIKey, TypeAWSKey, TypeGitHubToken, TypePrivateKey,
		TypePassword, TypeJWT, TypeDatabaseURL, TypeOAuthToken, TypeGenericSecret,
	}
}

// Sensitivity tunes confidence scaling and the entropy threshold.
// It never changes which patterns run.
type Sensitivity string

const (
	SensStrict     Sensitivity = "strict"
	SensNormal     Sensitivity = "normal"
	SensPermissive Sensitivity = "permissive"
)

// Detection describes one credential-shaped substring found in scanned
// content. Start and End are byte offsets into the original, unmodified
// input (half-open: [Start, End)), even when the match was produced
// against preprocessed text. Value holds the raw matched substring; it is
// kept in memory only and is excluded from JSON output so it cannot leak
// through serialized findings.
type Detection struct {
	Type        SecretType `json:"type"`
	Pattern     string     `json:"pattern"`
	Start       int        `json:"start"`
	End         int        `json:"end"`
	Confidence  float64    `json:"confidence"`
	Value       string     `json:"-"`
	Description string     `json:"description,omitempty"`
	Context     string     `json:"context,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
}

// Len returns the span length in bytes.
func (d Detection) Len() int { return d.End - d.Start }

// Overlaps reports whether two half-open spans intersect.
func (d Detection) Overlaps(o Detection) bool {
	return d.Start < o.End && o.Start < d.End
}

// ScanResult is the full outcome of one scan. Secrets are sorted by Start
// and non-overlapping after resolution.
type ScanResult struct {
	HasSecrets      bool        `json:"has_secrets"`
	Secrets         []Detection `json:"secrets"`
	RedactedContent string      `json:"redacted_content"`
	SecretCount     int         `json:"secret_count"`
}

// PatternSpec declares a detector as data: a named RE2 regex, the type it
// reports, and a base confidence in (0, 1]. If the regex contains a capture
// group, group 1 is reported as the secret span; otherwise the whole match
// is. Decodable marks formats worth re-matching inside decoded Base64
// payloads (prefix-keyed tokens survive encoding; assignment-context
// patterns do not).
type PatternSpec struct {
	Name        string     `json:"name" yaml:"name"`
	Type        SecretType `json:"type" yaml:"type"`
	Regex       string     `json:"regex" yaml:"regex"`
	Confidence  float64    `json:"confidence" yaml:"confidence"`
	Decodable   bool       `json:"decodable,omitempty" yaml:"decodable,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	// Keywords is a lowercase prefilter: when non-empty, the regex only
	// runs if at least one keyword occurs in the (lowercased) content.
	// Every keyword must be implied by the regex, so skipping can never
	// lose a match.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// DetectionOptions controls one engine's behavior. The zero value gives
// the defaults: min confidence 0.5, all types, entropy + base64 +
// preprocessing on, normal sensitivity. Booleans are inverted (DisableX)
// so the zero value is the default-on configuration.
type DetectionOptions struct {
	// MinConfidence drops detections scoring below it. 0 means the
	// default of 0.5.
	MinConfidence float64
	// Types, when non-empty, is an allow-list of secret types to report.
	Types []SecretType
	// CustomPatterns are appended to the built-in registry. A pattern
	// with Confidence 0 gets 0.8. Malformed regexes are logged and
	// skipped, never fatal.
	CustomPatterns []PatternSpec
	// ExcludePatterns disables built-in patterns by name.
	ExcludePatterns []string

	DisableEntropy       bool
	DisableBase64        bool
	DisablePreprocessing bool

	// Sensitivity defaults to SensNormal when empty.
	Sensitivity Sensitivity
}

// EffectiveMinConfidence resolves the 0-means-default rule.
func (o DetectionOptions) EffectiveMinConfidence() float64 {
	if o.MinConfidence <= 0 {
		return 0.5
	}
	return o.MinConfidence
}

// EffectiveSensitivity resolves the empty-means-normal rule.
func (o DetectionOptions) EffectiveSensitivity() Sensitivity {
	if o.Sensitivity == "" {
		return SensNormal
	}
	return o.Sensitivity
}

// TypeAllowed applies the Types allow-list.
func (o DetectionOptions) TypeAllowed(t SecretType) bool {
	if len(o.Types) == 0 {
		return true
	}
	for _, a := range o.Types {
		if a == t {
			return true
		}
	}
	return false
}

// PatternExcluded reports whether a pattern name is disabled.
func (o DetectionOptions) PatternExcluded(name string) bool {
	for _, e := range o.ExcludePatterns {
		if e == name {
			return true
		}
	}
	return false
}

// RedactionFormat selects the replacement marker style.
type RedactionFormat string

const (
	FormatBracket  RedactionFormat = "bracket"
	FormatAsterisk RedactionFormat = "asterisk"
	FormatHash     RedactionFormat = "hash"
)

// RedactionOptions controls marker rendering. The zero value means
// bracket format with the type label and no partial reveal.
type RedactionOptions struct {
	// Format defaults to FormatBracket when empty.
	Format RedactionFormat
	// NoTypeLabel forces the generic REDACTED label instead of the type.
	NoTypeLabel bool
	// ShowPartial keeps the first and last PartialLength characters of
	// the value visible when the value is long enough (> 2x PartialLength).
	ShowPartial bool
	// PartialLength defaults to 4 when 0.
	PartialLength int
}

// EffectiveFormat resolves the empty-means-bracket rule.
func (o RedactionOptions) EffectiveFormat() RedactionFormat {
	if o.Format == "" {
		return FormatBracket
	}
	return o.Format
}

// EffectivePartialLength resolves the 0-means-4 rule.
func (o RedactionOptions) EffectivePartialLength() int {
	if o.PartialLength <= 0 {
		return 4
	}
	return o.PartialLength
}
