package patterns

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/cloakscan/cloakscan/internal/types"
)

// Pattern is a compiled registry entry. When the regex carries a capture
// group, group 1 is the secret span; otherwise the whole match is.
type Pattern struct {
	types.PatternSpec
	Re *regexp.Regexp
}

// HasGroup reports whether the secret span comes from capture group 1.
func (p Pattern) HasGroup() bool { return p.Re.NumSubexp() > 0 }

// Go's regexp is RE2-based and runs in time linear in the input, so none
// of these can be made pathological. Repetition is bounded where a token
// has a known length; the PEM body uses an unbounded class that cannot
// cross its own END marker (the class excludes '-').
//
// Assignment-style patterns accept an optional quote/backtick around key
// and value and up to a few spaces around : or =.
var builtin = []types.PatternSpec{
	{Name: "aws_access_key", Type: types.TypeAPIKey, Confidence: 0.95, Decodable: true,
		Regex:       `\bA(?:KIA|SIA)[0-9A-Z]{16}\b`,
		Keywords:    []string{"akia", "asia"},
		Description: "AWS access key ID"},
	{Name: "aws_secret_key", Type: types.TypeAWSKey, Confidence: 0.9,
		Regex:       `(?i)\baws_?(?:secret_?)?(?:access_?)?key["'` + "`" + `]?\s{0,4}[:=]\s{0,4}["'` + "`" + `]?([A-Za-z0-9/+=]{40})\b`,
		Keywords:    []string{"aws"},
		Description: "AWS secret access key assignment"},
	{Name: "github_pat", Type: types.TypeGitHubToken, Confidence: 0.95, Decodable: true,
		Regex:       `\bgh[pousr]_[A-Za-z0-9]{36,251}\b`,
		Keywords:    []string{"ghp_", "gho_", "ghu_", "ghs_", "ghr_"},
		Description: "GitHub token (ghp_/gho_/ghu_/ghs_/ghr_)"},
	{Name: "github_fine_grained_pat", Type: types.TypeGitHubToken, Confidence: 0.98, Decodable: true,
		Regex:       `\bgithub_pat_[A-Za-z0-9]{22}_[A-Za-z0-9]{59}\b`,
		Keywords:    []string{"github_pat_"},
		Description: "GitHub fine-grained personal access token"},
	{Name: "private_key_block", Type: types.TypePrivateKey, Confidence: 0.99, Decodable: true,
		Regex:       `-----BEGIN [A-Z ]{0,24}PRIVATE KEY(?: BLOCK)?-----[A-Za-z0-9+/=\s]*-----END [A-Z ]{0,24}PRIVATE KEY(?: BLOCK)?-----`,
		Keywords:    []string{"private key"},
		Description: "PEM private key block"},
	{Name: "jwt", Type: types.TypeJWT, Confidence: 0.9, Decodable: true,
		Regex:       `\beyJ[A-Za-z0-9_-]{8,512}\.[A-Za-z0-9_-]{8,512}\.[A-Za-z0-9_-]{8,512}\b`,
		Keywords:    []string{"eyj"},
		Description: "JSON Web Token"},
	{Name: "database_url", Type: types.TypeDatabaseURL, Confidence: 0.9, Decodable: true,
		Regex:       `(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|rediss?|amqps?|mssql|sqlserver)://[^:/?#\s]{1,64}:[^@\s]{1,128}@[A-Za-z0-9._:/?&#%=-]{1,256}`,
		Keywords:    []string{"://"},
		Description: "Database URL with embedded credentials"},
	{Name: "password_assignment", Type: types.TypePassword, Confidence: 0.7,
		Regex:       `(?i)\b(?:password|passwd|pwd)["'` + "`" + `]?\s{0,4}[:=]\s{0,4}["'` + "`" + `]?([^\s"'` + "`" + `]{6,128})`,
		Keywords:    []string{"password", "passwd", "pwd"},
		Description: "Password assignment"},
	{Name: "api_key_assignment", Type: types.TypeAPIKey, Confidence: 0.75,
		Regex:       `(?i)\b(?:api[_-]?key|apikey|api[_-]?secret|client[_-]?secret|secret[_-]?key)["'` + "`" + `]?\s{0,4}[:=]\s{0,4}["'` + "`" + `]?([A-Za-z0-9_\-/+=.]{16,128})`,
		Keywords:    []string{"key", "secret"},
		Description: "Generic API key assignment"},
	{Name: "auth_token_assignment", Type: types.TypeOAuthToken, Confidence: 0.75,
		Regex:       `(?i)\b(?:access[_-]?token|auth[_-]?token|oauth[_-]?token|refresh[_-]?token|session[_-]?token)["'` + "`" + `]?\s{0,4}[:=]\s{0,4}["'` + "`" + `]?([A-Za-z0-9_\-/+=.]{16,256})`,
		Keywords:    []string{"token"},
		Description: "OAuth/auth token assignment"},
	{Name: "bearer_token", Type: types.TypeOAuthToken, Confidence: 0.8,
		Regex:       `(?i)\bbearer\s{1,4}([A-Za-z0-9_\-./+=]{20,512})`,
		Keywords:    []string{"bearer"},
		Description: "Bearer token in an Authorization header"},
	{Name: "slack_token", Type: types.TypeOAuthToken, Confidence: 0.95, Decodable: true,
		Regex:       `\bxox[baprse]-[A-Za-z0-9-]{10,250}\b`,
		Keywords:    []string{"xox"},
		Description: "Slack token"},
	{Name: "anthropic_api_key", Type: types.TypeAPIKey, Confidence: 0.97, Decodable: true,
		Regex:       `\bsk-ant-(?:api|admin)[0-9]{0,2}-[A-Za-z0-9_-]{24,120}\b`,
		Keywords:    []string{"sk-ant-"},
		Description: "Anthropic API key"},
	{Name: "openai_api_key", Type: types.TypeAPIKey, Confidence: 0.9, Decodable: true,
		Regex:       `\bsk-(?:proj-)?[A-Za-z0-9]{20,120}T3BlbkFJ[A-Za-z0-9]{20,120}\b|\bsk-[A-Za-z0-9]{48}\b`,
		Keywords:    []string{"sk-"},
		Description: "OpenAI API key"},
	{Name: "google_api_key", Type: types.TypeAPIKey, Confidence: 0.95, Decodable: true,
		Regex:       `\bAIza[0-9A-Za-z_-]{35}\b`,
		Keywords:    []string{"aiza"},
		Description: "Google API key"},
	{Name: "npm_token", Type: types.TypeAPIKey, Confidence: 0.95, Decodable: true,
		Regex:       `\bnpm_[A-Za-z0-9]{36}\b`,
		Keywords:    []string{"npm_"},
		Description: "npm access token"},
	{Name: "sendgrid_api_key", Type: types.TypeAPIKey, Confidence: 0.97, Decodable: true,
		Regex:       `\bSG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}\b`,
		Keywords:    []string{"sg."},
		Description: "SendGrid API key"},
	{Name: "mailgun_api_key", Type: types.TypeAPIKey, Confidence: 0.9, Decodable: true,
		Regex:       `\bkey-[a-f0-9]{32}\b`,
		Keywords:    []string{"key-"},
		Description: "Mailgun API key"},
	{Name: "stripe_secret_key", Type: types.TypeAPIKey, Confidence: 0.97, Decodable: true,
		Regex:       `\b[sr]k_live_[A-Za-z0-9]{24,99}\b`,
		Keywords:    []string{"k_live_"},
		Description: "Stripe live secret key"},
	{Name: "gitlab_pat", Type: types.TypeAPIKey, Confidence: 0.95, Decodable: true,
		Regex:       `\bglpat-[A-Za-z0-9_-]{20,64}\b`,
		Keywords:    []string{"glpat-"},
		Description: "GitLab personal access token"},
	{Name: "twilio_account_sid", Type: types.TypeAPIKey, Confidence: 0.8,
		Regex:       `\bAC[a-f0-9]{32}\b`,
		Keywords:    []string{"ac"},
		Description: "Twilio account SID"},
	{Name: "assigned_secret", Type: types.TypeGenericSecret, Confidence: 0.5,
		Regex:       `(?i)\b(?:secret|token|credential|passphrase)["'` + "`" + `]?\s{0,4}[:=]\s{0,4}["'` + "`" + `]([^"'` + "`" + `\s]{8,256})["'` + "`" + `]`,
		Keywords:    []string{"secret", "token", "credential", "passphrase"},
		Description: "Quoted value assigned to a secret-ish name"},
}

var compiled []Pattern

func init() {
	compiled = make([]Pattern, 0, len(builtin))
	for _, spec := range builtin {
		p, err := Compile(spec)
		if err != nil {
			// Built-in regexes are covered by tests; a failure here is
			// a programming error.
			panic(fmt.Sprintf("patterns: builtin %q: %v", spec.Name, err))
		}
		compiled = append(compiled, p)
	}
}

// Compile turns a spec into a runnable pattern. A confidence outside (0,1]
// becomes the custom-pattern default of 0.8. The regex must be valid RE2.
func Compile(spec types.PatternSpec) (Pattern, error) {
	if spec.Name == "" {
		return Pattern{}, fmt.Errorf("pattern has no name")
	}
	if spec.Type == "" {
		spec.Type = types.TypeGenericSecret
	}
	if spec.Confidence <= 0 || spec.Confidence > 1 {
		spec.Confidence = 0.8
	}
	re, err := regexp.Compile(spec.Regex)
	if err != nil {
		return Pattern{}, fmt.Errorf("compile %q: %w", spec.Name, err)
	}
	return Pattern{PatternSpec: spec, Re: re}, nil
}

// Builtin returns the compiled built-in registry. Callers must not mutate
// the returned slice.
func Builtin() []Pattern { return compiled }

// Names returns all built-in pattern names, sorted.
func Names() []string {
	out := make([]string, 0, len(compiled))
	for _, p := range compiled {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out
}

// ByType returns the built-in patterns reporting the given type.
func ByType(t types.SecretType) []Pattern {
	var out []Pattern
	for _, p := range compiled {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}
