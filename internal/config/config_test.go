package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloakscan/cloakscan/internal/types"
)

const sampleYAML = `
min_confidence: 0.6
sensitivity: strict
types:
  - api_key
  - jwt
exclude_patterns:
  - twilio_account_sid
entropy: false
base64: true
format: asterisk
include_type: false
show_partial: true
partial_length: 6
custom_patterns:
  - name: acme_token
    type: api_key
    regex: '\bacme_[a-z0-9]{24}\b'
    confidence: 0.85
`

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "cloakscan.yml", sampleYAML)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.MinConfidence)
	assert.Equal(t, 0.6, *cfg.MinConfidence)
	require.NotNil(t, cfg.Sensitivity)
	assert.Equal(t, "strict", *cfg.Sensitivity)
	assert.Equal(t, []string{"api_key", "jwt"}, cfg.Types)
	assert.Equal(t, []string{"twilio_account_sid"}, cfg.Exclude)
	require.Len(t, cfg.CustomPatterns, 1)
	assert.Equal(t, "acme_token", cfg.CustomPatterns[0].Name)
	assert.Equal(t, 0.85, cfg.CustomPatterns[0].Confidence)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.yml", "min_confidence: [not-a-number\n")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadLocalPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "cloakscan.yml", "min_confidence: 0.3\n")
	writeConfig(t, dir, ".cloakscan.yml", "min_confidence: 0.9\n")

	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.MinConfidence)
	assert.Equal(t, 0.9, *cfg.MinConfidence, "dotfile should win over plain name")
}

func TestLoadLocalNone(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.Error(t, err)
}

func TestDetectionOptionsConversion(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "cloakscan.yml", sampleYAML)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	opts := cfg.DetectionOptions()
	assert.Equal(t, 0.6, opts.MinConfidence)
	assert.Equal(t, types.SensStrict, opts.Sensitivity)
	assert.Equal(t, []types.SecretType{types.TypeAPIKey, types.TypeJWT}, opts.Types)
	assert.Equal(t, []string{"twilio_account_sid"}, opts.ExcludePatterns)
	assert.True(t, opts.DisableEntropy, "entropy: false disables the scanner")
	assert.False(t, opts.DisableBase64, "base64: true keeps the decoder on")
	assert.False(t, opts.DisablePreprocessing, "absent key keeps the default")
	require.Len(t, opts.CustomPatterns, 1)
}

func TestDetectionOptionsZeroConfig(t *testing.T) {
	opts := FileConfig{}.DetectionOptions()
	assert.Equal(t, types.DetectionOptions{}, opts)
}

func TestRedactionOptionsConversion(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "cloakscan.yml", sampleYAML)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	opts := cfg.RedactionOptions()
	assert.Equal(t, types.FormatAsterisk, opts.Format)
	assert.True(t, opts.NoTypeLabel, "include_type: false maps to NoTypeLabel")
	assert.True(t, opts.ShowPartial)
	assert.Equal(t, 6, opts.PartialLength)
}
