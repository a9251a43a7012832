// Package config loads optional YAML configuration for the CLI and for
// embedders that want file-driven detection options. Fields are pointers
// so an absent key is distinguishable from an explicit zero.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cloakscan/cloakscan/internal/types"
)

// FileConfig is the on-disk YAML configuration shape.
type FileConfig struct {
	MinConfidence *float64 `yaml:"min_confidence"`
	Sensitivity   *string  `yaml:"sensitivity"`
	Types         []string `yaml:"types"`
	Exclude       []string `yaml:"exclude_patterns"`
	Entropy       *bool    `yaml:"entropy"`
	Base64        *bool    `yaml:"base64"`
	Preprocess    *bool    `yaml:"preprocess"`

	// Redaction
	Format      *string `yaml:"format"`
	IncludeType *bool   `yaml:"include_type"`
	ShowPartial *bool   `yaml:"show_partial"`
	PartialLen  *int    `yaml:"partial_length"`

	CustomPatterns []types.PatternSpec `yaml:"custom_patterns"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given directory. It
// supports .cloakscan.yml/.yaml and cloakscan.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	for _, name := range []string{".cloakscan.yml", ".cloakscan.yaml", "cloakscan.yml", "cloakscan.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, errors.New("no local config")
}

// DetectionOptions converts the file shape into engine options. Absent
// keys keep engine defaults.
func (fc FileConfig) DetectionOptions() types.DetectionOptions {
	var opts types.DetectionOptions
	if fc.MinConfidence != nil {
		opts.MinConfidence = *fc.MinConfidence
	}
	if fc.Sensitivity != nil {
		opts.Sensitivity = types.Sensitivity(*fc.Sensitivity)
	}
	for _, t := range fc.Types {
		opts.Types = append(opts.Types, types.SecretType(t))
	}
	opts.ExcludePatterns = append(opts.ExcludePatterns, fc.Exclude...)
	if fc.Entropy != nil {
		opts.DisableEntropy = !*fc.Entropy
	}
	if fc.Base64 != nil {
		opts.DisableBase64 = !*fc.Base64
	}
	if fc.Preprocess != nil {
		opts.DisablePreprocessing = !*fc.Preprocess
	}
	opts.CustomPatterns = append(opts.CustomPatterns, fc.CustomPatterns...)
	return opts
}

// RedactionOptions converts the redaction keys; absent keys keep the
// bracket-with-type defaults.
func (fc FileConfig) RedactionOptions() types.RedactionOptions {
	var opts types.RedactionOptions
	if fc.Format != nil {
		opts.Format = types.RedactionFormat(*fc.Format)
	}
	if fc.IncludeType != nil {
		opts.NoTypeLabel = !*fc.IncludeType
	}
	if fc.ShowPartial != nil {
		opts.ShowPartial = *fc.ShowPartial
	}
	if fc.PartialLen != nil {
		opts.PartialLength = *fc.PartialLen
	}
	return opts
}
