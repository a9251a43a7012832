package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloakscan/cloakscan/internal/config"
	"github.com/cloakscan/cloakscan/internal/types"
)

var (
	flagConfig        string
	flagMinConfidence float64
	flagSensitivity   string
	flagTypes         []string
	flagExclude       []string
	flagNoEntropy     bool
	flagNoBase64      bool
	flagNoPreprocess  bool
	flagFormat        string
	flagNoTypeLabel   bool
	flagShowPartial   bool
	flagPartialLen    int
	flagJSON          bool
	flagVerbose       bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the cloakscan CLI.
var rootCmd = &cobra.Command{
	Use:           "cloakscan",
	Short:         "Find and redact secrets in text",
	Long:          "Cloakscan scans text for credential-shaped substrings (API keys, tokens, private keys, connection strings) and produces a redacted copy.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()
	},
}

// Execute runs the cloakscan CLI. It should be called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to a cloakscan.yml config file")
	pf.Float64Var(&flagMinConfidence, "min-confidence", 0, "only report detections with confidence >= value (0 = default 0.5)")
	pf.StringVar(&flagSensitivity, "sensitivity", "", "strict|normal|permissive")
	pf.StringSliceVar(&flagTypes, "types", nil, "allow-list of secret types")
	pf.StringSliceVar(&flagExclude, "exclude", nil, "pattern names to disable")
	pf.BoolVar(&flagNoEntropy, "no-entropy", false, "disable entropy detection")
	pf.BoolVar(&flagNoBase64, "no-base64", false, "disable base64 decoding")
	pf.BoolVar(&flagNoPreprocess, "no-preprocess", false, "disable unicode/evasion normalization")
	pf.StringVar(&flagFormat, "format", "", "redaction marker format: bracket|asterisk|hash")
	pf.BoolVar(&flagNoTypeLabel, "no-type-label", false, "use a generic REDACTED label")
	pf.BoolVar(&flagShowPartial, "show-partial", false, "reveal a short prefix/suffix of each value")
	pf.IntVar(&flagPartialLen, "partial-length", 0, "characters to reveal on each side (default 4)")
	pf.BoolVar(&flagJSON, "json", false, "emit JSON")
	pf.BoolVar(&flagVerbose, "verbose", false, "debug logging")
}

// buildOptions layers CLI flags over an optional config file.
func buildOptions() (types.DetectionOptions, types.RedactionOptions) {
	var fc config.FileConfig
	if flagConfig != "" {
		loaded, err := config.LoadFile(flagConfig)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring unreadable config")
		} else {
			fc = loaded
		}
	} else if loaded, err := config.LoadLocal("."); err == nil {
		fc = loaded
	}

	opts := fc.DetectionOptions()
	ro := fc.RedactionOptions()

	if flagMinConfidence > 0 {
		opts.MinConfidence = flagMinConfidence
	}
	if flagSensitivity != "" {
		opts.Sensitivity = types.Sensitivity(flagSensitivity)
	}
	for _, t := range flagTypes {
		opts.Types = append(opts.Types, types.SecretType(strings.TrimSpace(t)))
	}
	opts.ExcludePatterns = append(opts.ExcludePatterns, flagExclude...)
	if flagNoEntropy {
		opts.DisableEntropy = true
	}
	if flagNoBase64 {
		opts.DisableBase64 = true
	}
	if flagNoPreprocess {
		opts.DisablePreprocessing = true
	}

	if flagFormat != "" {
		ro.Format = types.RedactionFormat(flagFormat)
	}
	if flagNoTypeLabel {
		ro.NoTypeLabel = true
	}
	if flagShowPartial {
		ro.ShowPartial = true
	}
	if flagPartialLen > 0 {
		ro.PartialLength = flagPartialLen
	}
	return opts, ro
}

// readInput returns the named file's content, or stdin for "-" or no
// argument.
func readInput(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "stdin", nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), args[0], nil
}
