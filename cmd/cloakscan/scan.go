package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloakscan/cloakscan/internal/audit"
	"github.com/cloakscan/cloakscan/internal/report"
	"github.com/cloakscan/cloakscan/pkg/core"
)

var flagAuditLog string

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Scan a file or stdin for secrets",
	Long:  "Scan reads a file (or stdin) and reports every detection with its type, pattern, confidence and masked value. Exits 1 when secrets are found.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, source, err := readInput(args)
		if err != nil {
			return err
		}
		opts, _ := buildOptions()

		start := time.Now()
		res := core.Scan(content, &opts)
		elapsed := time.Since(start)

		if flagAuditLog != "" {
			rec := audit.NewRecord(source, content, res, elapsed)
			if err := audit.New(flagAuditLog).Append(rec); err != nil {
				log.Warn().Err(err).Msg("audit log append failed")
			}
		}

		if flagJSON {
			if err := report.PrintJSON(cmd.OutOrStdout(), res.Secrets); err != nil {
				return err
			}
		} else {
			report.PrintTable(cmd.OutOrStdout(), res.Secrets, report.PrintOptions{
				Source:   source,
				Duration: elapsed,
			})
		}
		if res.HasSecrets {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&flagAuditLog, "audit-log", "", "append a JSONL scan record to this file")
	rootCmd.AddCommand(scanCmd)
}
