package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloakscan/cloakscan/internal/audit"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history <audit-log>",
	Short: "List recorded scans from an audit log",
	Long:  "History reads a JSONL audit log written by scan --audit-log and prints one line per recorded scan, newest first. Records never contain secret values.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := audit.New(args[0]).History()
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recorded scans")
			return nil
		}
		if flagHistoryLimit > 0 && len(recs) > flagHistoryLimit {
			recs = recs[:flagHistoryLimit]
		}
		for _, r := range recs {
			source := r.Source
			if source == "" {
				source = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-28s %-20s secrets=%-3d %s\n",
				r.Timestamp.Format(time.RFC3339), r.ScanID, source, r.SecretCount, r.Duration)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 0, "show at most this many records (0 = all)")
	rootCmd.AddCommand(historyCmd)
}
