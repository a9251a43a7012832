package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloakscan/cloakscan/internal/redact"
	"github.com/cloakscan/cloakscan/internal/types"
	"github.com/cloakscan/cloakscan/pkg/core"
)

var flagFixDryRun bool

var fixCmd = &cobra.Command{
	Use:   "fix <file>...",
	Short: "Redact secrets in files in place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, ro := buildOptions()
		eng := core.NewEngine(opts)
		scan := func(content string) []types.Detection {
			return eng.Scan(content).Secrets
		}
		for _, path := range args {
			var changed bool
			var err error
			if flagFixDryRun {
				changed, err = redact.WouldChange(path, scan, ro)
			} else {
				changed, err = redact.Apply(path, scan, ro)
			}
			if err != nil {
				return err
			}
			switch {
			case changed && flagFixDryRun:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: would redact\n", path)
			case changed:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: redacted\n", path)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: clean\n", path)
			}
		}
		return nil
	},
}

func init() {
	fixCmd.Flags().BoolVar(&flagFixDryRun, "dry-run", false, "report files that would change without writing")
	rootCmd.AddCommand(fixCmd)
}
