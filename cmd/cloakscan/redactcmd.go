package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloakscan/cloakscan/pkg/core"
)

var redactCmd = &cobra.Command{
	Use:   "redact [file]",
	Short: "Print a redacted copy of a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, _, err := readInput(args)
		if err != nil {
			return err
		}
		opts, ro := buildOptions()
		res := core.Scan(content, &opts)
		fmt.Fprint(cmd.OutOrStdout(), core.Redact(content, res.Secrets, &ro))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(redactCmd)
}
