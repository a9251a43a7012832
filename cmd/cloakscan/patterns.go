package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cloakscan/cloakscan/internal/patterns"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the built-in detection patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		all := append([]patterns.Pattern(nil), patterns.Builtin()...)
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
		for _, p := range all {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-14s %.2f  %s\n",
				p.Name, p.Type, p.Confidence, p.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
