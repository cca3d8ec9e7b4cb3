package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylint/internal/diag"
)

// catsCmd prints every category the checkers can emit, for building
// --filter rules.
var catsCmd = &cobra.Command{
	Use:   "categories",
	Short: "List every finding category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, cat := range diag.AllCategories {
			fmt.Fprintln(cmd.OutOrStdout(), cat)
		}
		return nil
	},
}
