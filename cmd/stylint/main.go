package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stylint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stylint",
	Short: "Heuristic style checker for C and C++ sources",
	Long:  `stylint scans C/C++ sources line by line and reports style findings without building a full parse tree`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(catsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress the summary footer")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 1000, "maximum number of findings to keep per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
