package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylint/internal/config"
	"stylint/internal/diag"
	"stylint/internal/diagfmt"
	"stylint/internal/driver"
	"stylint/internal/filter"
	"stylint/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Check C/C++ sources for style findings",
	Long: `Check runs every registered rule over the given files. Directories are
expanded using the configured extensions. The command exits non-zero when
any finding meets the fail threshold.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("filter", "", "comma-separated category rules, each +prefix or -prefix")
	checkCmd.Flags().Int("linelength", 0, "maximum rendered line width (0=configured default)")
	checkCmd.Flags().Int("tabwidth", 0, "tab stop width for line measurement (0=configured default)")
	checkCmd.Flags().String("counting", "", "summary granularity (total|toplevel|detailed)")
	checkCmd.Flags().String("output", "", "output format (emacs|eclipse|vs7|junit|sarif|sed|gsed)")
	checkCmd.Flags().Int("confidence", 0, "minimum confidence to report, 1..5")
	checkCmd.Flags().Int("fail-threshold", 0, "minimum confidence that fails the run, 1..5")
	checkCmd.Flags().String("root", "", "directory header-guard names derive from")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().StringSlice("exclude", nil, "glob patterns for files and directories to skip")
	checkCmd.Flags().Bool("recursive", true, "descend into subdirectories")
	checkCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	checkCmd.Flags().Bool("no-config", false, "ignore any stylint.toml")
	checkCmd.Flags().Bool("disk-cache", false, "cache per-file results on disk")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	timer := observ.NewTimer()

	exclude, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return err
	}
	recursive, err := cmd.Flags().GetBool("recursive")
	if err != nil {
		return err
	}

	walkPhase := timer.Begin("walk")
	paths, err := expandArgs(args, cfg, exclude, recursive)
	if err != nil {
		return err
	}
	timer.End(walkPhase, fmt.Sprintf("%d files", len(paths)))
	if len(paths) == 0 {
		return fmt.Errorf("no lintable files under %v", args)
	}

	opts := driver.Options{Cfg: cfg}
	if useCache, _ := cmd.Flags().GetBool("disk-cache"); useCache {
		cache, err := driver.OpenDiskCache("stylint")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := parseTUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	lintPhase := timer.Begin("lint")
	var results []driver.FileResult
	if mode.enabled() && !quiet {
		results, err = runLintWithUI(cmd.Context(), "stylint", paths, opts)
	} else {
		_, results, err = driver.LintBatch(cmd.Context(), paths, opts)
	}
	if err != nil {
		return err
	}
	timer.End(lintPhase, "")

	reportPhase := timer.Begin("report")
	tally, failed := driver.Summarize(results, cfg.Counting, cfg.FailThreshold)

	items := make([]diag.Diagnostic, 0, tally.Total())
	for _, res := range results {
		if res.Bag != nil {
			items = append(items, res.Bag.Items()...)
		}
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	renderOpts := diagfmt.Options{
		Color:   colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)),
		Summary: !quiet,
	}
	if err := diagfmt.Render(cmd.OutOrStdout(), cfg.Output, items, tally, renderOpts); err != nil {
		return fmt.Errorf("failed to render findings: %w", err)
	}
	timer.End(reportPhase, "")

	if showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings"); showTimings {
		fmt.Fprintln(cmd.ErrOrStderr(), timer.Summary())
		if err := driver.RenderTimings(cmd.ErrOrStderr(), results); err != nil {
			return err
		}
	}

	if failed {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("found %d findings", tally.Total())
	}
	return nil
}

// resolveConfig layers defaults, the nearest stylint.toml, and flags, in
// that order. A flag only overrides when the user actually set it.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if skip, _ := cmd.Flags().GetBool("no-config"); !skip {
		if path, ok, err := config.FindManifest("."); err != nil {
			return nil, err
		} else if ok {
			if err := config.ApplyManifest(path, &cfg); err != nil {
				return nil, err
			}
		}
	}

	flags := cmd.Flags()
	if flags.Changed("filter") {
		spec, _ := flags.GetString("filter")
		rules, err := filter.ParseRules(spec)
		if err != nil {
			return nil, err
		}
		cfg.Filters = rules
	}
	if flags.Changed("linelength") {
		cfg.LineLength, _ = flags.GetInt("linelength")
	}
	if flags.Changed("tabwidth") {
		cfg.TabWidth, _ = flags.GetInt("tabwidth")
	}
	if flags.Changed("counting") {
		spec, _ := flags.GetString("counting")
		mode, err := config.ParseCounting(spec)
		if err != nil {
			return nil, err
		}
		cfg.Counting = mode
	}
	if flags.Changed("output") {
		spec, _ := flags.GetString("output")
		format, err := diagfmt.ParseFormat(spec)
		if err != nil {
			return nil, err
		}
		cfg.Output = format
	}
	if flags.Changed("confidence") {
		v, _ := flags.GetInt("confidence")
		cfg.MinConfidence = diag.Confidence(v)
	}
	if flags.Changed("fail-threshold") {
		v, _ := flags.GetInt("fail-threshold")
		cfg.FailThreshold = diag.Confidence(v)
	}
	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		cfg.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	}

	return &cfg, nil
}

// expandArgs turns the positional arguments into a flat file list. Files
// named explicitly are always linted; directories go through the extension
// and exclusion filters.
func expandArgs(args []string, cfg *config.Config, exclude []string, recursive bool) ([]string, error) {
	var paths []string
	seen := make(map[string]struct{})

	add := func(p string) {
		clean := filepath.Clean(p)
		if _, dup := seen[clean]; dup {
			return
		}
		seen[clean] = struct{}{}
		paths = append(paths, clean)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := driver.ListFiles(arg, cfg, exclude, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return paths, nil
}
