// Package config holds the resolved configuration value handed to the
// core. It is pure data: the CLI layer builds it from flags and an optional
// stylint.toml, validates it once, and the core never reads configuration
// from anywhere else.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"stylint/internal/diag"
	"stylint/internal/diagfmt"
	"stylint/internal/filter"
	"stylint/internal/source"
)

// Config is the resolved configuration for one run. Treat as immutable
// once validated; it is shared across concurrently linted files.
type Config struct {
	// LineLength is the maximum rendered line width.
	LineLength int
	// TabWidth is how many columns a tab expands to when measuring width.
	TabWidth int
	// IndentSize is the expected indentation step.
	IndentSize int
	// Filters are the configured category rules, applied after the
	// built-in defaults.
	Filters []filter.Rule
	// MinConfidence is the lowest confidence worth reporting.
	MinConfidence diag.Confidence
	// FailThreshold is the confidence at which a finding flips the run's
	// "had reportable error" signal.
	FailThreshold diag.Confidence
	// Counting selects tally bucketing for the summary.
	Counting diag.CountingMode
	// Output selects the report format.
	Output diagfmt.Format
	// HeaderExtensions and SourceExtensions drive file-kind hinting only;
	// traversal filtering happens in the CLI layer.
	HeaderExtensions []string
	SourceExtensions []string
	// Root is the directory header-guard names derive from. Empty means
	// the file's own directory chain is used as-is.
	Root string
	// MaxDiagnostics bounds the per-file bag.
	MaxDiagnostics int
	// Jobs is the worker limit for batch runs; 0 means GOMAXPROCS.
	Jobs int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LineLength:       80,
		TabWidth:         8,
		IndentSize:       2,
		MinConfidence:    1,
		FailThreshold:    1,
		Counting:         diag.CountTotal,
		Output:           diagfmt.FormatEmacs,
		HeaderExtensions: []string{".h", ".hh", ".hpp", ".hxx", ".h++", ".cuh"},
		SourceExtensions: []string{".c", ".cc", ".cpp", ".cxx", ".c++", ".cu"},
		MaxDiagnostics:   1000,
	}
}

// ParseCounting resolves a counting-mode selector.
func ParseCounting(s string) (diag.CountingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "total":
		return diag.CountTotal, nil
	case "toplevel":
		return diag.CountTopLevel, nil
	case "detailed":
		return diag.CountDetailed, nil
	default:
		return 0, fmt.Errorf("unknown counting mode %q (expected total|toplevel|detailed)", s)
	}
}

// Validate fails fast on configuration the core cannot honor. It runs
// before any file is processed.
func (c *Config) Validate() error {
	if c.LineLength <= 0 {
		return fmt.Errorf("line length must be positive, got %d", c.LineLength)
	}
	if c.TabWidth <= 0 {
		return fmt.Errorf("tab width must be positive, got %d", c.TabWidth)
	}
	if !c.MinConfidence.Valid() {
		return fmt.Errorf("min confidence %d outside the 1..5 scale", c.MinConfidence)
	}
	if !c.FailThreshold.Valid() {
		return fmt.Errorf("fail threshold %d outside the 1..5 scale", c.FailThreshold)
	}
	if c.MaxDiagnostics <= 0 {
		return fmt.Errorf("max diagnostics must be positive, got %d", c.MaxDiagnostics)
	}
	if len(c.HeaderExtensions) == 0 && len(c.SourceExtensions) == 0 {
		return fmt.Errorf("no recognized file extensions configured")
	}
	for _, ext := range append(append([]string{}, c.HeaderExtensions...), c.SourceExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// KindFor returns the file-kind hint for a path, from the extension sets.
func (c *Config) KindFor(path string) source.Kind {
	ext := strings.ToLower(filepath.Ext(path))
	for _, h := range c.HeaderExtensions {
		if ext == h {
			return source.KindHeader
		}
	}
	for _, s := range c.SourceExtensions {
		if ext == s {
			return source.KindSource
		}
	}
	return source.KindOther
}

// NewFilter builds the resolved filter value for this configuration.
func (c *Config) NewFilter() *filter.Filter {
	return filter.New(c.Filters, c.MinConfidence)
}
