package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"stylint/internal/diag"
	"stylint/internal/diagfmt"
	"stylint/internal/filter"
)

// clampConfidence maps out-of-range manifest values to 0, which Validate
// rejects before any file is processed.
func clampConfidence(v int) diag.Confidence {
	if v < 0 || v > int(diag.ConfidenceMax) {
		return 0
	}
	return diag.Confidence(v)
}

// ManifestName is the per-project configuration file.
const ManifestName = "stylint.toml"

type manifestFile struct {
	Style struct {
		LineLength    int    `toml:"linelength"`
		TabWidth      int    `toml:"tabwidth"`
		IndentSize    int    `toml:"indent"`
		Filter        string `toml:"filter"`
		Confidence    int    `toml:"confidence"`
		FailThreshold int    `toml:"fail_threshold"`
		Counting      string `toml:"counting"`
		Output        string `toml:"output"`
		Root          string `toml:"root"`
	} `toml:"style"`
	Files struct {
		HeaderExtensions []string `toml:"header_extensions"`
		SourceExtensions []string `toml:"source_extensions"`
	} `toml:"files"`
}

// FindManifest walks up from startDir to locate stylint.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// ApplyManifest overlays settings from a stylint.toml onto cfg. Only keys
// present in the file override; everything else keeps its current value.
// Flag handling runs after this, so flags win over the manifest.
func ApplyManifest(path string, cfg *Config) error {
	var mf manifestFile
	meta, err := toml.DecodeFile(path, &mf)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("style", "linelength") {
		cfg.LineLength = mf.Style.LineLength
	}
	if meta.IsDefined("style", "tabwidth") {
		cfg.TabWidth = mf.Style.TabWidth
	}
	if meta.IsDefined("style", "indent") {
		cfg.IndentSize = mf.Style.IndentSize
	}
	if meta.IsDefined("style", "filter") {
		rules, err := filter.ParseRules(mf.Style.Filter)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg.Filters = rules
	}
	if meta.IsDefined("style", "confidence") {
		cfg.MinConfidence = clampConfidence(mf.Style.Confidence)
	}
	if meta.IsDefined("style", "fail_threshold") {
		cfg.FailThreshold = clampConfidence(mf.Style.FailThreshold)
	}
	if meta.IsDefined("style", "counting") {
		mode, err := ParseCounting(mf.Style.Counting)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg.Counting = mode
	}
	if meta.IsDefined("style", "output") {
		format, err := diagfmt.ParseFormat(mf.Style.Output)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg.Output = format
	}
	if meta.IsDefined("style", "root") {
		cfg.Root = strings.TrimSpace(mf.Style.Root)
	}
	if meta.IsDefined("files", "header_extensions") {
		cfg.HeaderExtensions = mf.Files.HeaderExtensions
	}
	if meta.IsDefined("files", "source_extensions") {
		cfg.SourceExtensions = mf.Files.SourceExtensions
	}
	return nil
}
