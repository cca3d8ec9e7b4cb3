// Package diagfmt renders surviving diagnostics in the selectable output
// styles. Every style has a fixed field grammar and byte-deterministic
// output: same diagnostics in, same bytes out.
package diagfmt

import (
	"fmt"
	"strings"
)

// Format selects the output style.
type Format uint8

const (
	// FormatEmacs is the default human-readable style:
	// path:line:  message  [category] [confidence]
	FormatEmacs Format = iota
	// FormatEclipse is the editor-integration style:
	// path:line: warning: message  [category] [confidence]
	FormatEclipse
	// FormatVS7 is the IDE-integration style:
	// path(line): warning: message  [category] [confidence]
	FormatVS7
	// FormatJUnit is the machine-parseable XML style for CI ingestion.
	FormatJUnit
	// FormatSarif is SARIF 2.1.0 JSON, also for CI ingestion.
	FormatSarif
	// FormatSed emits sed commands that tag offending lines, for
	// programmatic line editing.
	FormatSed
	// FormatGSed is FormatSed invoking gsed (GNU sed on BSD/macOS hosts).
	FormatGSed
)

var formatNames = map[Format]string{
	FormatEmacs:   "emacs",
	FormatEclipse: "eclipse",
	FormatVS7:     "vs7",
	FormatJUnit:   "junit",
	FormatSarif:   "sarif",
	FormatSed:     "sed",
	FormatGSed:    "gsed",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "emacs"
}

// ParseFormat resolves a format selector. Unknown selectors are a
// configuration error, rejected before any file is processed.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "emacs", "default":
		return FormatEmacs, nil
	case "eclipse":
		return FormatEclipse, nil
	case "vs7", "msvs":
		return FormatVS7, nil
	case "junit":
		return FormatJUnit, nil
	case "sarif":
		return FormatSarif, nil
	case "sed":
		return FormatSed, nil
	case "gsed":
		return FormatGSed, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (expected emacs|eclipse|vs7|junit|sarif|sed|gsed)", s)
	}
}

// Options configures rendering.
type Options struct {
	// Color enables ANSI color on the text styles. Machine styles always
	// ignore it.
	Color bool
	// Summary appends per-category and total counts after the findings
	// (text styles only).
	Summary bool
}
