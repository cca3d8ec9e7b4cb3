// Package checks holds the open registry of independent style checks.
// Every checker sees the same read-only file context and reports through a
// diag.Reporter; no checker depends on another's findings, so their
// relative order never matters.
package checks

import (
	"regexp"
	"strings"

	"stylint/internal/cleanse"
	"stylint/internal/config"
	"stylint/internal/diag"
	"stylint/internal/nesting"
	"stylint/internal/source"
)

// Include is one include directive found in the file, in source order.
type Include struct {
	Line uint32
	// Path is the include target without quotes or angle brackets.
	Path string
	// Angled is true for <...> includes, false for "..." includes.
	Angled bool
}

// Context is the read-only view a checker works from.
type Context struct {
	File  *cleanse.File
	Trace *nesting.Trace
	Cfg   *config.Config
	// Includes lists the file's include directives in order.
	Includes []Include
}

var reInclude = regexp.MustCompile(`^\s*#\s*include\s*(?:"([^"]+)"|<([^>]+)>)`)

// NewContext derives the file-level aggregates checkers share.
func NewContext(cf *cleanse.File, trace *nesting.Trace, cfg *config.Config) *Context {
	ctx := &Context{File: cf, Trace: trace, Cfg: cfg}
	for i := range cf.Lines {
		line := &cf.Lines[i]
		if line.InComment {
			continue
		}
		if m := reInclude.FindStringSubmatch(line.Raw); m != nil {
			inc := Include{Line: line.Num}
			if m[1] != "" {
				inc.Path = m[1]
			} else {
				inc.Path = m[2]
				inc.Angled = true
			}
			ctx.Includes = append(ctx.Includes, inc)
		}
	}
	return ctx
}

// IsHeader reports whether the file is a header by extension hint.
func (ctx *Context) IsHeader() bool {
	return ctx.File.Kind == source.KindHeader
}

// Checker is one independent style check.
type Checker interface {
	// Name identifies the checker in logs and tests.
	Name() string
	// Check scans the context and reports findings. It must tolerate
	// malformed input: partial constructs yield best-effort findings, not
	// panics.
	Check(ctx *Context, r diag.Reporter)
}

// All returns the full registry, one instance per checker.
func All() []Checker {
	return []Checker{
		LineLength{},
		Whitespace{},
		Braces{},
		IncludeGuard{},
		IncludeOrder{},
		Copyright{},
		Naming{},
		Constructs{},
		LoopConditions{},
	}
}

// RunAll executes every registered checker against the context.
func RunAll(ctx *Context, r diag.Reporter) {
	for _, c := range All() {
		c.Check(ctx, r)
	}
}

// firstCodeChar returns the index of the first non-space byte of a
// cleansed line, or -1 for blank lines.
func firstCodeChar(text string) int {
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return i
		}
	}
	return -1
}

// isBlank reports whether a cleansed line holds no code.
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
