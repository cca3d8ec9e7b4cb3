package checks

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"stylint/internal/diag"
)

// IncludeGuard verifies that a header's first preprocessor construct is an
// include guard whose name derives from the file path: path components
// uppercased, separators and dots turned into underscores, a trailing
// underscore appended. src/net/conn.h under root src gives NET_CONN_H_.
type IncludeGuard struct{}

func (IncludeGuard) Name() string { return "include_guard" }

var (
	reIfndef     = regexp.MustCompile(`^\s*#\s*ifndef\s+([A-Za-z_]\w*)`)
	reDefine     = regexp.MustCompile(`^\s*#\s*define\s+([A-Za-z_]\w*)`)
	rePragmaOnce = regexp.MustCompile(`^\s*#\s*pragma\s+once\b`)
)

func (IncludeGuard) Check(ctx *Context, r diag.Reporter) {
	if !ctx.IsHeader() {
		return
	}

	expected := GuardName(ctx.File.Path, ctx.Cfg.Root)

	var guardLine *uint32
	var guardName string
	for i := range ctx.File.Lines {
		line := &ctx.File.Lines[i]
		if line.InComment || isBlank(line.Text) {
			continue
		}
		if rePragmaOnce.MatchString(line.Text) {
			// pragma once counts as a guard; naming does not apply.
			return
		}
		if m := reIfndef.FindStringSubmatch(line.Text); m != nil {
			num := line.Num
			guardLine = &num
			guardName = m[1]
		}
		break
	}

	if guardLine == nil {
		r.Report(diag.CatBuildHeaderGuard, 1, diag.ConfidenceMax,
			fmt.Sprintf("no #ifndef header guard found, suggested name: %s", expected))
		return
	}
	if guardName != expected {
		r.Report(diag.CatBuildHeaderGuard, *guardLine, diag.ConfidenceMax,
			fmt.Sprintf("#ifndef header guard has wrong name, should be: %s", expected))
		return
	}
	// The #define must follow with the same name.
	for i := range ctx.File.Lines {
		line := &ctx.File.Lines[i]
		if line.Num <= *guardLine || line.InComment || isBlank(line.Text) {
			continue
		}
		if m := reDefine.FindStringSubmatch(line.Text); m == nil || m[1] != expected {
			r.Report(diag.CatBuildHeaderGuard, line.Num, diag.ConfidenceMax,
				fmt.Sprintf("#ifndef guard not followed by #define %s", expected))
		}
		return
	}
}

// GuardName derives the expected guard macro from a path. root, when not
// empty, is stripped from the front first.
func GuardName(path, root string) string {
	p := filepath.ToSlash(path)
	if root != "" {
		clean := strings.TrimSuffix(filepath.ToSlash(root), "/") + "/"
		p = strings.TrimPrefix(p, clean)
	}
	var b strings.Builder
	for _, c := range strings.ToUpper(p) {
		switch {
		case c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}
	b.WriteByte('_')
	return b.String()
}

// IncludeOrder checks include grouping: own header first, then C system
// headers, C++ standard headers, and finally project headers. An include
// whose group ranks before its predecessor's is out of order.
type IncludeOrder struct{}

func (IncludeOrder) Name() string { return "include_order" }

// Include group ranks.
const (
	groupOwnHeader = iota
	groupCSystem
	groupCppSystem
	groupProject
)

var groupNames = map[int]string{
	groupOwnHeader: "own header",
	groupCSystem:   "C system header",
	groupCppSystem: "C++ system header",
	groupProject:   "project header",
}

func (IncludeOrder) Check(ctx *Context, r diag.Reporter) {
	seen := make(map[string]uint32, len(ctx.Includes))
	prevGroup := -1

	for _, inc := range ctx.Includes {
		if firstLine, dup := seen[inc.Path]; dup {
			r.Report(diag.CatBuildInclude, inc.Line, 4,
				fmt.Sprintf("%q already included at line %d", inc.Path, firstLine))
			continue
		}
		seen[inc.Path] = inc.Line

		group := classifyInclude(ctx.File.Path, inc)
		if group < prevGroup {
			r.Report(diag.CatBuildIncludeOrd, inc.Line, 4,
				fmt.Sprintf("%s %q should come before the preceding %s",
					groupNames[group], inc.Path, groupNames[prevGroup]))
			continue
		}
		prevGroup = group
	}
}

func classifyInclude(filePath string, inc Include) int {
	if !inc.Angled {
		base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		incBase := strings.TrimSuffix(filepath.Base(inc.Path), filepath.Ext(inc.Path))
		if base == incBase {
			return groupOwnHeader
		}
		return groupProject
	}
	if strings.Contains(inc.Path, ".h") {
		return groupCSystem
	}
	return groupCppSystem
}

// Copyright wants a copyright notice in the first ten lines of every file.
type Copyright struct{}

func (Copyright) Name() string { return "copyright" }

func (Copyright) Check(ctx *Context, r diag.Reporter) {
	limit := min(10, len(ctx.File.Lines))
	for i := 0; i < limit; i++ {
		if strings.Contains(strings.ToLower(ctx.File.Lines[i].Raw), "copyright") {
			return
		}
	}
	r.Report(diag.CatLegalCopyright, 1, diag.ConfidenceMax,
		"no copyright message found in the first 10 lines")
}
