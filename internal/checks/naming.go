package checks

import (
	"fmt"
	"regexp"
	"strings"

	"stylint/internal/diag"
	"stylint/internal/nesting"
)

// Naming enforces identifier conventions: CamelCase types, CamelCase or
// snake_case functions, SCREAMING_SNAKE macros and kCamelCase constants.
// Variable checks stay at the lowest confidence, the heuristics cannot see
// through typedefs and macros.
type Naming struct{}

func (Naming) Name() string { return "naming" }

var (
	reCamelCase     = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	reScreamingCase = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	reConstName     = regexp.MustCompile(`^k[A-Z][a-zA-Z0-9]*$`)
	reSnakeCase     = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	reMacroDef = regexp.MustCompile(`^\s*#\s*define\s+([A-Za-z_]\w*)`)
	reConstDef = regexp.MustCompile(`\bconst(?:expr)?\s+\w[\w:<>,\s*&]*?\b([A-Za-z_]\w*)\s*[={]`)
	reVarDecl  = regexp.MustCompile(`^\s*(?:[A-Za-z_][\w:]*(?:<[^<>]*>)?[\s*&]+)([A-Za-z_]\w*)\s*[;=]`)
)

var declKeywords = map[string]bool{
	"return": true, "delete": true, "new": true, "goto": true,
	"break": true, "continue": true, "case": true, "using": true,
	"typedef": true, "else": true, "do": true,
}

func (Naming) Check(ctx *Context, r diag.Reporter) {
	checkedTypes := make(map[string]bool)

	for i := range ctx.File.Lines {
		line := &ctx.File.Lines[i]
		if line.InComment || line.Joined {
			continue
		}

		if m := reMacroDef.FindStringSubmatch(line.Text); m != nil {
			name := m[1]
			// Include guards end in an underscore and pass anyway.
			if !reScreamingCase.MatchString(name) {
				r.Report(diag.CatNamingMacros, line.Num, 3,
					fmt.Sprintf("macro %q should be SCREAMING_SNAKE_CASE", name))
			}
			continue
		}

		for _, fr := range ctx.Trace.At(line.Num) {
			switch fr.Kind {
			case nesting.KindClass, nesting.KindStruct, nesting.KindEnum, nesting.KindUnion:
				if fr.OpenLine != line.Num || fr.Name == "" || checkedTypes[fr.Name] {
					continue
				}
				checkedTypes[fr.Name] = true
				if !reCamelCase.MatchString(fr.Name) {
					r.Report(diag.CatNamingTypes, line.Num, 3,
						fmt.Sprintf("type %q should be CamelCase", fr.Name))
				}
			case nesting.KindFunction:
				if fr.OpenLine != line.Num || fr.Name == "" {
					continue
				}
				base := fr.Name
				if idx := strings.LastIndex(base, "::"); idx >= 0 {
					base = base[idx+2:]
				}
				base = strings.TrimPrefix(base, "~")
				if !reCamelCase.MatchString(base) && !reSnakeCase.MatchString(base) {
					r.Report(diag.CatNamingFunctions, line.Num, 2,
						fmt.Sprintf("function %q should be CamelCase or snake_case", fr.Name))
				}
			}
		}

		if m := reConstDef.FindStringSubmatch(line.Text); m != nil {
			name := m[1]
			if !reConstName.MatchString(name) && !reScreamingCase.MatchString(name) {
				r.Report(diag.CatNamingConstants, line.Num, 2,
					fmt.Sprintf("constant %q should be kCamelCase", name))
			}
			continue
		}

		if ctx.Trace.InFunction(line.Num) {
			if m := reVarDecl.FindStringSubmatch(line.Text); m != nil {
				name := m[1]
				if declKeywords[name] || strings.Contains(line.Text, "(") {
					continue
				}
				if !reSnakeCase.MatchString(name) {
					r.Report(diag.CatNamingVariables, line.Num, diag.ConfidenceMin,
						fmt.Sprintf("variable %q should be snake_case", name))
				}
			}
		}
	}
}
