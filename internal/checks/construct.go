package checks

import (
	"fmt"
	"regexp"
	"strings"

	"stylint/internal/diag"
)

// Constructs flags risky or banned language constructs: C-style casts,
// goto inside functions, using-directives in headers and malformed TODO
// comments.
type Constructs struct{}

func (Constructs) Name() string { return "constructs" }

var (
	reCStyleCast = regexp.MustCompile(`\(\s*(?:const\s+)?(?:unsigned\s+|signed\s+)?` +
		`(?:int|char|short|long|float|double|bool|size_t|u?int(?:8|16|32|64)_t)` +
		`\s*\*?\s*\)\s*[\w(]`)
	reGoto           = regexp.MustCompile(`\bgoto\s+[A-Za-z_]\w*\s*;`)
	reUsingNamespace = regexp.MustCompile(`\busing\s+namespace\s+[\w:]+\s*;`)
	reTodo           = regexp.MustCompile(`\bTODO\b`)
	reTodoWellFormed = regexp.MustCompile(`\bTODO\([^)]+\):?\s`)
)

func (Constructs) Check(ctx *Context, r diag.Reporter) {
	for i := range ctx.File.Lines {
		line := &ctx.File.Lines[i]

		// TODO format is checked against the raw line since comments are
		// blanked in the cleansed text.
		if loc := reTodo.FindStringIndex(line.Raw); loc != nil {
			if !reTodoWellFormed.MatchString(line.Raw) {
				r.Report(diag.CatReadabilityTodo, line.Num, 2,
					`missing username in TODO, it should look like "// TODO(my_name): ..."`)
			}
		}

		if line.InComment || isBlank(line.Text) {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line.Text), "#") {
			continue
		}

		if reCStyleCast.MatchString(line.Text) {
			r.Report(diag.CatReadabilityCasting, line.Num, 4,
				"C-style cast found, use static_cast or reinterpret_cast instead")
		}

		if reGoto.MatchString(line.Text) && ctx.Trace.InFunction(line.Num) {
			r.Report(diag.CatReadabilityGoto, line.Num, 4, "avoid goto")
		}

		if ctx.IsHeader() && reUsingNamespace.MatchString(line.Text) {
			r.Report(diag.CatBuildNamespaces, line.Num, diag.ConfidenceMax,
				fmt.Sprintf("do not use namespace using-directives in headers: %q",
					strings.TrimSpace(line.Text)))
		}
	}
}
