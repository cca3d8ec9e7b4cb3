package checks

import (
	"strings"

	"stylint/internal/diag"
	"stylint/internal/nesting"
)

// Braces enforces attachment-style brace placement: an opening brace ends
// the line of its construct, else lands on the closing brace's line. The
// current scope kind varies the rules: initializer-list braces inside an
// enum body are data, not blocks, and stay exempt.
type Braces struct{}

func (Braces) Name() string { return "braces" }

func (Braces) Check(ctx *Context, r diag.Reporter) {
	for i := range ctx.File.Lines {
		line := &ctx.File.Lines[i]
		if line.InComment {
			continue
		}
		trim := strings.TrimSpace(line.Text)

		if trim == "{" {
			// Enum and aggregate initializer bodies keep their braces
			// wherever the author put them.
			if ctx.Trace.Innermost(line.Num, nesting.KindEnum) == nil {
				r.Report(diag.CatWhitespaceBraces, line.Num, 4,
					"{ should be at the end of the previous line")
			}
		}

		if strings.HasPrefix(trim, "else") && i > 0 {
			prev := strings.TrimSpace(ctx.File.Lines[i-1].Text)
			if strings.HasSuffix(prev, "}") {
				r.Report(diag.CatWhitespaceNewline, line.Num, 4,
					"an else should appear on the same line as the preceding }")
			}
		}

		// "} else" needs a space on both sides of the keyword.
		if strings.Contains(trim, "}else") || strings.Contains(trim, "else{") {
			r.Report(diag.CatWhitespaceBraces, line.Num, 5,
				"missing space around else")
		}

		// A closing brace with trailing code on the same line, other than
		// else/while(do-loop)/semicolon forms, is cramped.
		if idx := strings.Index(trim, "} "); idx == 0 {
			rest := strings.TrimSpace(trim[1:])
			switch {
			case rest == "":
			case strings.HasPrefix(rest, "else"):
			case strings.HasPrefix(rest, "while"):
			case strings.HasPrefix(rest, ";"):
			case strings.HasPrefix(rest, ")"):
			case strings.HasPrefix(rest, ","):
			default:
				r.Report(diag.CatWhitespaceBraces, line.Num, 3,
					"code after } should start on a new line")
			}
		}
	}
}
