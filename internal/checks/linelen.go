package checks

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"stylint/internal/diag"
)

// LineLength flags physical lines whose rendered width exceeds the
// configured threshold. Width is display width: tabs expand to the
// configured stop, wide runes count double. A literal measurement, so
// confidence is maximal.
type LineLength struct{}

func (LineLength) Name() string { return "line_length" }

func (LineLength) Check(ctx *Context, r diag.Reporter) {
	limit := ctx.Cfg.LineLength
	for i := range ctx.File.Lines {
		line := &ctx.File.Lines[i]
		width := renderedWidth(line.Raw, ctx.Cfg.TabWidth)
		if width > limit {
			r.Report(diag.CatWhitespaceLineLength, line.Num, diag.ConfidenceMax,
				fmt.Sprintf("line is %d columns, limit is %d", width, limit))
		}
	}
}

// renderedWidth measures a raw line as a terminal renders it: tabs advance
// to the next stop, wide runes count double.
func renderedWidth(raw string, tabWidth int) int {
	width := 0
	for _, r := range raw {
		if r == '\t' {
			width += tabWidth - width%tabWidth
		} else {
			width += runewidth.RuneWidth(r)
		}
	}
	return width
}
