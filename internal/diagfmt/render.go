package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"stylint/internal/diag"
)

// Render writes all surviving diagnostics of a run in the given format,
// followed by the tally summary where the style allows one. Diagnostics
// must already be in report order: files in input order, lines ascending
// within each file.
func Render(w io.Writer, format Format, items []diag.Diagnostic, tally *diag.Tally, opts Options) error {
	switch format {
	case FormatJUnit:
		return renderJUnit(w, items, tally)
	case FormatSarif:
		return renderSarif(w, items)
	case FormatSed, FormatGSed:
		return renderSed(w, format, items)
	default:
		return renderText(w, format, items, tally, opts)
	}
}

var (
	pathColor     = color.New(color.FgCyan)
	categoryColor = color.New(color.FgYellow)
	strongColor   = color.New(color.FgRed, color.Bold)
)

func renderText(w io.Writer, format Format, items []diag.Diagnostic, tally *diag.Tally, opts Options) error {
	color.NoColor = !opts.Color

	for _, d := range items {
		var head string
		switch format {
		case FormatVS7:
			head = fmt.Sprintf("%s(%d): warning:", pathColor.Sprint(d.Path), d.Line)
		case FormatEclipse:
			head = fmt.Sprintf("%s:%d: warning:", pathColor.Sprint(d.Path), d.Line)
		default:
			head = fmt.Sprintf("%s:%d: ", pathColor.Sprint(d.Path), d.Line)
		}
		cat := categoryColor.Sprintf("[%s]", d.Category)
		if _, err := fmt.Fprintf(w, "%s %s  %s [%d]\n", head, d.Message, cat, d.Confidence); err != nil {
			return err
		}
	}

	if opts.Summary && tally != nil {
		if err := renderSummary(w, tally); err != nil {
			return err
		}
	}
	return nil
}

func renderSummary(w io.Writer, tally *diag.Tally) error {
	for _, cc := range tally.Categories() {
		if _, err := fmt.Fprintf(w, "Category '%s' errors found: %d\n", cc.Category, cc.Count); err != nil {
			return err
		}
	}
	total := "Total errors found: %d\n"
	if tally.Total() > 0 {
		total = strongColor.Sprint("Total errors found:") + " %d\n"
	}
	_, err := fmt.Fprintf(w, total, tally.Total())
	return err
}
