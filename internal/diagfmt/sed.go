package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"stylint/internal/diag"
)

// The sed styles emit one command per finding that tags the offending line
// with a FIXME comment, so a script can apply or grep them. gsed is the
// same grammar invoking GNU sed, for hosts where plain sed is BSD sed.

func renderSed(w io.Writer, format Format, items []diag.Diagnostic) error {
	cmd := "sed"
	if format == FormatGSed {
		cmd = "gsed"
	}

	for _, d := range items {
		line := d.Line
		if line == 0 {
			// Whole-file findings tag line 1 so they remain addressable.
			line = 1
		}
		tag := sedEscape(fmt.Sprintf("// FIXME(%s): %s [%d]", d.Category, d.Message, d.Confidence))
		if _, err := fmt.Fprintf(w, "%s -i '%ds|$|  %s|' %s\n", cmd, line, tag, d.Path); err != nil {
			return err
		}
	}
	return nil
}

// sedEscape makes a message safe inside a single-quoted s|…|…| command.
func sedEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "&", "\\&")
	s = strings.ReplaceAll(s, "'", "'\\''")
	return s
}
