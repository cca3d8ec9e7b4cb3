// Package cleanse neutralizes comments and literal contents in C/C++
// source so structural checks are not confused by arbitrary text. It works
// per physical line with a small lexer state carried across lines, the same
// way a counting FSM walks a file: no grammar, just enough state to know
// whether a byte is code.
package cleanse

import (
	"fmt"
	"strings"

	"stylint/internal/diag"
	"stylint/internal/source"
)

// placeholder replaces every byte of a string or character literal, one for
// one, so column positions and line widths survive cleansing.
const placeholder = 'x'

// Line is one physical line after cleansing.
type Line struct {
	// Num is the 1-based physical line number.
	Num uint32
	// Raw is the original text without the trailing newline.
	Raw string
	// Text is the cleansed text. Comments become spaces, literal contents
	// become placeholder bytes; the byte length equals len(Raw).
	Text string
	// Joined marks a continuation line: its text was appended to an earlier
	// logical line and Anchor points at that line's number.
	Joined bool
	// Anchor is the first physical line of the logical statement this line
	// belongs to. Equals Num for non-continuation lines.
	Anchor uint32
	// InComment means the line started inside a block comment or raw string.
	InComment bool
	// CommentCol is the byte column (0-based) where a trailing comment
	// starts, or -1 when the line has none.
	CommentCol int
}

// LogicalLine is one or more physical lines joined into a single statement.
// Diagnostics anchor at Num, the first physical line.
type LogicalLine struct {
	Num   uint32
	Count uint32 // physical lines consumed
	Text  string // cleansed texts joined with a single space
}

// File is the cleansed view of one source file plus the per-line
// suppression metadata scanned from raw text.
type File struct {
	Path    string
	Kind    source.Kind
	Lines   []Line
	Logical []LogicalLine

	markers map[uint32]marker
}

// lexState tracks what region of the input the scanner is inside.
type lexState uint8

const (
	stNormal lexState = iota
	stBlockComment
	stString
	stChar
	stRawString
)

type scanner struct {
	state        lexState
	rawDelim     string // delimiter of the current raw string, without parens
	openLine     uint32 // line where the current multi-line region opened
	stringEscape bool   // a backslash at EOL keeps a string open
}

// Run cleanses every physical line of the file, joins continuation lines
// into logical statements, scans suppression markers, and reports
// malformed-input findings (unterminated block comment or raw string)
// through r. It never fails: malformed regions degrade to blanked text.
func Run(f *source.File, r diag.Reporter) *File {
	rawLines := f.Lines()
	out := &File{
		Path:    f.Path,
		Kind:    f.Kind,
		Lines:   make([]Line, 0, len(rawLines)),
		markers: scanMarkers(f.Path, rawLines),
	}

	sc := &scanner{state: stNormal}
	for i, raw := range rawLines {
		num := uint32(i + 1) // #nosec G115 -- line counts fit uint32
		text, commentCol, startedIn := sc.cleanseLine(num, raw)
		out.Lines = append(out.Lines, Line{
			Num:        num,
			Raw:        raw,
			Text:       text,
			Anchor:     num,
			InComment:  startedIn,
			CommentCol: commentCol,
		})
	}

	switch sc.state {
	case stBlockComment:
		r.Report(diag.CatBuildComment, sc.openLine, diag.ConfidenceMax,
			"unterminated block comment; file analyzed up to the opening /*")
	case stRawString:
		r.Report(diag.CatBuildString, sc.openLine, diag.ConfidenceMax,
			fmt.Sprintf("unterminated raw string; expected )%s\" before end of file", sc.rawDelim))
	case stString, stChar:
		// A backslash-continued literal left open at EOF.
		r.Report(diag.CatBuildString, sc.openLine, diag.ConfidenceMax,
			"unterminated string or character literal at end of file")
	case stNormal:
	}

	out.joinLogical()
	return out
}

// cleanseLine scans one physical line, mutating the carried state. It
// returns the cleansed text, the column of a trailing comment (-1 if none),
// and whether the line began inside a multi-line region.
func (sc *scanner) cleanseLine(num uint32, raw string) (text string, commentCol int, startedIn bool) {
	startedIn = sc.state == stBlockComment || sc.state == stRawString ||
		((sc.state == stString || sc.state == stChar) && sc.stringEscape)
	if (sc.state == stString || sc.state == stChar) && !sc.stringEscape {
		// A plain literal cannot cross a physical line; degrade by closing
		// it. The checker layer flags the anomaly separately when it
		// matters, flooding every following line helps nobody.
		sc.state = stNormal
	}
	sc.stringEscape = false
	commentCol = -1

	b := []byte(raw)
	buf := make([]byte, len(b))
	i := 0
	for i < len(b) {
		ch := b[i]
		var next byte
		if i+1 < len(b) {
			next = b[i+1]
		}

		switch sc.state {
		case stBlockComment:
			buf[i] = ' '
			if ch == '*' && next == '/' {
				buf[i+1] = ' '
				i += 2
				sc.state = stNormal
				continue
			}
			i++

		case stRawString:
			if ch == ')' && hasRawTerminator(b[i:], sc.rawDelim) {
				// Keep )delim" visible so paren math stays balanced.
				n := 1 + len(sc.rawDelim) + 1
				copy(buf[i:], b[i:i+n])
				i += n
				sc.state = stNormal
				continue
			}
			buf[i] = placeholder
			i++

		case stString, stChar:
			quote := byte('"')
			if sc.state == stChar {
				quote = '\''
			}
			if ch == '\\' {
				if i+1 == len(b) {
					// Line continuation inside a literal.
					buf[i] = placeholder
					sc.stringEscape = true
					i++
					continue
				}
				buf[i] = placeholder
				buf[i+1] = placeholder
				i += 2
				continue
			}
			if ch == quote {
				buf[i] = quote
				sc.state = stNormal
				i++
				continue
			}
			buf[i] = placeholder
			i++

		default: // stNormal
			switch {
			case ch == '/' && next == '/':
				// Rest of the line is a comment; blank it, keep its column.
				commentCol = i
				for j := i; j < len(b); j++ {
					buf[j] = ' '
				}
				i = len(b)

			case ch == '/' && next == '*':
				if commentCol < 0 {
					commentCol = i
				}
				buf[i], buf[i+1] = ' ', ' '
				sc.state = stBlockComment
				sc.openLine = num
				i += 2

			case ch == 'R' && next == '"' && !identBefore(b, i):
				delim, ok := rawDelimiter(b[i+2:])
				if !ok {
					// Not a raw string after all; treat as a plain one.
					buf[i] = 'R'
					buf[i+1] = '"'
					sc.state = stString
					sc.openLine = num
					i += 2
					continue
				}
				n := 2 + len(delim) + 1 // R" delim (
				copy(buf[i:], b[i:i+n])
				sc.state = stRawString
				sc.rawDelim = delim
				sc.openLine = num
				i += n

			case ch == '"':
				buf[i] = '"'
				sc.state = stString
				sc.openLine = num
				i++

			case ch == '\'' && isCharLiteralStart(b, i):
				buf[i] = '\''
				sc.state = stChar
				sc.openLine = num
				i++

			default:
				buf[i] = ch
				i++
			}
		}
	}

	return string(buf), commentCol, startedIn
}

// identBefore reports whether position i is preceded by an identifier byte,
// which would make a leading R part of a larger name rather than a raw
// string prefix.
func identBefore(b []byte, i int) bool {
	if i == 0 {
		return false
	}
	c := b[i-1]
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// rawDelimiter extracts the delimiter between R" and ( in a raw string
// opener. Returns false when no ( appears within the 16-byte limit the
// language grants delimiters.
func rawDelimiter(rest []byte) (string, bool) {
	for j := 0; j < len(rest) && j <= 16; j++ {
		switch rest[j] {
		case '(':
			return string(rest[:j]), true
		case ')', '\\', ' ', '\t':
			return "", false
		}
	}
	return "", false
}

// hasRawTerminator reports whether b starts with )delim".
func hasRawTerminator(b []byte, delim string) bool {
	n := 1 + len(delim) + 1
	if len(b) < n {
		return false
	}
	if string(b[1:1+len(delim)]) != delim {
		return false
	}
	return b[n-1] == '"'
}

// isCharLiteralStart distinguishes a character literal from a digit
// separator (1'000'000) by looking at the preceding byte.
func isCharLiteralStart(b []byte, i int) bool {
	if i == 0 {
		return true
	}
	c := b[i-1]
	if c >= '0' && c <= '9' {
		return false
	}
	return true
}

// joinLogical groups physical lines into logical statements. A line joins
// the current statement when the previous one ended with a backslash
// continuation or left parentheses open. The anchor stays at the first
// physical line.
func (f *File) joinLogical() {
	f.Logical = make([]LogicalLine, 0, len(f.Lines))

	i := 0
	for i < len(f.Lines) {
		start := i
		text := strings.TrimSuffix(f.Lines[i].Text, "\\")
		depth := parenDelta(f.Lines[i].Text)

		for i+1 < len(f.Lines) && (endsWithBackslash(f.Lines[i].Text) || depth > 0) {
			i++
			cont := &f.Lines[i]
			cont.Joined = true
			cont.Anchor = f.Lines[start].Num
			text += " " + strings.TrimSpace(strings.TrimSuffix(cont.Text, "\\"))
			depth += parenDelta(cont.Text)
		}

		f.Logical = append(f.Logical, LogicalLine{
			Num:   f.Lines[start].Num,
			Count: uint32(i - start + 1), // #nosec G115 -- line counts fit uint32
			Text:  text,
		})
		i++
	}
}

func endsWithBackslash(s string) bool {
	return strings.HasSuffix(s, "\\")
}

// parenDelta counts net open parentheses on a cleansed line. A stray ')'
// makes it negative; joinLogical only joins while its running sum stays
// positive, so a negative sum just stops the join.
func parenDelta(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			n++
		case ')':
			n--
		}
	}
	return n
}

// NumLines returns the number of physical line entries, which always equals
// the file's physical line count.
func (f *File) NumLines() int {
	return len(f.Lines)
}
