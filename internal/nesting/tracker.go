package nesting

import (
	"regexp"
	"strings"

	"stylint/internal/cleanse"
	"stylint/internal/diag"
)

var (
	reAccess   = regexp.MustCompile(`^\s*(public|protected|private)\s*:`)
	reTemplate = regexp.MustCompile(`^\s*template\s*<`)
	// rePreprocIf matches the conditional openers; the captured tail names
	// the condition for the frame.
	rePreprocIf = regexp.MustCompile(`^#\s*(if|ifdef|ifndef)\b\s*(.*)$`)
	rePreprocEnd = regexp.MustCompile(`^#\s*endif\b`)
	// reFuncName finds the identifier directly before the first opening
	// paren: qualified names, destructors and operatorless methods only.
	reFuncName = regexp.MustCompile(`((?:[A-Za-z_]\w*::)*~?[A-Za-z_]\w*)\s*\(`)
)

// controlKeywords are identifiers that precede a paren without ever being a
// function name.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "return": true,
	"sizeof": true, "catch": true, "new": true, "delete": true, "throw": true,
	"alignof": true, "decltype": true, "noexcept": true, "static_assert": true,
}

// Tracker consumes cleansed lines in order and maintains the scope stack.
// Pure state machine: it performs no I/O and reports anomalies (a closing
// brace with nothing open) through the Reporter it was built with.
type Tracker struct {
	frames  []Frame
	pending *Frame
	perLine [][]Frame

	// sawTemplate marks a template<...> header waiting for its construct.
	sawTemplate bool
	// skipJoined skips macro-continuation lines of a preprocessor
	// directive: macro bodies routinely hold unbalanced braces.
	skipJoined bool
	// angleDepth is the template angle-bracket depth. Heuristic: see
	// updateAngle for the documented bias.
	angleDepth int

	reporter diag.Reporter
}

// NewTracker creates a tracker reporting anomalies through r.
func NewTracker(r diag.Reporter) *Tracker {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Tracker{reporter: r}
}

// Trace is the per-line record of the scope stack, captured after each
// line's transitions ran. Index 0 holds the stack in effect at line 1.
type Trace struct {
	perLine [][]Frame
}

// At returns the stack snapshot in effect at the given 1-based line.
func (tr *Trace) At(line uint32) []Frame {
	idx := int(line) - 1
	if idx < 0 || idx >= len(tr.perLine) {
		return nil
	}
	return tr.perLine[idx]
}

// Innermost returns the innermost frame of the given kinds at a line, or
// nil when none is open there.
func (tr *Trace) Innermost(line uint32, kinds ...Kind) *Frame {
	stack := tr.At(line)
	for i := len(stack) - 1; i >= 0; i-- {
		for _, k := range kinds {
			if stack[i].Kind == k {
				return &stack[i]
			}
		}
	}
	return nil
}

// InFunction reports whether the line sits inside a function body.
func (tr *Trace) InFunction(line uint32) bool {
	return tr.Innermost(line, KindFunction) != nil
}

// Run drives the tracker over a whole cleansed file and returns the
// per-line trace. The final stack stays inspectable via Stack.
func (t *Tracker) Run(cf *cleanse.File) *Trace {
	for i := range cf.Lines {
		t.Advance(cf.Lines[i])
	}
	return &Trace{perLine: t.perLine}
}

// Stack returns the current frames, outermost first. Read-only.
func (t *Tracker) Stack() []Frame {
	return t.frames
}

// Depth returns how many frames are open.
func (t *Tracker) Depth() int {
	return len(t.frames)
}

// AngleDepth returns the current template angle-bracket depth.
func (t *Tracker) AngleDepth() int {
	return t.angleDepth
}

// Advance feeds one cleansed line through the state machine.
func (t *Tracker) Advance(line cleanse.Line) {
	text := line.Text
	trim := strings.TrimSpace(text)

	if line.Joined && t.skipJoined {
		if !strings.HasSuffix(trim, "\\") {
			t.skipJoined = false
		}
		t.snapshot()
		return
	}
	t.skipJoined = false

	if strings.HasPrefix(trim, "#") {
		t.advancePreprocessor(trim, line.Num)
		if strings.HasSuffix(trim, "\\") {
			t.skipJoined = true
		}
		t.snapshot()
		return
	}

	if m := reAccess.FindStringSubmatch(trim); m != nil {
		t.setAccess(m[1])
	}
	if reTemplate.MatchString(trim) {
		t.sawTemplate = true
	}
	t.detectFunctionHeader(line)

	i := 0
	parens := 0
	for i < len(text) {
		ch := text[i]
		switch {
		case isIdentStart(ch):
			j := i
			for j < len(text) && isIdentCont(text[j]) {
				j++
			}
			word := text[i:j]
			// Scope keywords inside parens or angle lists are parameter
			// types ("void f(struct stat*)", "template <class T>"), not
			// scope openers.
			if parens == 0 && t.angleDepth == 0 {
				if consumed, ok := t.scanScopeKeyword(word, text[j:], line.Num); ok {
					i = j + consumed
					continue
				}
			}
			i = j

		case ch == '(':
			parens++
			i++

		case ch == ')':
			if parens > 0 {
				parens--
			}
			i++

		case ch == '{':
			t.openBrace(line.Num)
			i++

		case ch == '}':
			t.closeBrace(line.Num)
			i++

		case ch == ';':
			// A semicolon before the brace means a declaration without a
			// body: the pending frame never becomes real.
			t.pending = nil
			t.angleDepth = 0
			i++

		case ch == '<':
			t.openAngle(text, i)
			i++

		case ch == '>':
			t.closeAngle(text, i)
			i++

		default:
			i++
		}
	}

	t.snapshot()
}

// Finish returns frames still open at end of file, outermost first. An
// unbalanced file is not an error here; callers decide whether to flag it.
func (t *Tracker) Finish() []Frame {
	return t.frames
}

func (t *Tracker) snapshot() {
	snap := make([]Frame, len(t.frames))
	copy(snap, t.frames)
	t.perLine = append(t.perLine, snap)
}

// scanScopeKeyword handles namespace/class/struct/union/enum keywords. It
// returns how many bytes of rest were consumed reading the optional name.
func (t *Tracker) scanScopeKeyword(word, rest string, num uint32) (int, bool) {
	var kind Kind
	switch word {
	case "namespace":
		kind = KindNamespace
	case "class":
		kind = KindClass
	case "struct":
		kind = KindStruct
	case "union":
		kind = KindUnion
	case "enum":
		kind = KindEnum
	default:
		return 0, false
	}

	consumed := 0
	// "enum class" / "enum struct" are scoped enums, still enum frames.
	if kind == KindEnum {
		if n, ok := eatWord(rest, "class"); ok {
			consumed += n
			rest = rest[n:]
		} else if n, ok := eatWord(rest, "struct"); ok {
			consumed += n
			rest = rest[n:]
		}
	}

	name, n := leadingIdent(rest)
	consumed += n

	access := AccessDefault
	switch kind {
	case KindClass:
		access = AccessPrivate
	case KindStruct, KindUnion:
		access = AccessPublic
	}

	t.pending = &Frame{
		Kind:     kind,
		Name:     name,
		Access:   access,
		OpenLine: num,
		Template: t.sawTemplate,
	}
	return consumed, true
}

// detectFunctionHeader recognizes a function definition head: an identifier
// directly before the first paren, at a scope where function bodies live,
// with no assignment before the call-looking parens. The frame stays
// pending until its brace arrives, so pure declarations dissolve at the
// semicolon.
func (t *Tracker) detectFunctionHeader(line cleanse.Line) {
	if t.pending != nil || line.Joined {
		return
	}
	// Function-in-function would be a lambda; those stay anonymous blocks.
	for i := range t.frames {
		if t.frames[i].Kind == KindFunction {
			return
		}
	}

	text := line.Text
	loc := reFuncName.FindStringSubmatchIndex(text)
	if loc == nil {
		return
	}
	name := text[loc[2]:loc[3]]
	base := name
	if idx := strings.LastIndex(base, "::"); idx >= 0 {
		base = base[idx+2:]
	}
	if controlKeywords[strings.TrimPrefix(base, "~")] {
		return
	}
	// An equals sign before the parens means initialization, not a header.
	if strings.Contains(text[:loc[2]], "=") {
		return
	}

	t.pending = &Frame{
		Kind:     KindFunction,
		Name:     name,
		OpenLine: line.Num,
		Template: t.sawTemplate,
	}
}

func (t *Tracker) openBrace(num uint32) {
	if t.pending != nil {
		frame := *t.pending
		frame.BraceDepth = 1
		frame.Template = frame.Template || t.sawTemplate
		t.sawTemplate = false
		t.pending = nil
		t.frames = append(t.frames, frame)
		return
	}
	if idx := t.innermostBraced(); idx >= 0 {
		t.frames[idx].BraceDepth++
		return
	}
	t.frames = append(t.frames, Frame{Kind: KindBlock, OpenLine: num, BraceDepth: 1})
}

func (t *Tracker) closeBrace(num uint32) {
	idx := t.innermostBraced()
	if idx < 0 {
		// Never underflow: the stray brace is the finding.
		t.reporter.Report(diag.CatBuildBraces, num, 4,
			"closing brace without a matching opening brace")
		return
	}
	t.frames[idx].BraceDepth--
	if t.frames[idx].BraceDepth == 0 {
		t.frames = append(t.frames[:idx], t.frames[idx+1:]...)
	}
}

// innermostBraced finds the top frame that participates in brace counting.
// Conditional frames never do.
func (t *Tracker) innermostBraced() int {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if t.frames[i].Kind != KindCond {
			return i
		}
	}
	return -1
}

func (t *Tracker) setAccess(word string) {
	for i := len(t.frames) - 1; i >= 0; i-- {
		switch t.frames[i].Kind {
		case KindClass, KindStruct, KindUnion:
			switch word {
			case "public":
				t.frames[i].Access = AccessPublic
			case "protected":
				t.frames[i].Access = AccessProtected
			case "private":
				t.frames[i].Access = AccessPrivate
			}
			return
		}
	}
}

func (t *Tracker) advancePreprocessor(trim string, num uint32) {
	if m := rePreprocIf.FindStringSubmatch(trim); m != nil {
		t.frames = append(t.frames, Frame{
			Kind:     KindCond,
			Name:     strings.TrimSpace(m[2]),
			OpenLine: num,
		})
		return
	}
	if rePreprocEnd.MatchString(trim) {
		for i := len(t.frames) - 1; i >= 0; i-- {
			if t.frames[i].Kind == KindCond {
				t.frames = append(t.frames[:i], t.frames[i+1:]...)
				return
			}
		}
		t.reporter.Report(diag.CatBuildBraces, num, 4,
			"#endif without a matching #if")
	}
	// #else/#elif keep the same frame: the region is still conditional.
}

// openAngle applies the template angle heuristic. Bias: open a depth only
// when '<' follows an identifier byte or a template keyword, is not part
// of <<, <= or <>, and a '>' appears later on the line before any ';'.
// Unsure cases stay closed: missing a template beats inventing one.
func (t *Tracker) openAngle(text string, i int) {
	if i == 0 || (!isIdentCont(text[i-1]) && !afterTemplateWord(text[:i])) {
		return
	}
	if i+1 < len(text) && (text[i+1] == '<' || text[i+1] == '=') {
		return
	}
	rest := text[i+1:]
	gt := strings.IndexByte(rest, '>')
	semi := strings.IndexByte(rest, ';')
	if gt < 0 || (semi >= 0 && semi < gt) {
		return
	}
	t.angleDepth++
}

func (t *Tracker) closeAngle(text string, i int) {
	if t.angleDepth == 0 {
		return
	}
	if i > 0 && text[i-1] == '-' { // ->
		return
	}
	if i+1 < len(text) && text[i+1] == '=' { // >=
		return
	}
	t.angleDepth--
}

// afterTemplateWord reports whether head ends with the template keyword.
// "template <class T>" keeps a space before its list, so the
// identifier-byte rule alone misses it.
func afterTemplateWord(head string) bool {
	head = strings.TrimRight(head, " \t")
	if !strings.HasSuffix(head, "template") {
		return false
	}
	j := len(head) - len("template")
	return j == 0 || !isIdentCont(head[j-1])
}

func eatWord(s, word string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if !strings.HasPrefix(s[i:], word) {
		return 0, false
	}
	end := i + len(word)
	if end < len(s) && isIdentCont(s[end]) {
		return 0, false
	}
	return end, true
}

func leadingIdent(s string) (string, int) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	j := i
	if j < len(s) && isIdentStart(s[j]) {
		for j < len(s) && isIdentCont(s[j]) {
			j++
		}
	}
	return s[i:j], j
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
