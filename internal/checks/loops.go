package checks

import (
	"regexp"
	"strings"

	"stylint/internal/cleanse"
	"stylint/internal/diag"
)

// LoopConditions looks for arithmetic inside loop conditions, which often
// signals an off-by-one or a condition that was meant to be an index update.
// For a for loop only the second clause is suspect, for a while loop the
// whole condition is.
type LoopConditions struct{}

func (LoopConditions) Name() string { return "loop_conditions" }

var (
	reLoopHead = regexp.MustCompile(`^\s*(for|while)\s*\(`)

	arithmeticOps = []string{"<<", ">>", "+", "-", "*", "/", "%"}
)

func (LoopConditions) Check(ctx *Context, r diag.Reporter) {
	for i := range ctx.File.Lines {
		line := &ctx.File.Lines[i]
		if line.InComment || line.Joined {
			continue
		}
		m := reLoopHead.FindStringSubmatch(line.Text)
		if m == nil {
			continue
		}

		open := strings.IndexByte(line.Text, '(')
		endLine, endPos := closeExpression(ctx.File, i, open)
		if endPos < 0 {
			continue
		}
		cond := expressionText(ctx.File, i, open+1, endLine, endPos-1)

		switch m[1] {
		case "for":
			clauses := strings.Split(cond, ";")
			if len(clauses) >= 2 && containsArithmetic(clauses[1]) {
				r.Report(diag.CatRuntimeForCondition, ctx.File.Lines[endLine].Num,
					diag.ConfidenceMax, "possible incorrect condition in for loop")
			}
		case "while":
			if containsArithmetic(cond) {
				r.Report(diag.CatRuntimeWhileCondition, ctx.File.Lines[endLine].Num,
					diag.ConfidenceMax, "possible incorrect condition in while loop")
			}
		}
	}
}

func containsArithmetic(clause string) bool {
	for _, op := range arithmeticOps {
		if strings.Contains(clause, op) {
			return true
		}
	}
	return false
}

// expressionText extracts cleansed text between (startLine, startPos) and
// (endLine, endPos), exclusive of the closer.
func expressionText(f *cleanse.File, startLine, startPos, endLine, endPos int) string {
	if startLine == endLine {
		text := f.Lines[startLine].Text
		if startPos > len(text) || endPos > len(text) || startPos > endPos {
			return ""
		}
		return text[startPos:endPos]
	}
	var b strings.Builder
	b.WriteString(f.Lines[startLine].Text[startPos:])
	for i := startLine + 1; i < endLine; i++ {
		b.WriteByte(' ')
		b.WriteString(f.Lines[i].Text)
	}
	b.WriteByte(' ')
	end := f.Lines[endLine].Text
	if endPos >= 0 && endPos <= len(end) {
		b.WriteString(end[:endPos])
	}
	return b.String()
}

// closeExpression finds the position just past the token that closes the
// bracket at (lineIdx, pos). It walks forward across cleansed lines,
// treating '<' as a tentative template-argument opener that later
// punctuation can demote to an operator. Returns (-1, -1) when the
// expression never closes.
func closeExpression(f *cleanse.File, lineIdx, pos int) (int, int) {
	line := f.Lines[lineIdx].Text
	if pos < 0 || pos >= len(line) || !strings.ContainsRune("({[<", rune(line[pos])) {
		return -1, -1
	}
	if line[pos] == '<' && pos+1 < len(line) && (line[pos+1] == '<' || line[pos+1] == '=') {
		return -1, -1
	}

	endPos, stack := findExpressionEnd(line, pos, nil)
	if endPos > -1 {
		return lineIdx, endPos
	}
	for len(stack) > 0 && lineIdx < len(f.Lines)-1 {
		lineIdx++
		endPos, stack = findExpressionEnd(f.Lines[lineIdx].Text, 0, stack)
		if endPos > -1 {
			return lineIdx, endPos
		}
	}
	return -1, -1
}

var reOperatorTail = regexp.MustCompile(`\boperator\s*$`)

// findExpressionEnd scans one line from startPos with the given bracket
// stack. It returns the position just past the match when the stack empties
// on a closer, (-1, nil) when the expression turns out unbalanced, and
// (-1, stack) when the line ends with brackets still open.
func findExpressionEnd(line string, startPos int, stack []byte) (int, []byte) {
	for i := startPos; i < len(line); i++ {
		switch c := line[i]; c {
		case '(', '[', '{':
			stack = append(stack, c)
		case '<':
			if i > 0 && line[i-1] == '<' {
				// Left shift operator.
				if len(stack) > 0 && stack[len(stack)-1] == '<' {
					stack = stack[:len(stack)-1]
					if len(stack) == 0 {
						return -1, nil
					}
				}
			} else if i > 0 && reOperatorTail.MatchString(line[:i]) {
				// operator<, not a template list.
			} else {
				stack = append(stack, '<')
			}
		case ')', ']', '}':
			// A pending '<' that meets a hard closer was an operator.
			for len(stack) > 0 && stack[len(stack)-1] == '<' {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return -1, nil
			}
			top := stack[len(stack)-1]
			if (top == '(' && c == ')') || (top == '[' && c == ']') || (top == '{' && c == '}') {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return i + 1, nil
				}
			} else {
				return -1, nil
			}
		case '>':
			if i > 0 && (line[i-1] == '-' || reOperatorTail.MatchString(line[:i-1])) {
				continue
			}
			if len(stack) > 0 && stack[len(stack)-1] == '<' {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return i + 1, nil
				}
			}
		case ';':
			for len(stack) > 0 && stack[len(stack)-1] == '<' {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return -1, nil
			}
		}
	}
	return -1, stack
}
