package diag

import "strings"

// Category is a hierarchical, slash-separated label identifying a class of
// style violation, e.g. "whitespace/braces". Filtering and counting match on
// prefixes of it.
type Category string

// Lint categories emitted by the checkers. Filter rules are validated
// against this set, so every category a checker reports must be listed here.
const (
	CatBuildComment     Category = "build/comment"
	CatBuildString      Category = "build/string"
	CatBuildBraces      Category = "build/braces"
	CatBuildHeaderGuard Category = "build/header_guard"
	CatBuildInclude     Category = "build/include"
	CatBuildIncludeOrd  Category = "build/include_order"
	CatBuildNamespaces  Category = "build/namespaces"

	CatLegalCopyright Category = "legal/copyright"

	CatNamingConstants Category = "naming/constants"
	CatNamingFunctions Category = "naming/functions"
	CatNamingMacros    Category = "naming/macros"
	CatNamingTypes     Category = "naming/types"
	CatNamingVariables Category = "naming/variables"

	CatReadabilityCasting Category = "readability/casting"
	CatReadabilityTodo    Category = "readability/todo"
	CatReadabilityGoto    Category = "readability/goto"

	CatRuntimeForCondition   Category = "runtime/for_loop_condition"
	CatRuntimeWhileCondition Category = "runtime/while_loop_condition"
	CatRuntimeUndecodable    Category = "runtime/undecodable"

	CatWhitespaceBlankLine  Category = "whitespace/blank_line"
	CatWhitespaceBraces     Category = "whitespace/braces"
	CatWhitespaceComma      Category = "whitespace/comma"
	CatWhitespaceComments   Category = "whitespace/comments"
	CatWhitespaceEndOfLine  Category = "whitespace/end_of_line"
	CatWhitespaceIndent     Category = "whitespace/indent"
	CatWhitespaceLineLength Category = "whitespace/line_length"
	CatWhitespaceNewline    Category = "whitespace/newline"
	CatWhitespaceOperators  Category = "whitespace/operators"
	CatWhitespaceParens     Category = "whitespace/parens"
	CatWhitespaceSemicolon  Category = "whitespace/semicolon"
	CatWhitespaceTab        Category = "whitespace/tab"
)

// AllCategories lists every category the checkers can emit, in sorted order.
var AllCategories = []Category{
	CatBuildBraces,
	CatBuildComment,
	CatBuildHeaderGuard,
	CatBuildInclude,
	CatBuildIncludeOrd,
	CatBuildNamespaces,
	CatBuildString,
	CatLegalCopyright,
	CatNamingConstants,
	CatNamingFunctions,
	CatNamingMacros,
	CatNamingTypes,
	CatNamingVariables,
	CatReadabilityCasting,
	CatReadabilityGoto,
	CatReadabilityTodo,
	CatRuntimeForCondition,
	CatRuntimeUndecodable,
	CatRuntimeWhileCondition,
	CatWhitespaceBlankLine,
	CatWhitespaceBraces,
	CatWhitespaceComma,
	CatWhitespaceComments,
	CatWhitespaceEndOfLine,
	CatWhitespaceIndent,
	CatWhitespaceLineLength,
	CatWhitespaceNewline,
	CatWhitespaceOperators,
	CatWhitespaceParens,
	CatWhitespaceSemicolon,
	CatWhitespaceTab,
}

func (c Category) String() string { return string(c) }

// Top returns the top-level segment of the category ("whitespace" for
// "whitespace/braces").
func (c Category) Top() Category {
	if i := strings.IndexByte(string(c), '/'); i >= 0 {
		return c[:i]
	}
	return c
}

// HasPrefix reports whether prefix matches the category on segment
// boundaries: "whitespace" matches "whitespace/braces" but "white" does not.
func (c Category) HasPrefix(prefix Category) bool {
	if c == prefix {
		return true
	}
	return strings.HasPrefix(string(c), string(prefix)+"/")
}

// KnownPrefix reports whether prefix matches at least one emittable
// category. Filter validation uses it to reject unknown rule names.
func KnownPrefix(prefix Category) bool {
	for _, c := range AllCategories {
		if c.HasPrefix(prefix) {
			return true
		}
	}
	return false
}
