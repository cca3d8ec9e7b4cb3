package checks

import (
	"strings"
	"testing"

	"stylint/internal/cleanse"
	"stylint/internal/config"
	"stylint/internal/diag"
	"stylint/internal/nesting"
	"stylint/internal/source"
)

func buildContext(t *testing.T, path string, kind source.Kind, src string) (*Context, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add(path, []byte(src), kind, 0)
	bag := diag.NewBag(100)
	r := diag.BagReporter{Path: path, Bag: bag}
	cf := cleanse.Run(fs.Get(id), r)
	trace := nesting.NewTracker(r).Run(cf)
	cfg := config.Default()
	return NewContext(cf, trace, &cfg), bag
}

func runChecker(t *testing.T, c Checker, path string, kind source.Kind, src string) []diag.Diagnostic {
	t.Helper()
	ctx, bag := buildContext(t, path, kind, src)
	r := diag.BagReporter{Path: path, Bag: bag}
	c.Check(ctx, r)
	return bag.Items()
}

func countCategory(items []diag.Diagnostic, cat diag.Category) int {
	n := 0
	for _, d := range items {
		if d.Category == cat {
			n++
		}
	}
	return n
}

func findCategory(t *testing.T, items []diag.Diagnostic, cat diag.Category) diag.Diagnostic {
	t.Helper()
	for _, d := range items {
		if d.Category == cat {
			return d
		}
	}
	t.Fatalf("no %s diagnostic, got %+v", cat, items)
	return diag.Diagnostic{}
}

func TestLineLength(t *testing.T) {
	t.Run("over limit", func(t *testing.T) {
		src := strings.Repeat("a", 121) + "\n"
		items := runChecker(t, LineLength{}, "x.cc", source.KindSource, src)
		d := findCategory(t, items, diag.CatWhitespaceLineLength)
		if d.Line != 1 || d.Confidence != diag.ConfidenceMax {
			t.Fatalf("got line %d conf %d", d.Line, d.Confidence)
		}
	})
	t.Run("at limit", func(t *testing.T) {
		src := strings.Repeat("a", 80) + "\n"
		items := runChecker(t, LineLength{}, "x.cc", source.KindSource, src)
		if n := countCategory(items, diag.CatWhitespaceLineLength); n != 0 {
			t.Fatalf("got %d diagnostics for a line at the limit", n)
		}
	})
	t.Run("tabs expand", func(t *testing.T) {
		// 10 tabs at width 8 render to column 80, one more char goes over.
		src := strings.Repeat("\t", 10) + "ab\n"
		items := runChecker(t, LineLength{}, "x.cc", source.KindSource, src)
		if countCategory(items, diag.CatWhitespaceLineLength) != 1 {
			t.Fatal("expected tab-expanded line to exceed the limit")
		}
	})
}

func TestWhitespace(t *testing.T) {
	cases := []struct {
		name string
		src  string
		cat  diag.Category
		line uint32
	}{
		{"tab indent", "\tint x;\n", diag.CatWhitespaceTab, 1},
		{"trailing space", "int x;  \n", diag.CatWhitespaceEndOfLine, 1},
		{"comma spacing", "f(a,b);\n", diag.CatWhitespaceComma, 1},
		{"blank run", "int a;\n\n\n\nint b;\n", diag.CatWhitespaceBlankLine, 4},
		{"space before semicolon", "return x ;\n", diag.CatWhitespaceSemicolon, 1},
		{"missing space after slashes", "//comment\n", diag.CatWhitespaceComments, 1},
		{"odd indent", "void f() {\n   int x;\n}\n", diag.CatWhitespaceIndent, 2},
		{"for substring keeps semicolon rule", "int fortune ;\n", diag.CatWhitespaceSemicolon, 1},
		{"for substring keeps paren rule", "format( x );\n", diag.CatWhitespaceParens, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := runChecker(t, Whitespace{}, "x.cc", source.KindSource, tc.src)
			d := findCategory(t, items, tc.cat)
			if d.Line != tc.line {
				t.Fatalf("reported at line %d, want %d", d.Line, tc.line)
			}
		})
	}

	t.Run("clean line", func(t *testing.T) {
		items := runChecker(t, Whitespace{}, "x.cc", source.KindSource, "int x = f(a, b);  // ok\n")
		if len(items) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
}

func TestBraces(t *testing.T) {
	t.Run("lone open brace", func(t *testing.T) {
		src := "void f()\n{\n}\n"
		items := runChecker(t, Braces{}, "x.cc", source.KindSource, src)
		d := findCategory(t, items, diag.CatWhitespaceBraces)
		if d.Line != 2 {
			t.Fatalf("reported at line %d, want 2", d.Line)
		}
	})
	t.Run("cramped else", func(t *testing.T) {
		src := "if (x) {\n}else {\n}\n"
		items := runChecker(t, Braces{}, "x.cc", source.KindSource, src)
		d := findCategory(t, items, diag.CatWhitespaceBraces)
		if d.Confidence != diag.ConfidenceMax {
			t.Fatalf("conf %d, want %d", d.Confidence, diag.ConfidenceMax)
		}
	})
	t.Run("else on own line", func(t *testing.T) {
		src := "if (x) {\n}\nelse {\n}\n"
		items := runChecker(t, Braces{}, "x.cc", source.KindSource, src)
		if countCategory(items, diag.CatWhitespaceNewline) != 1 {
			t.Fatalf("expected one newline diagnostic, got %+v", items)
		}
	})
}

func TestIncludeGuard(t *testing.T) {
	t.Run("missing guard reported at line one", func(t *testing.T) {
		src := "int x;\nint y;\n"
		items := runChecker(t, IncludeGuard{}, "foo.h", source.KindHeader, src)
		d := findCategory(t, items, diag.CatBuildHeaderGuard)
		if d.Line != 1 || d.Confidence != diag.ConfidenceMax {
			t.Fatalf("got line %d conf %d", d.Line, d.Confidence)
		}
		if !strings.Contains(d.Message, "FOO_H_") {
			t.Fatalf("message %q should suggest FOO_H_", d.Message)
		}
	})
	t.Run("correct guard", func(t *testing.T) {
		src := "#ifndef NET_CONN_H_\n#define NET_CONN_H_\nint x;\n#endif\n"
		items := runChecker(t, IncludeGuard{}, "net/conn.h", source.KindHeader, src)
		if len(items) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
	t.Run("wrong guard name", func(t *testing.T) {
		src := "#ifndef CONN_H\n#define CONN_H\n#endif\n"
		items := runChecker(t, IncludeGuard{}, "net/conn.h", source.KindHeader, src)
		d := findCategory(t, items, diag.CatBuildHeaderGuard)
		if !strings.Contains(d.Message, "NET_CONN_H_") {
			t.Fatalf("message %q should name NET_CONN_H_", d.Message)
		}
	})
	t.Run("pragma once accepted", func(t *testing.T) {
		src := "#pragma once\nint x;\n"
		items := runChecker(t, IncludeGuard{}, "foo.h", source.KindHeader, src)
		if len(items) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
	t.Run("source files exempt", func(t *testing.T) {
		items := runChecker(t, IncludeGuard{}, "foo.cc", source.KindSource, "int x;\n")
		if len(items) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
}

func TestGuardName(t *testing.T) {
	cases := []struct {
		path, root, want string
	}{
		{"foo.h", "", "FOO_H_"},
		{"net/conn.h", "", "NET_CONN_H_"},
		{"src/net/conn.h", "src", "NET_CONN_H_"},
		{"a-b/c.h", "", "A_B_C_H_"},
	}
	for _, tc := range cases {
		if got := GuardName(tc.path, tc.root); got != tc.want {
			t.Errorf("GuardName(%q, %q) = %q, want %q", tc.path, tc.root, got, tc.want)
		}
	}
}

func TestIncludeOrder(t *testing.T) {
	t.Run("well ordered", func(t *testing.T) {
		src := "#include \"net/conn.h\"\n#include <stdio.h>\n#include <vector>\n#include \"net/util.h\"\n"
		items := runChecker(t, IncludeOrder{}, "net/conn.cc", source.KindSource, src)
		if len(items) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
	t.Run("system after project", func(t *testing.T) {
		src := "#include \"net/util.h\"\n#include <vector>\n"
		items := runChecker(t, IncludeOrder{}, "net/conn.cc", source.KindSource, src)
		d := findCategory(t, items, diag.CatBuildIncludeOrd)
		if d.Line != 2 {
			t.Fatalf("reported at line %d, want 2", d.Line)
		}
	})
	t.Run("duplicate include", func(t *testing.T) {
		src := "#include <vector>\n#include <vector>\n"
		items := runChecker(t, IncludeOrder{}, "x.cc", source.KindSource, src)
		d := findCategory(t, items, diag.CatBuildInclude)
		if d.Line != 2 {
			t.Fatalf("reported at line %d, want 2", d.Line)
		}
	})
}

func TestCopyright(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		items := runChecker(t, Copyright{}, "x.cc", source.KindSource, "int x;\n")
		d := findCategory(t, items, diag.CatLegalCopyright)
		if d.Line != 1 {
			t.Fatalf("reported at line %d, want 1", d.Line)
		}
	})
	t.Run("present", func(t *testing.T) {
		src := "// Copyright 2026 The Authors.\nint x;\n"
		items := runChecker(t, Copyright{}, "x.cc", source.KindSource, src)
		if len(items) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
}

func TestNaming(t *testing.T) {
	cases := []struct {
		name string
		src  string
		cat  diag.Category
	}{
		{"lowercase class", "class bad_name {\n};\n", diag.CatNamingTypes},
		{"lowercase macro", "#define my_macro 1\n", diag.CatNamingMacros},
		{"camel constant", "const int maxSize = 10;\n", diag.CatNamingConstants},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := runChecker(t, Naming{}, "x.cc", source.KindSource, tc.src)
			if countCategory(items, tc.cat) != 1 {
				t.Fatalf("expected one %s diagnostic, got %+v", tc.cat, items)
			}
		})
	}

	clean := []struct {
		name string
		src  string
	}{
		{"camel class", "class GoodName {\n};\n"},
		{"screaming macro", "#define MY_MACRO 1\n"},
		{"guard macro", "#define NET_CONN_H_\n"},
		{"k constant", "const int kMaxSize = 10;\n"},
	}
	for _, tc := range clean {
		t.Run(tc.name, func(t *testing.T) {
			items := runChecker(t, Naming{}, "x.cc", source.KindSource, tc.src)
			if len(items) != 0 {
				t.Fatalf("unexpected diagnostics: %+v", items)
			}
		})
	}
}

func TestConstructs(t *testing.T) {
	t.Run("bare todo", func(t *testing.T) {
		items := runChecker(t, Constructs{}, "x.cc", source.KindSource, "// TODO: later\n")
		if countCategory(items, diag.CatReadabilityTodo) != 1 {
			t.Fatalf("expected one todo diagnostic, got %+v", items)
		}
	})
	t.Run("attributed todo", func(t *testing.T) {
		items := runChecker(t, Constructs{}, "x.cc", source.KindSource, "// TODO(ann): later\n")
		if countCategory(items, diag.CatReadabilityTodo) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
	t.Run("c style cast", func(t *testing.T) {
		items := runChecker(t, Constructs{}, "x.cc", source.KindSource, "int y = (int)x;\n")
		if countCategory(items, diag.CatReadabilityCasting) != 1 {
			t.Fatalf("expected one casting diagnostic, got %+v", items)
		}
	})
	t.Run("goto in function", func(t *testing.T) {
		src := "void f() {\n  goto done;\ndone:\n  return;\n}\n"
		items := runChecker(t, Constructs{}, "x.cc", source.KindSource, src)
		d := findCategory(t, items, diag.CatReadabilityGoto)
		if d.Line != 2 {
			t.Fatalf("reported at line %d, want 2", d.Line)
		}
	})
	t.Run("using namespace in header", func(t *testing.T) {
		src := "#ifndef X_H_\n#define X_H_\nusing namespace std;\n#endif\n"
		items := runChecker(t, Constructs{}, "x.h", source.KindHeader, src)
		d := findCategory(t, items, diag.CatBuildNamespaces)
		if d.Line != 3 || d.Confidence != diag.ConfidenceMax {
			t.Fatalf("got line %d conf %d", d.Line, d.Confidence)
		}
	})
	t.Run("using namespace in source ok", func(t *testing.T) {
		items := runChecker(t, Constructs{}, "x.cc", source.KindSource, "using namespace std;\n")
		if countCategory(items, diag.CatBuildNamespaces) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
}

func TestLoopConditions(t *testing.T) {
	t.Run("arithmetic in while", func(t *testing.T) {
		src := "while (i + 1) {\n}\n"
		items := runChecker(t, LoopConditions{}, "x.cc", source.KindSource, src)
		d := findCategory(t, items, diag.CatRuntimeWhileCondition)
		if d.Line != 1 || d.Confidence != diag.ConfidenceMax {
			t.Fatalf("got line %d conf %d", d.Line, d.Confidence)
		}
	})
	t.Run("arithmetic in for condition", func(t *testing.T) {
		src := "for (int i = 0; i < n * 2; ++i) {\n}\n"
		items := runChecker(t, LoopConditions{}, "x.cc", source.KindSource, src)
		if countCategory(items, diag.CatRuntimeForCondition) != 1 {
			t.Fatalf("expected one for-condition diagnostic, got %+v", items)
		}
	})
	t.Run("plain loops pass", func(t *testing.T) {
		src := "while (running) {\n}\nfor (int i = 0; i < n; i = i + 1) {\n}\n"
		items := runChecker(t, LoopConditions{}, "x.cc", source.KindSource, src)
		if len(items) != 0 {
			t.Fatalf("unexpected diagnostics: %+v", items)
		}
	})
	t.Run("condition spanning lines", func(t *testing.T) {
		src := "while (count(a,\n             b) % 2) {\n}\n"
		items := runChecker(t, LoopConditions{}, "x.cc", source.KindSource, src)
		d := findCategory(t, items, diag.CatRuntimeWhileCondition)
		if d.Line != 2 {
			t.Fatalf("reported at line %d, want 2", d.Line)
		}
	})
}

func TestCloseExpression(t *testing.T) {
	build := func(src string) *cleanse.File {
		fs := source.NewFileSet()
		id := fs.Add("x.cc", []byte(src), source.KindSource, 0)
		return cleanse.Run(fs.Get(id), diag.NopReporter{})
	}

	t.Run("same line", func(t *testing.T) {
		f := build("f(a, (b + c), d);\n")
		line, pos := closeExpression(f, 0, 1)
		if line != 0 || pos != 16 {
			t.Fatalf("got (%d, %d), want (0, 16)", line, pos)
		}
	})
	t.Run("template arguments", func(t *testing.T) {
		f := build("std::map<int, std::vector<int>> m;\n")
		line, pos := closeExpression(f, 0, 8)
		if line != 0 || pos != 31 {
			t.Fatalf("got (%d, %d), want (0, 31)", line, pos)
		}
	})
	t.Run("left shift not a template", func(t *testing.T) {
		f := build("a << b;\n")
		if line, pos := closeExpression(f, 0, 2); pos != -1 {
			t.Fatalf("got (%d, %d), want no close", line, pos)
		}
	})
	t.Run("never closes", func(t *testing.T) {
		f := build("f(a,\nb,\nc\n")
		if _, pos := closeExpression(f, 0, 1); pos != -1 {
			t.Fatalf("got pos %d, want -1", pos)
		}
	})
}
