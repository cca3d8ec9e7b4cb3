package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"stylint/internal/diag"
)

func sampleItems() []diag.Diagnostic {
	return []diag.Diagnostic{
		{Category: diag.CatWhitespaceTab, Message: "tab found; use spaces for indentation",
			Path: "src/a.cc", Line: 3, Confidence: 1},
		{Category: diag.CatWhitespaceLineLength, Message: "line is 121 columns, limit is 80",
			Path: "src/a.cc", Line: 7, Confidence: 5},
		{Category: diag.CatBuildHeaderGuard, Message: "no #ifndef header guard found, suggested name: B_H_",
			Path: "src/b.h", Line: 1, Confidence: 5},
	}
}

func sampleTally() *diag.Tally {
	t := diag.NewTally(diag.CountTotal)
	for _, d := range sampleItems() {
		t.Count(d)
	}
	return t
}

func render(t *testing.T, format Format, opts Options) string {
	t.Helper()
	var b strings.Builder
	if err := Render(&b, format, sampleItems(), sampleTally(), opts); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
		err  bool
	}{
		{"", FormatEmacs, false},
		{"default", FormatEmacs, false},
		{"EMACS", FormatEmacs, false},
		{"msvs", FormatVS7, false},
		{"junit", FormatJUnit, false},
		{"gsed", FormatGSed, false},
		{"yaml", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.err != (err != nil) || got != tc.want {
			t.Errorf("ParseFormat(%q) = (%v, %v)", tc.in, got, err)
		}
	}
}

func TestRenderText(t *testing.T) {
	t.Run("emacs grammar", func(t *testing.T) {
		out := render(t, FormatEmacs, Options{})
		want := "src/a.cc:3:  tab found; use spaces for indentation  [whitespace/tab] [1]\n"
		if !strings.HasPrefix(out, want) {
			t.Fatalf("first line:\n%q\nwant prefix:\n%q", out, want)
		}
	})

	t.Run("vs7 grammar", func(t *testing.T) {
		out := render(t, FormatVS7, Options{})
		if !strings.Contains(out, "src/a.cc(3): warning: tab found") {
			t.Fatalf("missing vs7 head:\n%s", out)
		}
	})

	t.Run("eclipse grammar", func(t *testing.T) {
		out := render(t, FormatEclipse, Options{})
		if !strings.Contains(out, "src/a.cc:3: warning: tab found") {
			t.Fatalf("missing eclipse head:\n%s", out)
		}
	})

	t.Run("summary", func(t *testing.T) {
		out := render(t, FormatEmacs, Options{Summary: true})
		if !strings.Contains(out, "Total errors found: 3") {
			t.Fatalf("missing total:\n%s", out)
		}
	})

	t.Run("no color codes when disabled", func(t *testing.T) {
		out := render(t, FormatEmacs, Options{Color: false})
		if strings.Contains(out, "\x1b[") {
			t.Fatalf("ANSI escape in uncolored output:\n%q", out)
		}
	})
}

func TestRenderJUnit(t *testing.T) {
	out := render(t, FormatJUnit, Options{})
	if !strings.Contains(out, `tests="2"`) || !strings.Contains(out, `failures="2"`) {
		t.Fatalf("suite counts wrong:\n%s", out)
	}
	if !strings.Contains(out, `name="src/a.cc"`) || !strings.Contains(out, "2 findings") {
		t.Fatalf("per-file case missing:\n%s", out)
	}

	t.Run("clean run passes", func(t *testing.T) {
		var b strings.Builder
		if err := Render(&b, FormatJUnit, nil, diag.NewTally(diag.CountTotal), Options{}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(b.String(), `name="passed"`) {
			t.Fatalf("clean run should emit a passing case:\n%s", b.String())
		}
	})
}

func TestRenderSed(t *testing.T) {
	out := render(t, FormatSed, Options{})
	if !strings.Contains(out, "sed -i '3s|$|  // FIXME(whitespace/tab):") {
		t.Fatalf("sed command wrong:\n%s", out)
	}
	gout := render(t, FormatGSed, Options{})
	if !strings.HasPrefix(gout, "gsed -i ") {
		t.Fatalf("gsed command wrong:\n%s", gout)
	}
}

func TestRenderSarif(t *testing.T) {
	out := render(t, FormatSarif, Options{})
	var log map[string]any
	if err := json.Unmarshal([]byte(out), &log); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if log["version"] != "2.1.0" {
		t.Fatalf("version = %v", log["version"])
	}
	runs := log["runs"].([]any)
	results := runs[0].(map[string]any)["results"].([]any)
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	first := results[0].(map[string]any)
	if first["ruleId"] != "whitespace/tab" || first["level"] != "note" {
		t.Fatalf("first result: %v", first)
	}
}

func TestSedEscape(t *testing.T) {
	got := sedEscape(`a|b&c'd\e`)
	want := `a\|b\&c'\''d\\e`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
