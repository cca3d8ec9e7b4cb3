package source

import (
	"testing"
)

func TestFile_NumLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{name: "empty file", content: "", expected: 0},
		{name: "single line no newline", content: "int x;", expected: 1},
		{name: "single line with newline", content: "int x;\n", expected: 1},
		{name: "two lines", content: "int x;\nint y;\n", expected: 2},
		{name: "trailing blank line", content: "int x;\n\n", expected: 2},
		{name: "only newlines", content: "\n\n\n", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			id := fs.AddVirtual("test.cc", []byte(tt.content), KindSource)
			if got := fs.Get(id).NumLines(); got != tt.expected {
				t.Errorf("NumLines() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.h", []byte("first\nsecond\nthird"), KindHeader)
	f := fs.Get(id)

	tests := []struct {
		name     string
		lineNum  uint32
		expected string
	}{
		{name: "line zero is empty", lineNum: 0, expected: ""},
		{name: "first line", lineNum: 1, expected: "first"},
		{name: "middle line", lineNum: 2, expected: "second"},
		{name: "last line without newline", lineNum: 3, expected: "third"},
		{name: "past the end", lineNum: 4, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.GetLine(tt.lineNum); got != tt.expected {
				t.Errorf("GetLine(%d) = %q, want %q", tt.lineNum, got, tt.expected)
			}
		})
	}
}

func TestFile_Lines(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.cc", []byte("a\nb\nc\n"), KindSource)
	lines := fs.Get(id).Lines()

	want := []string{"a", "b", "c"}
	if len(lines) != len(want) {
		t.Fatalf("Lines() returned %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFileSet_AddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.cc", []byte("\xEF\xBB\xBFint x;\r\nint y;\r\n"), KindSource)
	f := fs.Get(id)

	if got := f.GetLine(1); got != "int x;" {
		t.Errorf("GetLine(1) = %q, want %q", got, "int x;")
	}
	if got := f.GetLine(2); got != "int y;" {
		t.Errorf("GetLine(2) = %q, want %q", got, "int y;")
	}
}

func TestFileSet_GetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("dir/foo.h", []byte("x"), KindHeader)

	f, ok := fs.GetByPath("dir/foo.h")
	if !ok {
		t.Fatal("GetByPath() did not find loaded file")
	}
	if f.Kind != KindHeader {
		t.Errorf("Kind = %v, want KindHeader", f.Kind)
	}

	if _, ok := fs.GetByPath("dir/bar.h"); ok {
		t.Error("GetByPath() found a file that was never added")
	}
}

func TestFile_Position(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.cc", []byte("ab\ncd\nef"), KindSource)
	f := fs.Get(id)

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{name: "start of file", off: 0, want: LineCol{Line: 1, Col: 1}},
		{name: "second char", off: 1, want: LineCol{Line: 1, Col: 2}},
		{name: "start of second line", off: 3, want: LineCol{Line: 2, Col: 1}},
		{name: "start of third line", off: 6, want: LineCol{Line: 3, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Position(tt.off); got != tt.want {
				t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}
