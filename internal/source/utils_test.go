package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		wantChanged bool
	}{
		{name: "no carriage returns", input: "a\nb\n", expected: "a\nb\n", wantChanged: false},
		{name: "crlf pairs", input: "a\r\nb\r\n", expected: "a\nb\n", wantChanged: true},
		{name: "lone cr preserved", input: "a\rb", expected: "a\rb", wantChanged: false},
		{name: "mixed", input: "a\r\nb\rc\n", expected: "a\nb\rc\n", wantChanged: true},
		{name: "empty", input: "", expected: "", wantChanged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.input))
			if !bytes.Equal(got, []byte(tt.expected)) {
				t.Errorf("normalizeCRLF() = %q, want %q", got, tt.expected)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xEF, 0xBB, 0xBF, 'x'}
	got, had := removeBOM(withBOM)
	if !had || !bytes.Equal(got, []byte{'x'}) {
		t.Errorf("removeBOM(BOM+x) = %q, %v", got, had)
	}

	plain := []byte("xyz")
	got, had = removeBOM(plain)
	if had || !bytes.Equal(got, plain) {
		t.Errorf("removeBOM(xyz) = %q, %v", got, had)
	}
}

func TestValidUTF8(t *testing.T) {
	if !ValidUTF8([]byte("héllo")) {
		t.Error("ValidUTF8 rejected valid text")
	}
	if ValidUTF8([]byte{0xff, 0xfe, 0x00}) {
		t.Error("ValidUTF8 accepted invalid bytes")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean already", input: "a/b.cc", expected: "a/b.cc"},
		{name: "dot segments", input: "./a/../b.cc", expected: "b.cc"},
		{name: "double slash", input: "a//b.cc", expected: "a/b.cc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePath(tt.input); got != tt.expected {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
