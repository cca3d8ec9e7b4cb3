package diag

import (
	"testing"
)

func TestBag_AddRespectsLimit(t *testing.T) {
	bag := NewBag(2)

	for i := 0; i < 2; i++ {
		if !bag.Add(Diagnostic{Category: CatWhitespaceTab, Line: uint32(i + 1)}) {
			t.Fatalf("Add() #%d refused below the limit", i+1)
		}
	}
	if bag.Add(Diagnostic{Category: CatWhitespaceTab, Line: 3}) {
		t.Error("Add() accepted past the limit")
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestBag_OverflowStillCountsReportable(t *testing.T) {
	bag := NewBag(2)
	bag.Add(Diagnostic{Category: CatWhitespaceTab, Line: 1, Confidence: 1})
	bag.Add(Diagnostic{Category: CatWhitespaceTab, Line: 2, Confidence: 1})

	if bag.Add(Diagnostic{Category: CatWhitespaceLineLength, Line: 3, Confidence: 5}) {
		t.Fatal("Add() accepted past the limit")
	}
	if bag.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", bag.Dropped())
	}
	if !bag.HadReportable(5) {
		t.Error("HadReportable(5) = false after dropping a confidence-5 finding")
	}
}

func TestBag_HadReportable(t *testing.T) {
	tests := []struct {
		name        string
		confidences []Confidence
		threshold   Confidence
		want        bool
	}{
		{name: "empty bag", confidences: nil, threshold: 1, want: false},
		{name: "all below threshold", confidences: []Confidence{1, 2}, threshold: 3, want: false},
		{name: "one at threshold", confidences: []Confidence{1, 3}, threshold: 3, want: true},
		{name: "one above threshold", confidences: []Confidence{5}, threshold: 3, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := NewBag(10)
			for _, c := range tt.confidences {
				bag.Add(Diagnostic{Category: CatWhitespaceTab, Line: 1, Confidence: c})
			}
			if got := bag.HadReportable(tt.threshold); got != tt.want {
				t.Errorf("HadReportable(%d) = %v, want %v", tt.threshold, got, tt.want)
			}
		})
	}
}

func TestBag_Dedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Category: CatWhitespaceTab, Path: "a.cc", Line: 1, Confidence: 1})
	bag.Add(Diagnostic{Category: CatWhitespaceTab, Path: "a.cc", Line: 1, Confidence: 1})
	bag.Add(Diagnostic{Category: CatWhitespaceTab, Path: "a.cc", Line: 2, Confidence: 1})

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Len() = %d after Dedup, want 2", bag.Len())
	}
}

func TestBag_SortByLine(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Category: CatWhitespaceTab, Line: 7})
	bag.Add(Diagnostic{Category: CatWhitespaceBraces, Line: 2})
	bag.Add(Diagnostic{Category: CatWhitespaceComma, Line: 2})

	bag.SortByLine()

	items := bag.Items()
	if items[0].Line != 2 || items[0].Category != CatWhitespaceBraces {
		t.Errorf("items[0] = %+v, want line 2 braces first", items[0])
	}
	if items[1].Line != 2 || items[1].Category != CatWhitespaceComma {
		t.Errorf("items[1] = %+v, want line 2 comma second", items[1])
	}
	if items[2].Line != 7 {
		t.Errorf("items[2].Line = %d, want 7", items[2].Line)
	}
}

func TestBag_Merge(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Category: CatWhitespaceTab, Line: 1})
	b := NewBag(1)
	b.Add(Diagnostic{Category: CatWhitespaceComma, Line: 2})

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("Len() after merge = %d, want 2 (max must grow)", a.Len())
	}
}

func TestCategory_HasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		cat    Category
		prefix Category
		want   bool
	}{
		{name: "exact match", cat: CatWhitespaceBraces, prefix: "whitespace/braces", want: true},
		{name: "top-level prefix", cat: CatWhitespaceBraces, prefix: "whitespace", want: true},
		{name: "partial segment does not match", cat: CatWhitespaceBraces, prefix: "white", want: false},
		{name: "different category", cat: CatBuildHeaderGuard, prefix: "whitespace", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cat.HasPrefix(tt.prefix); got != tt.want {
				t.Errorf("%q.HasPrefix(%q) = %v, want %v", tt.cat, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestKnownPrefix(t *testing.T) {
	if !KnownPrefix("whitespace") {
		t.Error(`KnownPrefix("whitespace") = false`)
	}
	if !KnownPrefix("build/header_guard") {
		t.Error(`KnownPrefix("build/header_guard") = false`)
	}
	if KnownPrefix("nonsense") {
		t.Error(`KnownPrefix("nonsense") = true`)
	}
}

func TestTally_Modes(t *testing.T) {
	diags := []Diagnostic{
		{Category: CatWhitespaceTab, Path: "a.cc", Line: 1},
		{Category: CatWhitespaceBraces, Path: "a.cc", Line: 2},
		{Category: CatBuildHeaderGuard, Path: "b.h", Line: 1},
	}

	t.Run("total", func(t *testing.T) {
		tally := NewTally(CountTotal)
		for _, d := range diags {
			tally.Count(d)
		}
		if tally.Total() != 3 {
			t.Errorf("Total() = %d, want 3", tally.Total())
		}
		if len(tally.Categories()) != 0 {
			t.Errorf("Categories() not empty in total mode")
		}
	})

	t.Run("toplevel", func(t *testing.T) {
		tally := NewTally(CountTopLevel)
		for _, d := range diags {
			tally.Count(d)
		}
		cats := tally.Categories()
		if len(cats) != 2 {
			t.Fatalf("Categories() len = %d, want 2", len(cats))
		}
		if cats[0].Category != "build" || cats[0].Count != 1 {
			t.Errorf("cats[0] = %+v, want build:1", cats[0])
		}
		if cats[1].Category != "whitespace" || cats[1].Count != 2 {
			t.Errorf("cats[1] = %+v, want whitespace:2", cats[1])
		}
	})

	t.Run("detailed", func(t *testing.T) {
		tally := NewTally(CountDetailed)
		for _, d := range diags {
			tally.Count(d)
		}
		if len(tally.Categories()) != 3 {
			t.Errorf("Categories() len = %d, want 3", len(tally.Categories()))
		}
		if tally.ForFile("a.cc") != 2 {
			t.Errorf(`ForFile("a.cc") = %d, want 2`, tally.ForFile("a.cc"))
		}
	})
}
