package diag

import "sort"

// CountingMode selects how the run tally buckets surviving diagnostics.
type CountingMode uint8

const (
	// CountTotal keeps a single grand total.
	CountTotal CountingMode = iota
	// CountTopLevel buckets by top-level category segment ("whitespace").
	CountTopLevel
	// CountDetailed buckets by full category ("whitespace/braces").
	CountDetailed
)

func (m CountingMode) String() string {
	switch m {
	case CountTopLevel:
		return "toplevel"
	case CountDetailed:
		return "detailed"
	}
	return "total"
}

// Tally counts surviving diagnostics for one run, per category and per file.
// It is not goroutine-safe: the driver feeds it from the ordered replay, not
// from the workers.
type Tally struct {
	mode       CountingMode
	total      int
	byCategory map[Category]int
	byFile     map[string]int
}

// NewTally creates an empty tally with the given counting mode.
func NewTally(mode CountingMode) *Tally {
	return &Tally{
		mode:       mode,
		byCategory: make(map[Category]int),
		byFile:     make(map[string]int),
	}
}

// Count registers one surviving diagnostic.
func (t *Tally) Count(d Diagnostic) {
	t.total++
	t.byFile[d.Path]++
	switch t.mode {
	case CountTopLevel:
		t.byCategory[d.Category.Top()]++
	case CountDetailed:
		t.byCategory[d.Category]++
	}
}

// Total returns the grand total across all categories and files.
func (t *Tally) Total() int {
	return t.total
}

// ForFile returns the count recorded for one file path.
func (t *Tally) ForFile(path string) int {
	return t.byFile[path]
}

// CategoryCount is one row of the per-category summary.
type CategoryCount struct {
	Category Category
	Count    int
}

// Categories returns per-category counts in sorted category order.
// Empty in CountTotal mode.
func (t *Tally) Categories() []CategoryCount {
	out := make([]CategoryCount, 0, len(t.byCategory))
	for cat, n := range t.byCategory {
		out = append(out, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Mode returns the counting mode the tally was built with.
func (t *Tally) Mode() CountingMode {
	return t.mode
}
