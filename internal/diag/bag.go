package diag

import (
	"fmt"
	"sort"
)

// Bag accumulates diagnostics up to a fixed capacity. One Bag per file pass;
// the driver merges per-file bags in input order, so a Bag is never shared
// between goroutines.
type Bag struct {
	items []Diagnostic
	max   uint32
	// maxSeen covers every Add, including diagnostics dropped at the
	// capacity limit, so overflow cannot hide a reportable finding.
	maxSeen Confidence
	dropped uint32
}

// NewBag creates a Bag that holds at most max diagnostics.
func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   uint32(max), // #nosec G115 -- max is a small config value
	}
}

// Add appends a diagnostic, honoring the capacity limit.
// Returns false if the diagnostic was not added (limit reached).
func (b *Bag) Add(d Diagnostic) bool {
	if d.Confidence > b.maxSeen {
		b.maxSeen = d.Confidence
	}
	if uint32(len(b.items)) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped returns how many diagnostics the capacity limit discarded.
func (b *Bag) Dropped() uint32 {
	return b.dropped
}

// Cap returns the capacity limit.
func (b *Bag) Cap() uint32 {
	return b.max
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only slice of diagnostics.
// Do not modify the returned slice: it aliases the Bag's array.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HadReportable reports whether any diagnostic reached the given confidence
// threshold, counting ones the capacity limit dropped. The external driver
// turns this into the process exit status.
func (b *Bag) HadReportable(threshold Confidence) bool {
	return b.maxSeen >= threshold
}

// Merge appends the diagnostics of another Bag, growing max when needed.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if uint32(newTotal) > b.max {
		b.max = uint32(newTotal) // #nosec G115 -- bounded by both bag caps
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
	if other.maxSeen > b.maxSeen {
		b.maxSeen = other.maxSeen
	}
}

// SortByLine orders diagnostics by: line, category, message. Stable, so two
// findings of the same category on one line keep arrival order. File order
// is deliberately not a key here: the driver already replays files in input
// order and sorting each file's bag on its own keeps that order intact.
func (b *Bag) SortByLine() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Category != dj.Category {
			return di.Category < dj.Category
		}
		return di.Message < dj.Message
	})
}

// Dedup removes exact repeats (category + path + line).
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%d", d.Category, d.Path, d.Line)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}
