package diag

// Reporter is the minimal contract checkers report through.
// Implementations: BagReporter (stores into a Bag), FilterReporter in the
// filter package (drops suppressed findings before forwarding).
type Reporter interface {
	Report(cat Category, line uint32, conf Confidence, msg string)
}

// BagReporter writes findings for one file into a Bag.
type BagReporter struct {
	Path string
	Bag  *Bag
}

func (r BagReporter) Report(cat Category, line uint32, conf Confidence, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Category:   cat,
		Message:    msg,
		Path:       r.Path,
		Line:       line,
		Confidence: conf,
	})
}

// NopReporter discards everything. Useful in tests that only exercise state
// transitions.
type NopReporter struct{}

func (NopReporter) Report(Category, uint32, Confidence, string) {}
