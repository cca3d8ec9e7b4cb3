// Package driver wires the per-file lint pipeline together and runs it
// across file batches.
package driver

import (
	"stylint/internal/checks"
	"stylint/internal/cleanse"
	"stylint/internal/config"
	"stylint/internal/diag"
	"stylint/internal/filter"
	"stylint/internal/nesting"
	"stylint/internal/observ"
	"stylint/internal/source"
)

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Skipped means the file never reached the checkers (load failure or
	// undecodable content). The bag still carries the accounting entry.
	Skipped bool
	Timing  []observ.PhaseReport
}

// LintFile runs the whole per-file pipeline: cleanse, scope tracking,
// checkers, filtering. Diagnostics land in the returned bag already
// filtered, in report order.
func LintFile(f *source.File, cfg *config.Config, flt *filter.Filter) (res FileResult) {
	bag := diag.NewBag(cfg.MaxDiagnostics)
	res = FileResult{Path: f.Path, FileID: f.ID, Bag: bag}

	timer := observ.NewTimer()
	defer func() { res.Timing = timer.Report() }()

	if !source.ValidUTF8(f.Content) {
		bag.Add(diag.Diagnostic{
			Category:   diag.CatRuntimeUndecodable,
			Message:    "file contents are not valid UTF-8",
			Path:       f.Path,
			Line:       1,
			Confidence: diag.ConfidenceMax,
		})
		res.Skipped = true
		return res
	}

	// Cleanse diagnostics go through a staging bag first: marker
	// suppression needs the cleansed file, which does not exist until
	// cleansing finishes.
	phase := timer.Begin("cleanse")
	staging := diag.NewBag(cfg.MaxDiagnostics)
	cf := cleanse.Run(f, diag.BagReporter{Path: f.Path, Bag: staging})
	timer.End(phase, "")

	reporter := filter.Reporter{
		Next:   diag.BagReporter{Path: f.Path, Bag: bag},
		Filter: flt,
		File:   cf,
	}
	for _, d := range staging.Items() {
		reporter.Report(d.Category, d.Line, d.Confidence, d.Message)
	}

	phase = timer.Begin("nesting")
	trace := nesting.NewTracker(reporter).Run(cf)
	timer.End(phase, "")

	phase = timer.Begin("checks")
	ctx := checks.NewContext(cf, trace, cfg)
	checks.RunAll(ctx, reporter)
	timer.End(phase, "")

	bag.SortByLine()
	return res
}
