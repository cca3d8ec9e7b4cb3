// Package observ carries the small timing instrumentation behind the
// --timings flag.
package observ

import (
	"fmt"
	"time"
)

// Phase records the duration and metadata of one run phase (walk, lint,
// report).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of multiple run phases.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// PhaseReport is one finished phase in exportable form.
type PhaseReport struct {
	Name       string
	DurationMS float64
	Note       string
}

// Report returns all phases in begin order.
func (t *Timer) Report() []PhaseReport {
	out := make([]PhaseReport, 0, len(t.phases))
	for _, p := range t.phases {
		out = append(out, PhaseReport{
			Name:       p.Name,
			DurationMS: float64(p.Dur) / float64(time.Millisecond),
			Note:       p.Note,
		})
	}
	return out
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	out := "timings:\n"
	for _, p := range t.Report() {
		out += fmt.Sprintf("  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			out += "  " + p.Note
		}
		out += "\n"
	}
	return out
}
