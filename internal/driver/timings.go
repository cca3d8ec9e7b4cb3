package driver

import (
	"encoding/json"
	"io"

	"stylint/internal/observ"
)

// FileTiming is the exportable per-file phase breakdown behind --timings.
type FileTiming struct {
	Path    string               `json:"path"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// CollectTimings extracts timing payloads from batch results, skipping
// files that never ran the pipeline.
func CollectTimings(results []FileResult) []FileTiming {
	out := make([]FileTiming, 0, len(results))
	for _, res := range results {
		if len(res.Timing) == 0 {
			continue
		}
		ft := FileTiming{Path: res.Path, Phases: res.Timing}
		for _, p := range res.Timing {
			ft.TotalMS += p.DurationMS
		}
		out = append(out, ft)
	}
	return out
}

// RenderTimings writes the timing breakdown as indented JSON.
func RenderTimings(w io.Writer, results []FileResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(CollectTimings(results))
}
