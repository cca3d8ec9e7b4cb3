package diagfmt

import (
	"encoding/json"
	"io"

	"stylint/internal/diag"
	"stylint/internal/version"
)

// SARIF 2.1.0, minimal profile: one run, one result per finding, the lint
// category as ruleId. Confidence maps to SARIF level: 4..5 error, 2..3
// warning, 1 note.

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine uint32 `json:"startLine"`
}

func sarifLevel(conf diag.Confidence) string {
	switch {
	case conf >= 4:
		return "error"
	case conf >= 2:
		return "warning"
	default:
		return "note"
	}
}

func renderSarif(w io.Writer, items []diag.Diagnostic) error {
	results := make([]sarifResult, 0, len(items))
	for _, d := range items {
		line := d.Line
		if line == 0 {
			line = 1
		}
		results = append(results, sarifResult{
			RuleID:  string(d.Category),
			Level:   sarifLevel(d.Confidence),
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysical{
					ArtifactLocation: sarifArtifact{URI: d.Path},
					Region:           sarifRegion{StartLine: line},
				},
			}},
		})
	}

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: "stylint", Version: version.Plain()}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}
