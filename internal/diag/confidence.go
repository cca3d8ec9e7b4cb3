package diag

import "fmt"

// Confidence estimates how certain a heuristic check is about a violation,
// on a 1..5 scale. 5 means the check is a literal measurement (a character
// count), 1 means the heuristic is easily fooled. It doubles as severity:
// the failure threshold in the configuration compares against it.
type Confidence uint8

const (
	// ConfidenceMin is the lowest level a checker may report.
	ConfidenceMin Confidence = 1
	// ConfidenceMax is certainty: the check measured, it did not guess.
	ConfidenceMax Confidence = 5
)

// Valid reports whether c is inside the 1..5 scale.
func (c Confidence) Valid() bool {
	return c >= ConfidenceMin && c <= ConfidenceMax
}

func (c Confidence) String() string {
	return fmt.Sprintf("%d", uint8(c))
}
