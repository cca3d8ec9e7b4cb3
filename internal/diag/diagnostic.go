package diag

// Diagnostic is one style finding: a category, a human message, and the
// file/line it anchors to. Line 1 is the first physical line; line 0 means
// the finding concerns the file as a whole.
type Diagnostic struct {
	Category   Category
	Message    string
	Path       string
	Line       uint32
	Confidence Confidence
}
