package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// Kind classifies a file by the role its extension implies. Checks vary
// behavior on it: header guards apply to headers only, some construct
// restrictions apply only inside headers.
type Kind uint8

const (
	// KindOther is any file whose extension matched neither configured set.
	KindOther Kind = iota
	// KindHeader is a header file (.h, .hh, .hpp, ...).
	KindHeader
	// KindSource is an implementation file (.c, .cc, .cpp, ...).
	KindSource
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSource:
		return "source"
	}
	return "other"
}

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Kind    Kind
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
