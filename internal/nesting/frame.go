// Package nesting maintains a stack of lexical scopes from brace and
// keyword heuristics, without parsing. One cleansed line goes in, zero or
// more stack transitions come out; checks read per-line snapshots of the
// stack to know what scope a line sits in.
package nesting

// Kind labels the construct a scope frame stands for.
type Kind uint8

const (
	// KindBlock is an anonymous brace block at a position where no named
	// construct was recognized (typically file-scope initializer braces).
	KindBlock Kind = iota
	KindNamespace
	KindClass
	KindStruct
	KindUnion
	KindEnum
	KindFunction
	// KindCond is a preprocessor conditional (#if/#ifdef/#else region).
	// Cond frames never own braces.
	KindCond
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindFunction:
		return "function"
	case KindCond:
		return "conditional"
	}
	return "block"
}

// Access is the current member access mode inside a class or struct frame.
type Access uint8

const (
	AccessDefault Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return "default"
}

// Frame is one scope on the stack.
type Frame struct {
	Kind Kind
	// Name is the declared name, empty for anonymous constructs.
	Name string
	// Access is meaningful only for class/struct/union frames. Class
	// defaults to private, struct and union to public.
	Access Access
	// OpenLine is the physical line where the keyword (or the brace, for
	// anonymous blocks) was seen.
	OpenLine uint32
	// Template marks a construct declared under a template<> header.
	Template bool
	// BraceDepth counts open braces belonging to this frame, including
	// nested anonymous control-flow blocks. The frame pops when it returns
	// to zero. Always zero for KindCond.
	BraceDepth int
}

// Named reports whether the frame kind carries a name worth checking.
func (f *Frame) Named() bool {
	switch f.Kind {
	case KindNamespace, KindClass, KindStruct, KindUnion, KindEnum, KindFunction:
		return true
	}
	return false
}
