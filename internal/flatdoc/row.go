// Package flatdoc is the flat, index-addressed representation of a parsed
// JSON or YAML document: a linear row vector with O(1) parent, sibling, and
// matching-pair navigation, plus per-row collapse state.
//
// All "pointers" in a Row are dense integer indices into FlatDocument.Rows;
// there is no pointer-based tree, so there is no cyclic ownership to manage.
package flatdoc

// Nil is the sentinel for "no such row". Go indices are never negative in
// valid use, so -1 doubles as the absent-index marker without an Option
// wrapper type.
const Nil = -1

// Kind identifies what a Row represents.
type Kind int

const (
	Null Kind = iota
	Boolean
	Number
	String
	EmptyObject
	EmptyArray
	OpenObject
	CloseObject
	OpenArray
	CloseArray
)

// ContainerType distinguishes object rows from array rows; meaningful for
// Open/Close/Empty* kinds only.
type ContainerType int

const (
	NotContainer ContainerType = iota
	Object
	Array
)

// Span is a half-open byte range into FlatDocument.Pretty.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

// Key describes an object row's key token.
type Key struct {
	// Raw is the decoded key text (no surrounding quotes/brackets).
	Raw string
	// Range is the full key token's span in the pretty text, including its
	// delimiters (quotes for string keys, "[...]" for synthetic YAML
	// non-string keys).
	Range Span
	// Synthetic is true for YAML mapping keys that were not plain strings
	// and were serialized into a bracketed form.
	Synthetic bool
}

// Row is one node of the flattened document.
type Row struct {
	Kind      Kind
	Container ContainerType
	Depth     int

	Parent        int
	PrevSibling   int
	NextSibling   int
	IndexInParent int

	ValueRange Span
	Key        *Key

	Collapsed bool
	PairIndex int

	FirstChild int
	LastChild  int
}

func newRow(kind Kind) Row {
	return Row{
		Kind:        kind,
		Parent:      Nil,
		PrevSibling: Nil,
		NextSibling: Nil,
		PairIndex:   Nil,
		FirstChild:  Nil,
		LastChild:   Nil,
	}
}

// IsContainer reports whether the row is one half of an open/close pair.
func (r *Row) IsContainer() bool {
	switch r.Kind {
	case OpenObject, CloseObject, OpenArray, CloseArray:
		return true
	default:
		return false
	}
}

// IsPrimitive is the negation of IsContainer: literals and empty containers
// behave like leaves for navigation purposes.
func (r *Row) IsPrimitive() bool { return !r.IsContainer() }

func (r *Row) IsOpening() bool { return r.Kind == OpenObject || r.Kind == OpenArray }
func (r *Row) IsClosing() bool { return r.Kind == CloseObject || r.Kind == CloseArray }

func (r *Row) IsEmptyContainer() bool { return r.Kind == EmptyObject || r.Kind == EmptyArray }

// IsExpanded is the logical negation of Collapsed, defined only for
// containers; always false for primitives.
func (r *Row) IsExpanded() bool { return r.IsContainer() && !r.Collapsed }
func (r *Row) IsCollapsed() bool { return r.IsContainer() && r.Collapsed }
