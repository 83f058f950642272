package flatdoc

import "strings"

// Builder is the shared row-and-pretty-text accumulator used by both the
// JSON and YAML parsers (§4.2). It linearizes a tree into pre-order rows
// (opening row before children, closing row after) while writing the
// canonical pretty text in lockstep, mirroring jless's jsonparser.rs /
// yamlparser.rs create_row helpers.
type Builder struct {
	Rows []Row

	pretty strings.Builder

	parents    []int
	childCount map[int]int

	topLevelCount     int
	lastTopLevelIndex int

	maxDepth         int
	hasNonStringKeys bool
}

func NewBuilder() *Builder {
	return &Builder{
		childCount:        map[int]int{},
		lastTopLevelIndex: Nil,
	}
}

func (b *Builder) parentIndex() int {
	if len(b.parents) == 0 {
		return Nil
	}
	return b.parents[len(b.parents)-1]
}

// Depth reports the nesting depth a row opened right now would receive.
func (b *Builder) Depth() int { return len(b.parents) }

func (b *Builder) link(row Row, key *Key) int {
	idx := len(b.Rows)
	parent := b.parentIndex()
	row.Parent = parent
	row.Depth = len(b.parents)
	row.Key = key
	if key != nil && key.Synthetic {
		b.hasNonStringKeys = true
	}

	if parent == Nil {
		row.IndexInParent = b.topLevelCount
		row.PrevSibling = b.lastTopLevelIndex
		if b.lastTopLevelIndex != Nil {
			b.Rows[b.lastTopLevelIndex].NextSibling = idx
		}
		b.lastTopLevelIndex = idx
		b.topLevelCount++
	} else {
		pr := &b.Rows[parent]
		row.IndexInParent = b.childCount[parent]
		b.childCount[parent]++
		if pr.FirstChild == Nil {
			pr.FirstChild = idx
		}
		row.PrevSibling = pr.LastChild
		if pr.LastChild != Nil {
			b.Rows[pr.LastChild].NextSibling = idx
		}
		pr.LastChild = idx
	}

	if row.Depth > b.maxDepth {
		b.maxDepth = row.Depth
	}

	b.Rows = append(b.Rows, row)
	return idx
}

// OpenContainer appends an opening row for an object or array and pushes it
// as the current parent for subsequently-linked rows.
func (b *Builder) OpenContainer(ctype ContainerType, key *Key) int {
	kind := OpenObject
	if ctype == Array {
		kind = OpenArray
	}
	row := newRow(kind)
	row.Container = ctype
	idx := b.link(row, key)
	b.parents = append(b.parents, idx)
	return idx
}

// CloseContainer pops the current parent and appends its matching closing
// row, wiring PairIndex on both halves.
func (b *Builder) CloseContainer() int {
	openIdx := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	open := &b.Rows[openIdx]
	kind := CloseObject
	if open.Container == Array {
		kind = CloseArray
	}

	idx := len(b.Rows)
	row := newRow(kind)
	row.Container = open.Container
	row.Depth = open.Depth
	row.Parent = open.Parent
	row.PairIndex = openIdx
	b.Rows = append(b.Rows, row)

	// open may point into the array append just replaced; index afresh.
	b.Rows[openIdx].PairIndex = idx
	return idx
}

// EmptyContainer appends a single row standing in for `{}` or `[]`.
func (b *Builder) EmptyContainer(ctype ContainerType, key *Key) int {
	kind := EmptyObject
	if ctype == Array {
		kind = EmptyArray
	}
	row := newRow(kind)
	row.Container = ctype
	return b.link(row, key)
}

// Primitive appends a Null/Boolean/Number/String row.
func (b *Builder) Primitive(kind Kind, key *Key) int {
	row := newRow(kind)
	return b.link(row, key)
}

// Pos returns the current write offset into the pretty text being built.
func (b *Builder) Pos() int { return b.pretty.Len() }

// WriteString appends to the pretty text.
func (b *Builder) WriteString(s string) { b.pretty.WriteString(s) }

// WriteByte appends a single byte to the pretty text.
func (b *Builder) WriteByte(c byte) { b.pretty.WriteByte(c) }

// Span returns the half-open range [start, current position).
func (b *Builder) Span(start int) Span { return Span{Start: start, End: b.pretty.Len()} }

// SetValueRange records the value span for the most recently linked row.
func (b *Builder) SetValueRange(idx int, span Span) { b.Rows[idx].ValueRange = span }

// Build finalizes the accumulated rows and pretty text into a FlatDocument.
func (b *Builder) Build() *FlatDocument {
	return &FlatDocument{
		Rows:             b.Rows,
		Pretty:           b.pretty.String(),
		MaxDepth:         b.maxDepth,
		TopLevelCount:    b.topLevelCount,
		HasNonStringKeys: b.hasNonStringKeys,
	}
}
