package flatdoc

// FlatDocument is the immutable-after-construction row vector plus the
// canonical pretty text both parsers produce it alongside.
type FlatDocument struct {
	Rows    []Row
	Pretty  string
	MaxDepth int

	// TopLevelCount is the number of sibling top-level values (row 0's
	// sibling chain length); newline-delimited JSON can have more than one.
	TopLevelCount int

	// HasNonStringKeys is set by a parser when any object/mapping key in
	// the document is a synthetic (non-string) key. Query-style path
	// building refuses to run against such a document.
	HasNonStringKeys bool
}

func (fd *FlatDocument) Row(i int) *Row { return &fd.Rows[i] }

// nextRow/prevRow are the raw vector-adjacency step, ignoring visibility.
func (fd *FlatDocument) nextRow(i int) int {
	if i+1 >= len(fd.Rows) {
		return Nil
	}
	return i + 1
}

func (fd *FlatDocument) prevRow(i int) int {
	if i <= 0 {
		return Nil
	}
	return i - 1
}

// NextVisibleRow returns the neighbor in the visible set, which excludes the
// interior of collapsed containers. For a collapsed opening row, it returns
// the row after the matching closing row.
func (fd *FlatDocument) NextVisibleRow(i int) int {
	row := &fd.Rows[i]
	if row.IsOpening() && row.Collapsed {
		return fd.nextRow(row.PairIndex)
	}
	return fd.nextRow(i)
}

// PrevVisibleRow is NextVisibleRow's mirror: a collapsed closing row is
// itself invisible, so stepping backward from just after it lands on its
// opening row instead.
func (fd *FlatDocument) PrevVisibleRow(i int) int {
	p := fd.prevRow(i)
	if p == Nil {
		return Nil
	}
	prow := &fd.Rows[p]
	if prow.IsClosing() && prow.Collapsed {
		return prow.PairIndex
	}
	return p
}

// NextItem is NextVisibleRow but additionally skips closing-container rows;
// used by "data mode" navigation.
func (fd *FlatDocument) NextItem(i int) int {
	n := fd.NextVisibleRow(i)
	for n != Nil && fd.Rows[n].IsClosing() {
		n = fd.NextVisibleRow(n)
	}
	return n
}

// PrevItem mirrors NextItem.
func (fd *FlatDocument) PrevItem(i int) int {
	p := fd.PrevVisibleRow(i)
	for p != Nil && fd.Rows[p].IsClosing() {
		p = fd.PrevVisibleRow(p)
	}
	return p
}

// FirstVisibleAncestor walks parent links and returns the nearest ancestor
// whose Collapsed flag is set, or i itself if no ancestor is collapsed.
func (fd *FlatDocument) FirstVisibleAncestor(i int) int {
	idx := fd.Rows[i].Parent
	for idx != Nil {
		if fd.Rows[idx].Collapsed {
			return idx
		}
		idx = fd.Rows[idx].Parent
	}
	return i
}

// Expand, Collapse, and ToggleCollapsed set the Collapsed flag on both
// halves of a pair; no-ops on primitives.
func (fd *FlatDocument) Expand(i int)  { fd.setCollapsed(i, false) }
func (fd *FlatDocument) Collapse(i int) { fd.setCollapsed(i, true) }

func (fd *FlatDocument) ToggleCollapsed(i int) {
	row := &fd.Rows[i]
	if row.IsPrimitive() {
		return
	}
	fd.setCollapsed(i, !row.Collapsed)
}

func (fd *FlatDocument) setCollapsed(i int, collapsed bool) {
	row := &fd.Rows[i]
	if row.IsPrimitive() {
		return
	}
	row.Collapsed = collapsed
	fd.Rows[row.PairIndex].Collapsed = collapsed
}

// FirstTopLevelRow returns row 0, or Nil for an empty document.
func (fd *FlatDocument) FirstTopLevelRow() int {
	if len(fd.Rows) == 0 {
		return Nil
	}
	return 0
}

// LastVisibleRow returns the last row visible from the top of the document,
// i.e. the last row not hidden inside a collapsed container.
func (fd *FlatDocument) LastVisibleRow() int {
	if len(fd.Rows) == 0 {
		return Nil
	}
	i := len(fd.Rows) - 1
	row := &fd.Rows[i]
	if row.IsClosing() && row.Collapsed {
		return row.PairIndex
	}
	return i
}
