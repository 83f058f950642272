package viewer

import "github.com/trygveh/sdp/internal/flatdoc"

// Action is a single navigation or display command the input loop can
// apply to a Viewer. Each constructor returns a concrete action value;
// Apply dispatches on its dynamic type.
type Action interface {
	apply(v *Viewer)
}

type moveUp struct{ n int }
type moveDown struct{ n int }
type moveLeft struct{}
type moveRight struct{}

type toggleCollapsed struct{}
type collapseNodeAndSiblings struct{}
type expandNodeAndSiblings struct{}

type focusParent struct{}
type focusFirstSibling struct{}
type focusLastSibling struct{}
type focusPrevSibling struct{ n int }
type focusNextSibling struct{ n int }
type focusTop struct{}
type focusBottom struct{}
type focusMatchingPair struct{}

type scrollUp struct{ n int }
type scrollDown struct{ n int }
type jumpUp struct{ n *int }
type jumpDown struct{ n *int }
type pageUp struct{ n int }
type pageDown struct{ n int }

type moveFocusedLineTo struct{ edge VerticalEdge }
type moveUpUntilDepthChange struct{}
type moveDownUntilDepthChange struct{}

type toggleMode struct{}
type resizeWindow struct{ width, height int }
type click struct{ screenRow int }

// MoveUp focuses the nth visible row above the current one (fewer if it
// runs out of rows); n <= 0 is a no-op.
func MoveUp(n int) Action { return moveUp{n} }

// MoveDown mirrors MoveUp.
func MoveDown(n int) Action { return moveDown{n} }

// MoveLeft collapses the focused container, or moves focus to its parent
// if already collapsed (or focused on a primitive).
func MoveLeft() Action { return moveLeft{} }

// MoveRight expands a collapsed focused container without moving focus;
// on an expanded opening row it descends into the first child, and on a
// closing row it moves to the previous visible row. Primitives are left
// alone.
func MoveRight() Action { return moveRight{} }

// ToggleCollapsed flips the focused container's collapsed state in place.
func ToggleCollapsed() Action { return toggleCollapsed{} }

// CollapseNodeAndSiblings collapses the focused row's parent's children
// (all of the focused row's siblings, including itself).
func CollapseNodeAndSiblings() Action { return collapseNodeAndSiblings{} }

// ExpandNodeAndSiblings is the dual of CollapseNodeAndSiblings.
func ExpandNodeAndSiblings() Action { return expandNodeAndSiblings{} }

// FocusParent moves focus to the focused row's parent container.
func FocusParent() Action { return focusParent{} }

// FocusFirstSibling moves focus to the first child of the focused row's
// parent (or the document root if at the top level).
func FocusFirstSibling() Action { return focusFirstSibling{} }

// FocusLastSibling mirrors FocusFirstSibling.
func FocusLastSibling() Action { return focusLastSibling{} }

// FocusPrevSibling moves focus n siblings back.
func FocusPrevSibling(n int) Action { return focusPrevSibling{n} }

// FocusNextSibling mirrors FocusPrevSibling.
func FocusNextSibling(n int) Action { return focusNextSibling{n} }

// FocusTop moves focus to the document's first row.
func FocusTop() Action { return focusTop{} }

// FocusBottom moves focus to the document's last row.
func FocusBottom() Action { return focusBottom{} }

// FocusMatchingPair jumps between a container's opening and closing rows.
func FocusMatchingPair() Action { return focusMatchingPair{} }

// ScrollUp moves the viewport n lines without moving the focused row,
// unless the focused row would fall outside the scrolloff margin.
func ScrollUp(n int) Action { return scrollUp{n} }

// ScrollDown mirrors ScrollUp.
func ScrollDown(n int) Action { return scrollDown{n} }

// JumpUp moves focus up by half the viewport height, or by n lines if
// non-nil.
func JumpUp(n *int) Action { return jumpUp{n} }

// JumpDown mirrors JumpUp.
func JumpDown(n *int) Action { return jumpDown{n} }

// PageUp moves focus up by n full viewport heights.
func PageUp(n int) Action { return pageUp{n} }

// PageDown mirrors PageUp.
func PageDown(n int) Action { return pageDown{n} }

// MoveFocusedLineToTop/Center/Bottom re-anchor the viewport so the focused
// row lands at the named edge. Apply re-applies the scrolloff margin
// afterwards, so with a non-zero margin the row ends up that many lines
// inside the edge.
func MoveFocusedLineToTop() Action    { return moveFocusedLineTo{Top} }
func MoveFocusedLineToCenter() Action { return moveFocusedLineTo{Center} }
func MoveFocusedLineToBottom() Action { return moveFocusedLineTo{Bottom} }

// MoveUpUntilDepthChange moves focus up to the nearest row at a different
// depth than the currently focused row.
func MoveUpUntilDepthChange() Action { return moveUpUntilDepthChange{} }

// MoveDownUntilDepthChange mirrors MoveUpUntilDepthChange.
func MoveDownUntilDepthChange() Action { return moveDownUntilDepthChange{} }

// ToggleMode switches between Line and Data display modes.
func ToggleMode() Action { return toggleMode{} }

// ResizeWindow updates the viewport dimensions, e.g. on a terminal resize.
func ResizeWindow(width, height int) Action { return resizeWindow{width, height} }

// Click focuses whichever row is rendered at screenRow (0-indexed from the
// top of the viewport).
func Click(screenRow int) Action { return click{screenRow} }

func (a moveUp) apply(v *Viewer) {
	row := v.FocusedRow
	for i := 0; i < a.n; i++ {
		p := v.prev(row)
		if p == flatdoc.Nil {
			break
		}
		row = p
	}
	v.FocusedRow = row
}

func (a moveDown) apply(v *Viewer) {
	row := v.FocusedRow
	for i := 0; i < a.n; i++ {
		n := v.next(row)
		if n == flatdoc.Nil {
			break
		}
		row = n
	}
	v.FocusedRow = row
}

func (moveRight) apply(v *Viewer) {
	row := v.Doc.Row(v.FocusedRow)
	if row.IsPrimitive() {
		return
	}

	if row.IsCollapsed() {
		v.Doc.Expand(v.FocusedRow)
		return
	}

	if row.IsOpening() {
		v.FocusedRow = row.FirstChild
	} else {
		v.FocusedRow = v.Doc.PrevVisibleRow(v.FocusedRow)
	}
}

func (moveLeft) apply(v *Viewer) {
	row := v.Doc.Row(v.FocusedRow)
	if row.IsContainer() && row.IsExpanded() {
		v.Doc.Collapse(v.FocusedRow)
		if v.Doc.Row(v.FocusedRow).IsClosing() {
			v.FocusedRow = v.Doc.Row(v.FocusedRow).PairIndex
		}
		return
	}

	if row.Parent != flatdoc.Nil {
		v.FocusedRow = row.Parent
	}
}

func (toggleCollapsed) apply(v *Viewer) {
	row := v.Doc.Row(v.FocusedRow)
	if row.IsPrimitive() {
		return
	}

	if row.IsClosing() {
		v.FocusedRow = row.PairIndex
	}

	v.Doc.ToggleCollapsed(v.FocusedRow)
}

// siblingRange returns the first and last sibling row of the focused row
// (inclusive of itself), i.e. its parent's FirstChild/LastChild, or the
// document's own top-level bounds if the focused row is at the root.
func (v *Viewer) siblingRange() (first, last int) {
	row := v.Doc.Row(v.FocusedRow)
	if row.Parent == flatdoc.Nil {
		return v.Doc.FirstTopLevelRow(), v.lastTopLevelRow()
	}
	parent := v.Doc.Row(row.Parent)
	return parent.FirstChild, parent.LastChild
}

func (v *Viewer) lastTopLevelRow() int {
	last := v.Doc.FirstTopLevelRow()
	for n := v.Doc.Row(last).NextSibling; n != flatdoc.Nil; n = v.Doc.Row(last).NextSibling {
		last = n
	}
	return last
}

func (collapseNodeAndSiblings) apply(v *Viewer) {
	first, last := v.siblingRange()
	for r := first; r != flatdoc.Nil; r = v.Doc.Row(r).NextSibling {
		if v.Doc.Row(r).IsContainer() {
			v.Doc.Collapse(r)
		}
		if r == last {
			break
		}
	}
	if v.Doc.Row(v.FocusedRow).IsClosing() {
		v.FocusedRow = v.Doc.Row(v.FocusedRow).PairIndex
	}
}

func (expandNodeAndSiblings) apply(v *Viewer) {
	first, last := v.siblingRange()
	for r := first; r != flatdoc.Nil; r = v.Doc.Row(r).NextSibling {
		if v.Doc.Row(r).IsContainer() {
			v.Doc.Expand(r)
		}
		if r == last {
			break
		}
	}
}

func (focusParent) apply(v *Viewer) {
	if p := v.Doc.Row(v.FocusedRow).Parent; p != flatdoc.Nil {
		v.FocusedRow = p
	}
}

func (focusFirstSibling) apply(v *Viewer) {
	first, _ := v.siblingRange()
	v.FocusedRow = first
}

func (focusLastSibling) apply(v *Viewer) {
	_, last := v.siblingRange()
	v.FocusedRow = last
}

func (a focusPrevSibling) apply(v *Viewer) {
	row := v.FocusedRow
	for i := 0; i < a.n; i++ {
		p := v.Doc.Row(row).PrevSibling
		if p == flatdoc.Nil {
			break
		}
		row = p
	}
	v.FocusedRow = row
}

func (a focusNextSibling) apply(v *Viewer) {
	row := v.FocusedRow
	for i := 0; i < a.n; i++ {
		n := v.Doc.Row(row).NextSibling
		if n == flatdoc.Nil {
			break
		}
		row = n
	}
	v.FocusedRow = row
}

func (focusTop) apply(v *Viewer) { v.FocusedRow = v.Doc.FirstTopLevelRow() }

func (focusBottom) apply(v *Viewer) { v.FocusedRow = v.Doc.LastVisibleRow() }

func (focusMatchingPair) apply(v *Viewer) {
	row := v.Doc.Row(v.FocusedRow)
	if row.IsContainer() && row.PairIndex != flatdoc.Nil {
		v.FocusedRow = row.PairIndex
	}
}

func (a scrollUp) apply(v *Viewer) {
	v.TopRow = v.rowAtLineOffset(v.TopRow, -a.n)
}

func (a scrollDown) apply(v *Viewer) {
	v.TopRow = v.rowAtLineOffset(v.TopRow, a.n)
}

func (v *Viewer) halfHeight() int {
	h := v.Height / 2
	if h < 1 {
		h = 1
	}
	return h
}

func (a jumpUp) apply(v *Viewer) {
	n := v.halfHeight()
	if a.n != nil {
		n = *a.n
	}
	moveUp{n}.apply(v)
}

func (a jumpDown) apply(v *Viewer) {
	n := v.halfHeight()
	if a.n != nil {
		n = *a.n
	}
	moveDown{n}.apply(v)
}

func (a pageUp) apply(v *Viewer) {
	moveUp{a.n * v.Height}.apply(v)
}

func (a pageDown) apply(v *Viewer) {
	moveDown{a.n * v.Height}.apply(v)
}

func (a moveFocusedLineTo) apply(v *Viewer) {
	switch a.edge {
	case Top:
		v.TopRow = v.FocusedRow
	case Bottom:
		v.TopRow = v.rowAtLineOffset(v.FocusedRow, -(v.Height - 1))
	case Center:
		v.TopRow = v.rowAtLineOffset(v.FocusedRow, -(v.Height / 2))
	}
}

func (moveUpUntilDepthChange) apply(v *Viewer) {
	startDepth := v.Doc.Row(v.FocusedRow).Depth
	row := v.FocusedRow
	for {
		p := v.prev(row)
		if p == flatdoc.Nil {
			break
		}
		row = p
		if v.Doc.Row(row).Depth != startDepth {
			break
		}
	}
	v.FocusedRow = row
}

func (moveDownUntilDepthChange) apply(v *Viewer) {
	startDepth := v.Doc.Row(v.FocusedRow).Depth
	row := v.FocusedRow
	for {
		n := v.next(row)
		if n == flatdoc.Nil {
			break
		}
		row = n
		if v.Doc.Row(row).Depth != startDepth {
			break
		}
	}
	v.FocusedRow = row
}

func (toggleMode) apply(v *Viewer) {
	if v.Mode == LineMode {
		v.Mode = DataMode
	} else {
		v.Mode = LineMode
	}
}

func (a resizeWindow) apply(v *Viewer) {
	v.Width = a.width
	v.Height = a.height
}

func (a click) apply(v *Viewer) {
	row := v.TopRow
	for i := 0; i < a.screenRow; i++ {
		n := v.next(row)
		if n == flatdoc.Nil {
			break
		}
		row = n
	}
	v.FocusedRow = row
}
