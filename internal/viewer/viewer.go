// Package viewer holds the cursor/scroll state machine that sits between a
// parsed document and the screen: which row is focused, which row is at the
// top of the viewport, the current display mode, and the scrolloff margin
// that keeps the focused row away from the viewport's edges.
package viewer

import "github.com/trygveh/sdp/internal/flatdoc"

// Mode mirrors flatdoc/render's line-vs-data display modes.
type Mode int

const (
	LineMode Mode = iota
	DataMode
)

// VerticalEdge names the destination of MoveFocusedLineTo.
type VerticalEdge int

const (
	Top VerticalEdge = iota
	Center
	Bottom
)

// Viewer is the cursor/scroll/mode state for one open document. It never
// touches the terminal; Apply only ever updates its own fields.
type Viewer struct {
	Doc *flatdoc.FlatDocument

	TopRow     int
	FocusedRow int

	Height         int
	Width          int
	Mode           Mode
	ScrolloffSetting int
}

// New creates a Viewer focused on the document's first row.
func New(doc *flatdoc.FlatDocument, mode Mode, scrolloff int) *Viewer {
	return &Viewer{
		Doc:              doc,
		TopRow:           0,
		FocusedRow:       0,
		Mode:             mode,
		ScrolloffSetting: scrolloff,
	}
}

// Apply performs action against the viewer's state, then re-clamps TopRow so
// FocusedRow stays inside the scrolloff margin.
func (v *Viewer) Apply(action Action) {
	action.apply(v)
	v.maintainScrolloffInvariant()
}

// maintainScrolloffInvariant nudges TopRow so that FocusedRow stays at least
// ScrolloffSetting rows from either edge of the viewport whenever the
// document is tall enough to allow it — generalizing the soft-margin
// viewport scroll used for tree navigation elsewhere in this codebase to a
// user-configurable margin.
func (v *Viewer) maintainScrolloffInvariant() {
	if v.Height <= 0 {
		return
	}

	margin := v.ScrolloffSetting
	maxMargin := (v.Height - 1) / 2
	if margin > maxMargin {
		margin = maxMargin
	}
	if margin < 0 {
		margin = 0
	}

	focusedLine := v.lineIndex(v.FocusedRow)

	if topLine := v.lineIndex(v.TopRow); focusedLine-topLine < margin {
		v.TopRow = v.rowAtLineOffset(v.FocusedRow, -margin)
	}

	bottomLine := v.lineIndex(v.TopRow) + v.Height - 1
	if focusedLine+margin > bottomLine {
		v.TopRow = v.rowAtLineOffset(v.FocusedRow, -(v.Height - 1 - margin))
	}

	if v.lineIndex(v.TopRow) > focusedLine {
		v.TopRow = v.FocusedRow
	}
}

// lineIndex returns row's 0-based line position: the number of visible rows
// (respecting Mode) above it, counted from the top of the document.
func (v *Viewer) lineIndex(row int) int {
	n := 0
	r := v.firstVisible()
	for r != flatdoc.Nil && r != row {
		r = v.next(r)
		n++
	}
	return n
}

// rowAtLineOffset returns the row reached by walking offset visible lines
// from row (negative moves toward the top), clamped to the first/last
// visible row.
func (v *Viewer) rowAtLineOffset(row, offset int) int {
	r := row
	if offset < 0 {
		for i := 0; i > offset; i-- {
			p := v.prev(r)
			if p == flatdoc.Nil {
				break
			}
			r = p
		}
	} else {
		for i := 0; i < offset; i++ {
			n := v.next(r)
			if n == flatdoc.Nil {
				break
			}
			r = n
		}
	}
	return r
}

func (v *Viewer) firstVisible() int {
	return v.Doc.FirstTopLevelRow()
}

func (v *Viewer) next(row int) int {
	if v.Mode == DataMode {
		return v.Doc.NextItem(row)
	}
	return v.Doc.NextVisibleRow(row)
}

func (v *Viewer) prev(row int) int {
	if v.Mode == DataMode {
		return v.Doc.PrevItem(row)
	}
	return v.Doc.PrevVisibleRow(row)
}
