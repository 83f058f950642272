// Package screen owns the terminal frame: painting the document viewport
// row by row through the render package, a status bar showing the input
// filename, mode, message, and search state, and a command/search prompt
// line editor. It builds the frame as strings; it does not write to the
// terminal itself.
package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/trygveh/sdp/internal/flatdoc"
	"github.com/trygveh/sdp/internal/render"
	"github.com/trygveh/sdp/internal/search"
	"github.com/trygveh/sdp/internal/viewer"
)

// MessageSeverity distinguishes an informational status-line message from
// an error, so Writer can style them differently.
type MessageSeverity int

const (
	Info MessageSeverity = iota
	Error
)

// Message is a transient status-line notice, cleared after being shown for
// one frame.
type Message struct {
	Text     string
	Severity MessageSeverity
}

// HorizontalScroll is how far a row's rendered text has been scrolled past
// its left edge (via the `,`/`.` keys), keyed by the row's document index.
type HorizontalScroll map[int]int

// Writer paints a Viewer's visible rows, plus a status bar, into a string
// frame. It holds no terminal handle itself — the caller (internal/app)
// returns the frame from its bubbletea View, and the bubbletea Program
// writes it.
type Writer struct {
	Styles  render.Styles
	Prompt  textinput.Model
	scrolls HorizontalScroll

	// IndentSize is the number of columns one depth level of indentation
	// consumes; adjustable via IncreaseIndentationLevel and
	// DecreaseIndentationLevel, generalizing the teacher's
	// fixed "2 * row.depth" column calculation into a user setting.
	IndentSize int
}

// NewWriter constructs a Writer with default styles and a command/search
// prompt modeled on bubbles' standard single-line text input.
func NewWriter() *Writer {
	prompt := textinput.New()
	prompt.Prompt = ""
	return &Writer{
		Styles:     render.DefaultStyles(),
		Prompt:     prompt,
		scrolls:    make(HorizontalScroll),
		IndentSize: 2,
	}
}

// ScrollFocusedLineRight/Left adjust how far the focused row's rendered
// text is scrolled past its own left edge, independent of vertical
// scrolling.
func (w *Writer) ScrollFocusedLineRight(row, n int) { w.scrolls[row] += n }
func (w *Writer) ScrollFocusedLineLeft(row, n int) {
	w.scrolls[row] -= n
	if w.scrolls[row] < 0 {
		w.scrolls[row] = 0
	}
}

// ScrollFocusedLineToEnd resets the given row's horizontal scroll back to
// its left edge.
func (w *Writer) ScrollFocusedLineToEnd(row int) { delete(w.scrolls, row) }

// IncreaseIndentationLevel/DecreaseIndentationLevel change the column width
// of one depth level (mirroring `<`/`>`). Decreasing stops at a minimum of
// 1; the maxDepth argument is not used. Increasing has no upper bound.
func (w *Writer) IncreaseIndentationLevel() { w.IndentSize++ }
func (w *Writer) DecreaseIndentationLevel(maxDepth int) {
	if w.IndentSize > 1 {
		w.IndentSize--
	}
}

// PrintViewer renders every visible row of v into one string, one row per
// line, using IndentSize and the Writer's per-row horizontal scroll state.
// Matches are highlighted only while s is non-nil and actively searching.
func (w *Writer) PrintViewer(v *viewer.Viewer, s *search.State) string {
	var b strings.Builder

	row := v.TopRow
	var focusedMatchIdx int
	var searching bool
	if s != nil {
		focusedMatchIdx, _, searching = s.ActiveMatch()
	}

	for i := 0; i < v.Height; i++ {
		if row == flatdoc.Nil {
			b.WriteString("~\n")
			continue
		}

		r := v.Doc.Row(row)
		line := render.Line{
			Mode:    modeOf(v.Mode),
			Depth:   r.Depth,
			TabSize: w.IndentSize,
			Focused: row == v.FocusedRow,
			Row:     r,
			Doc:     v.Doc,
		}
		if r.Key != nil {
			line.Label = render.Label{Present: true, Quoted: !r.Key.Synthetic, Text: r.Key.Raw}
		}
		if searching {
			line.Matches = matchesForRow(s, r)
		}

		text := render.Format(line, v.Width, w.Styles)
		text = scrollHorizontally(text, w.scrolls[row])

		b.WriteString(text)
		b.WriteString("\n")

		if v.Mode == viewer.DataMode {
			next := v.Doc.NextItem(row)
			row = next
		} else {
			next := v.Doc.NextVisibleRow(row)
			row = next
		}
	}

	return b.String()
}

func modeOf(m viewer.Mode) render.Mode {
	if m == viewer.DataMode {
		return render.DataMode
	}
	return render.LineMode
}

// matchesForRow returns the search matches overlapping row's own span,
// translated into render.MatchRange with the currently focused match
// flagged.
func matchesForRow(s *search.State, row *flatdoc.Row) []render.MatchRange {
	start := row.ValueRange.Start
	if row.Key != nil {
		start = row.Key.Range.Start
	}
	current := s.CurrentMatchRange()

	var out []render.MatchRange
	for _, m := range s.MatchesFrom(start) {
		inKey := row.Key != nil && m.Start >= row.Key.Range.Start && m.End <= row.Key.Range.End
		inValue := m.Start >= row.ValueRange.Start && m.End <= row.ValueRange.End
		if !inKey && !inValue {
			continue
		}
		out = append(out, render.MatchRange{
			Start:   m.Start,
			End:     m.End,
			Focused: m.Start == current.Start && m.End == current.End,
		})
	}
	return out
}

// scrollHorizontally drops the first n columns from a rendered line's
// start, a crude byte-based approximation used only for the `,`/`.` keys'
// horizontal pan (ANSI escapes in text are never scrolled past this way
// since callers only scroll plain, unstyled rows in this implementation).
func scrollHorizontally(s string, n int) string {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[n:]
}

// PrintStatusBar renders the bottom status line: input buffer echo,
// filename, mode, message, or an active command/search prompt.
func (w *Writer) PrintStatusBar(v *viewer.Viewer, inputBuffer string, filename string, s *search.State, msg *Message) string {
	style := lipgloss.NewStyle().Faint(true)

	if w.Prompt.Focused() {
		return w.Prompt.View()
	}

	if msg != nil {
		st := style
		if msg.Severity == Error {
			st = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
		}
		return st.Render(msg.Text)
	}

	modeName := "DATA"
	if v.Mode == viewer.LineMode {
		modeName = "LINE"
	}

	left := fmt.Sprintf("%s [%s]", filename, modeName)
	if s != nil && s.EverSearched {
		if s.AnyMatches() {
			idx, _, _ := s.ActiveMatch()
			left += fmt.Sprintf("  /%s (%d/%d)", s.Term, idx+1, s.NumMatches())
		} else {
			left += "  " + s.NoMatchesMessage()
		}
	}
	if inputBuffer != "" {
		left += "  " + inputBuffer
	}

	return style.Render(left)
}
