// Package term writes the low-level escape sequences a terminal frontend
// needs — cursor positioning, colors, and text attributes — behind a small
// interface so tests can assert on a readable transcript instead of raw
// ANSI bytes.
package term

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Control is the escape-sequence surface a screen writer depends on. Real
// terminal output goes through AnsiTerminal; tests use NopTerminal (no
// output at all) or EscapeLogTerminal (a readable transcript).
type Control interface {
	PositionCursor(w io.Writer, col int) error
	SetForeground(w io.Writer, color lipgloss.Color) error
	SetBackground(w io.Writer, color lipgloss.Color) error
	SetBold(w io.Writer, bold bool) error
	SetInverted(w io.Writer, inverted bool) error
	ResetStyle(w io.Writer) error
}

// AnsiTerminal emits real ANSI/SGR escape sequences, the counterpart of
// ColorControl.
type AnsiTerminal struct{}

func (AnsiTerminal) PositionCursor(w io.Writer, col int) error {
	_, err := fmt.Fprintf(w, "\x1b[%dG", col)
	return err
}

func (AnsiTerminal) SetForeground(w io.Writer, color lipgloss.Color) error {
	_, err := fmt.Fprintf(w, "\x1b[38;5;%sm", string(color))
	return err
}

func (AnsiTerminal) SetBackground(w io.Writer, color lipgloss.Color) error {
	_, err := fmt.Fprintf(w, "\x1b[48;5;%sm", string(color))
	return err
}

func (AnsiTerminal) SetBold(w io.Writer, bold bool) error {
	if bold {
		_, err := fmt.Fprint(w, "\x1b[1m")
		return err
	}
	_, err := fmt.Fprint(w, "\x1b[22m")
	return err
}

func (AnsiTerminal) SetInverted(w io.Writer, inverted bool) error {
	if inverted {
		_, err := fmt.Fprint(w, "\x1b[7m")
		return err
	}
	_, err := fmt.Fprint(w, "\x1b[27m")
	return err
}

func (AnsiTerminal) ResetStyle(w io.Writer) error {
	_, err := fmt.Fprint(w, "\x1b[0m")
	return err
}

// NopTerminal discards every escape, the counterpart of EmptyControl — used
// when measuring plain-text layout without caring about styling output.
type NopTerminal struct{}

func (NopTerminal) PositionCursor(io.Writer, int) error                 { return nil }
func (NopTerminal) SetForeground(io.Writer, lipgloss.Color) error       { return nil }
func (NopTerminal) SetBackground(io.Writer, lipgloss.Color) error       { return nil }
func (NopTerminal) SetBold(io.Writer, bool) error                       { return nil }
func (NopTerminal) SetInverted(io.Writer, bool) error                   { return nil }
func (NopTerminal) ResetStyle(io.Writer) error                          { return nil }

// EscapeLogTerminal writes a readable, bracketed transcript instead of raw
// escapes (`_C(5)_`, `_FG(#ff0000)_`, ...), the counterpart of
// VisibleEscapes — used by tests that want to assert on what was written
// without decoding ANSI.
type EscapeLogTerminal struct {
	// LogPosition and LogStyle independently gate which categories of call
	// produce output, mirroring VisibleEscapes's position/style fields.
	LogPosition bool
	LogStyle    bool
}

// NewEscapeLogTerminal returns a terminal that logs both position and style
// escapes.
func NewEscapeLogTerminal() EscapeLogTerminal {
	return EscapeLogTerminal{LogPosition: true, LogStyle: true}
}

func (t EscapeLogTerminal) PositionCursor(w io.Writer, col int) error {
	if !t.LogPosition {
		return nil
	}
	_, err := fmt.Fprintf(w, "_C(%d)_", col)
	return err
}

func (t EscapeLogTerminal) SetForeground(w io.Writer, color lipgloss.Color) error {
	if !t.LogStyle {
		return nil
	}
	_, err := fmt.Fprintf(w, "_FG(%s)_", color)
	return err
}

func (t EscapeLogTerminal) SetBackground(w io.Writer, color lipgloss.Color) error {
	if !t.LogStyle {
		return nil
	}
	_, err := fmt.Fprintf(w, "_BG(%s)_", color)
	return err
}

func (t EscapeLogTerminal) SetBold(w io.Writer, bold bool) error {
	if !t.LogStyle {
		return nil
	}
	if bold {
		_, err := fmt.Fprint(w, "_BLD_")
		return err
	}
	_, err := fmt.Fprint(w, "_UNBLD_")
	return err
}

func (t EscapeLogTerminal) SetInverted(w io.Writer, inverted bool) error {
	if !t.LogStyle {
		return nil
	}
	if inverted {
		_, err := fmt.Fprint(w, "_INV_")
		return err
	}
	_, err := fmt.Fprint(w, "_UNINV_")
	return err
}

func (t EscapeLogTerminal) ResetStyle(w io.Writer) error {
	if !t.LogStyle {
		return nil
	}
	_, err := fmt.Fprint(w, "_R_")
	return err
}
