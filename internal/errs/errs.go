// Package errs defines the small closed set of error kinds used throughout
// the pager, each carrying a severity for status-bar rendering.
package errs

import "fmt"

// Severity controls how a status-bar message is styled.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warn:
		return "warn"
	default:
		return "error"
	}
}

// Kind is the closed set of error categories from spec §7.
type Kind int

const (
	Config Kind = iota
	Parse
	Regex
	SearchMiss
	CommandUnknown
	Clipboard
	IO
)

func (k Kind) Severity() Severity {
	switch k {
	case Parse, Clipboard:
		return Error
	case SearchMiss:
		return Warn
	case CommandUnknown:
		return Info
	case Config, Regex, IO:
		return Error
	default:
		return Error
	}
}

// Err is a sum-type-flavored error: a Kind plus a message and, for Parse
// errors, a line/column location.
type Err struct {
	Kind    Kind
	Line    int // 1-based; 0 when not applicable
	Column  int // 1-based; 0 when not applicable
	Message string
}

func (e *Err) Error() string {
	if e.Kind == Parse && e.Line > 0 {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// Severity reports the status-bar severity for this error.
func (e *Err) Severity() Severity { return e.Kind.Severity() }

func New(kind Kind, format string, args ...any) *Err {
	return &Err{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewParse(line, col int, format string, args ...any) *Err {
	return &Err{Kind: Parse, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

// SearchMissMessage formats the fixed status-bar wording for a failed search.
func SearchMissMessage(pattern string) string {
	return fmt.Sprintf("Pattern not found: %s", pattern)
}
