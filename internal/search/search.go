// Package search compiles a user-typed search pattern into a regular
// expression, finds every match in a flatdoc.FlatDocument's pretty text, and
// walks the focused row forward/backward through the match list one jump at
// a time, skipping past matches hidden inside an already-visited collapsed
// container.
package search

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/trygveh/sdp/internal/flatdoc"
)

// Direction is the direction a search was originally started in (bound to
// the `/` or `?` prompt key that opened it).
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// JumpDirection is which way a single jump (`n`/`N`) should move, relative
// to the search's Direction.
type JumpDirection int

const (
	Next JumpDirection = iota
	Prev
)

type immediateKind int

const (
	notSearching immediateKind = iota
	activelySearching
)

// State holds a compiled search: the match list, and (once a jump has been
// made) which match is focused and whether the last jump wrapped around the
// document.
type State struct {
	Direction    Direction
	Term         string
	EverSearched bool

	doc      *flatdoc.FlatDocument
	matches  []flatdoc.Span
	rowSpans []flatdoc.Span

	kind                             immediateKind
	lastMatchIndex                   int
	lastSearchIntoCollapsedContainer bool
	justWrapped                      bool
}

// Empty returns a State with no pattern and no matches, as if the user has
// never searched.
func Empty() *State {
	return &State{kind: notSearching}
}

var bracketEscapes = regexp.MustCompile(`\\\[|\[|\\\]|\]|\\\{|\{|\\\}|\}`)

// invertBracketEscaping flips the escaping of square and curly brackets, so
// that a user types them literally to match them and escapes them to get
// their regex meaning (opposite of the usual regex convention).
func invertBracketEscaping(pattern string) string {
	return bracketEscapes.ReplaceAllStringFunc(pattern, func(m string) string {
		switch m {
		case `\[`:
			return `[`
		case `[`:
			return `\[`
		case `\]`:
			return `]`
		case `]`:
			return `\]`
		case `\{`:
			return `{`
		case `{`:
			return `\{`
		case `\}`:
			return `}`
		case `}`:
			return `\}`
		default:
			return m
		}
	})
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// extractTermAndCase strips a trailing "/" (end-of-pattern marker) or "/s"
// (explicit case-sensitivity marker) and decides case sensitivity: explicit
// if "/s" was present, otherwise smart-case (case-sensitive iff the pattern
// contains an uppercase letter).
func extractTermAndCase(input string) (term string, caseSensitive bool) {
	if stripped, ok := strings.CutSuffix(input, "/"); ok {
		return stripped, hasUpper(stripped)
	}
	if stripped, ok := strings.CutSuffix(input, "/s"); ok {
		return stripped, true
	}
	return input, hasUpper(input)
}

// Compile builds a State from user input against doc. An empty pattern (or
// one that reduces to empty after stripping its trailing marker) yields
// Empty(), matching the behavior of clearing a search.
func Compile(input string, doc *flatdoc.FlatDocument, direction Direction) (*State, error) {
	term, caseSensitive := extractTermAndCase(input)
	if term == "" {
		return Empty(), nil
	}

	pattern := invertBracketEscaping(term)
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %s", err)
	}

	found := re.FindAllStringIndex(doc.Pretty, -1)
	matches := make([]flatdoc.Span, len(found))
	for i, m := range found {
		matches[i] = flatdoc.Span{Start: m[0], End: m[1]}
	}

	return &State{
		Direction:    direction,
		Term:         term,
		EverSearched: true,
		doc:          doc,
		matches:      matches,
		rowSpans:     computeRowSpans(doc),
		kind:         notSearching,
	}, nil
}

// computeRowSpans derives, for every row, the byte span within doc.Pretty
// that belongs to that row alone (its key plus its own value, not its
// children's). Rows with no bytes of their own — container open/close rows,
// and empty containers — get a zero-width span at the start of the next
// row's token. Tokens appear in doc.Pretty in row order (the JSON parser
// packs them back-to-back; the YAML parser also writes punctuation between
// them), so the spans stay in ascending order (see DESIGN.md's pretty-text
// note).
func computeRowSpans(doc *flatdoc.FlatDocument) []flatdoc.Span {
	n := len(doc.Rows)
	spans := make([]flatdoc.Span, n)
	nextTokenStart := len(doc.Pretty)

	for i := n - 1; i >= 0; i-- {
		row := &doc.Rows[i]
		hasToken := row.IsPrimitive() && !row.IsEmptyContainer()

		switch {
		case hasToken:
			start := row.ValueRange.Start
			if row.Key != nil && row.Key.Range.Start < start {
				start = row.Key.Range.Start
			}
			spans[i] = flatdoc.Span{Start: start, End: row.ValueRange.End}
			nextTokenStart = start
		case row.Key != nil:
			spans[i] = row.Key.Range
			nextTokenStart = row.Key.Range.Start
		default:
			spans[i] = flatdoc.Span{Start: nextTokenStart, End: nextTokenStart}
		}
	}

	return spans
}

func (s *State) NumMatches() int   { return len(s.matches) }
func (s *State) AnyMatches() bool  { return len(s.matches) > 0 }
func (s *State) NoMatchesMessage() string {
	return fmt.Sprintf("Pattern not found: %s", s.Term)
}

// SetNoLongerActivelySearching drops the focused-match/wrap state without
// discarding the match list, e.g. when the user dismisses the search
// without navigating.
func (s *State) SetNoLongerActivelySearching() { s.kind = notSearching }

// ActiveMatch reports the currently focused match index and whether the
// most recent jump wrapped, or ok=false if no jump has been made yet.
func (s *State) ActiveMatch() (index int, wrapped bool, ok bool) {
	if s.kind != activelySearching {
		return 0, false, false
	}
	return s.lastMatchIndex, s.justWrapped, true
}

// CurrentMatchRange returns the byte range of the focused match, or the zero
// Span if not actively searching.
func (s *State) CurrentMatchRange() flatdoc.Span {
	if s.kind != activelySearching {
		return flatdoc.Span{}
	}
	return s.matches[s.lastMatchIndex]
}

// MatchesFrom returns the matches (in ascending order) whose end is at or
// past rangeStart, or nil if not actively searching. The line formatter
// consumes this in lockstep with its grapheme walk.
func (s *State) MatchesFrom(rangeStart int) []flatdoc.Span {
	if s.kind != activelySearching {
		return nil
	}
	i := sort.Search(len(s.matches), func(i int) bool { return s.matches[i].End >= rangeStart })
	return s.matches[i:]
}

// Jump moves from focusedRow by jumps matches in jumpDirection (relative to
// the search's stored Direction) and returns the row to focus next. Panics
// if there are no matches; callers must check AnyMatches first.
func (s *State) Jump(focusedRow int, jumpDir JumpDirection, jumps int) int {
	if len(s.matches) == 0 {
		panic("search: Jump called with no matches")
	}

	trueDir := s.trueDirection(jumpDir)
	nextMatchIndex := s.getNextMatch(focusedRow, trueDir, jumps)
	rowContainingMatch := s.computeDestinationRow(nextMatchIndex)
	nextFocusedRow := s.doc.FirstVisibleAncestor(rowContainingMatch)

	var wrapped bool
	if focusedRow == nextFocusedRow {
		if s.kind == activelySearching {
			wrapped = s.lastMatchIndex == nextMatchIndex
		} else {
			wrapped = true
		}
	} else {
		switch trueDir {
		case Forward:
			wrapped = nextFocusedRow < focusedRow
		case Reverse:
			wrapped = nextFocusedRow > focusedRow
		}
	}

	s.kind = activelySearching
	s.lastMatchIndex = nextMatchIndex
	s.lastSearchIntoCollapsedContainer = rowContainingMatch != nextFocusedRow
	s.justWrapped = wrapped

	return nextFocusedRow
}

func (s *State) trueDirection(jumpDir JumpDirection) Direction {
	switch {
	case s.Direction == Forward && jumpDir == Next:
		return Forward
	case s.Direction == Forward && jumpDir == Prev:
		return Reverse
	case s.Direction == Reverse && jumpDir == Next:
		return Reverse
	default: // Reverse, Prev
		return Forward
	}
}

func (s *State) getNextMatch(focusedRow int, trueDir Direction, jumps int) int {
	if s.kind == notSearching {
		row := s.rowSpans[focusedRow]

		switch trueDir {
		case Forward:
			// First match starting at or after the end of the focused
			// row's own (half-open) span; wrap to the first match if
			// there is none.
			n := sort.Search(len(s.matches), func(i int) bool { return s.matches[i].Start >= row.End })
			idx := n
			if n == len(s.matches) {
				idx = 0
			}
			return s.cycleMatch(idx, jumps-1)
		default:
			// Last match ending strictly before the focused row's own
			// span; wrap to the last match if there is none.
			n := sort.Search(len(s.matches), func(i int) bool { return s.matches[i].End >= row.Start })
			var idx int
			if n == 0 {
				idx = len(s.matches) - 1
			} else {
				idx = n - 1
			}
			return s.cycleMatch(idx, -(jumps - 1))
		}
	}

	delta := jumps
	if trueDir == Reverse {
		delta = -jumps
	}

	if s.lastSearchIntoCollapsedContainer {
		start := s.lastMatchIndex
		next := s.cycleMatch(start, delta)
		for next != start {
			destRow := s.computeDestinationRow(next)
			ancestor := s.doc.FirstVisibleAncestor(destRow)
			if ancestor != focusedRow {
				break
			}
			next = s.cycleMatch(next, delta)
		}
		return next
	}

	return s.cycleMatch(s.lastMatchIndex, delta)
}

// cycleMatch advances matchIndex by delta, wrapping modulo the match count.
func (s *State) cycleMatch(matchIndex int, delta int) int {
	n := len(s.matches)
	v := (matchIndex + delta) % n
	if v < 0 {
		v += n
	}
	return v
}

// computeDestinationRow returns the last row whose own span starts at or
// before the match's start: the row the match's text actually belongs to.
func (s *State) computeDestinationRow(matchIndex int) int {
	m := s.matches[matchIndex]
	n := sort.Search(len(s.rowSpans), func(i int) bool { return s.rowSpans[i].Start > m.Start })
	return n - 1
}
