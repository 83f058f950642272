// Package strview provides unicode-aware helpers for fitting text into a
// fixed number of terminal columns: truncating a string to a hard budget,
// and scrolling a long value horizontally a grapheme at a time. Both are
// grapheme-cluster and East-Asian-width aware so wide characters (CJK,
// emoji) are never split in half.
package strview

import (
	"sort"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	ellipsis          = "…"
	replacementRune   = "�"
)

// boundaries returns the byte offsets of every grapheme cluster boundary in
// s, including 0 and len(s). len(boundaries)-1 is the cluster count.
func boundaries(s string) []int {
	bounds := make([]int, 0, len(s)+1)
	bounds = append(bounds, 0)
	pos := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		start, end := gr.Positions()
		_ = start
		pos = end
		bounds = append(bounds, pos)
	}
	return bounds
}

func width(s string) int { return runewidth.StringWidth(s) }

// TruncationKind identifies which case TruncateRightToFit/TruncateLeftToFit
// returned.
type TruncationKind int

const (
	NoTruncation TruncationKind = iota
	Truncated
	DoesntFit
)

// TruncationResult is the outcome of trying to fit input, plus a
// replacement marker, into availableSpace columns.
type TruncationResult struct {
	Kind TruncationKind
	// Text holds the truncated prefix/suffix when Kind == Truncated.
	Text string
	// Width is the display width of the untouched input (NoTruncation) or
	// of Text plus the replacement string (Truncated).
	Width int
}

// TruncateRightToFit keeps a prefix of input and drops characters from the
// right/end, as when showing the start of an overly long line.
func TruncateRightToFit(input string, availableSpace int, replacement string) TruncationResult {
	return truncateToFit(input, availableSpace, replacement, true)
}

// TruncateLeftToFit keeps a suffix of input and drops characters from the
// left/start.
func TruncateLeftToFit(input string, availableSpace int, replacement string) TruncationResult {
	return truncateToFit(input, availableSpace, replacement, false)
}

func truncateToFit(input string, availableSpace int, replacement string, fromRight bool) TruncationResult {
	inputWidth := width(input)
	replacementWidth := width(replacement)

	if inputWidth <= availableSpace {
		return TruncationResult{Kind: NoTruncation, Width: inputWidth}
	}

	bounds := boundaries(input)
	n := len(bounds) - 1

	currentWidth := inputWidth + replacementWidth
	remainingWidth := inputWidth
	consumed := 0

	for consumed < n {
		var g string
		if fromRight {
			g = input[bounds[n-1-consumed]:bounds[n-consumed]]
		} else {
			g = input[bounds[consumed]:bounds[consumed+1]]
		}
		gw := width(g)
		currentWidth -= gw
		remainingWidth -= gw
		consumed++
		if currentWidth <= availableSpace {
			break
		}
	}

	remaining := n - consumed
	if remaining == 0 {
		return TruncationResult{Kind: DoesntFit}
	}

	var text string
	if fromRight {
		text = input[:bounds[remaining]]
	} else {
		text = input[bounds[consumed]:]
	}

	return TruncationResult{
		Kind:  Truncated,
		Text:  text,
		Width: remainingWidth + replacementWidth,
	}
}

// clusterIndex returns the position of pos within a boundaries slice,
// i.e. which grapheme (if any) starts exactly there.
func clusterIndex(bounds []int, pos int) int {
	return sort.SearchInts(bounds, pos)
}

// MinRequiredColumns returns the minimum column budget for which
// TruncateRightToFit(s, budget, "…") will not report DoesntFit: either s's
// full width if it's already narrow enough to show whole, or the width of
// one grapheme plus the ellipsis.
func MinRequiredColumns(s string) int {
	w := width(s)
	if w == 0 {
		return 0
	}
	if w <= 2 {
		return w
	}
	bounds := boundaries(s)
	return width(s[:bounds[1]]) + 1
}
