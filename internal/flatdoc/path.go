package flatdoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PathStyle selects one of the four textual path flavors from spec §4.1.
type PathStyle int

const (
	Dot PathStyle = iota
	Bracket
	Query
	DotWithTopLevelIndex
)

// ErrNonStringKeyPath is returned by BuildPathTo(Query, ...) when the
// document contains any non-string mapping key.
var ErrNonStringKeyPath = errors.New("flatdoc: query-style paths require an all-string-key document")

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetterOrUnderscore := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 {
			if !isLetterOrUnderscore {
				return false
			}
		} else if !isLetterOrUnderscore && !isDigit {
			return false
		}
	}
	return true
}

// BuildPathTo walks parent links from i up to its top-level ancestor and
// renders one of the four path flavors for row i. The four flavors share
// this one recursive-by-iteration walk; each key/index emits its
// flavor-specific token, matching flatjson.rs's build_path_to_node.
func (fd *FlatDocument) BuildPathTo(i int, style PathStyle) (string, error) {
	if style == Query && fd.HasNonStringKeys {
		return "", ErrNonStringKeyPath
	}

	// Collect the chain root -> ... -> i.
	chain := make([]int, 0, fd.Rows[i].Depth+1)
	for idx := i; idx != Nil; idx = fd.Rows[idx].Parent {
		chain = append(chain, idx)
	}
	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}

	var b strings.Builder

	if style == DotWithTopLevelIndex && fd.TopLevelCount > 1 {
		fmt.Fprintf(&b, "[%d]", fd.Rows[chain[0]].IndexInParent)
	}

	for _, idx := range chain {
		row := &fd.Rows[idx]
		if row.Key != nil {
			writeKeySegment(&b, row.Key, style)
		} else if row.Parent != Nil {
			// Array element.
			if style == Query {
				b.WriteString("[]")
			} else {
				fmt.Fprintf(&b, "[%d]", row.IndexInParent)
			}
		}
		// Top-level rows with neither a Key nor a Parent contribute no
		// segment of their own (the path to the whole document is "").
	}

	return b.String(), nil
}

func writeKeySegment(b *strings.Builder, key *Key, style PathStyle) {
	if key.Synthetic {
		fmt.Fprintf(b, "[%s]", key.Raw)
		return
	}

	switch style {
	case Bracket:
		fmt.Fprintf(b, "[%s]", strconv.Quote(key.Raw))
	case Dot, DotWithTopLevelIndex, Query:
		if isValidIdentifier(key.Raw) {
			b.WriteByte('.')
			b.WriteString(key.Raw)
		} else {
			fmt.Fprintf(b, "[%s]", strconv.Quote(key.Raw))
		}
	}
}
