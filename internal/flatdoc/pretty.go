package flatdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// PrettyPrintValue re-serializes the subtree rooted at i with two-space
// indentation and newlines, for external copy collaborators (clipboard).
func (fd *FlatDocument) PrettyPrintValue(i int) string {
	var b strings.Builder
	fd.writeIndented(&b, i, 0)
	return b.String()
}

func (fd *FlatDocument) writeIndented(b *strings.Builder, i, indent int) {
	row := &fd.Rows[i]
	switch row.Kind {
	case EmptyObject:
		b.WriteString("{}")
	case EmptyArray:
		b.WriteString("[]")
	case OpenObject, OpenArray:
		open, closing := "{", "}"
		if row.Kind == OpenArray {
			open, closing = "[", "]"
		}
		b.WriteString(open)
		b.WriteByte('\n')
		for child := row.FirstChild; child != Nil; {
			crow := &fd.Rows[child]
			writeIndent(b, indent+1)
			if crow.Key != nil {
				writeKeyLiteral(b, crow.Key)
				b.WriteString(": ")
			}
			fd.writeIndented(b, child, indent+1)
			if crow.NextSibling != Nil {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
			child = crow.NextSibling
		}
		writeIndent(b, indent)
		b.WriteString(closing)
	default:
		b.WriteString(fd.Pretty[row.ValueRange.Start:row.ValueRange.End])
	}
}

func writeIndent(b *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		b.WriteString("  ")
	}
}

func writeKeyLiteral(b *strings.Builder, key *Key) {
	if key.Synthetic {
		fmt.Fprintf(b, "[%s]", key.Raw)
		return
	}
	b.WriteString(strconv.Quote(key.Raw))
}
