package flatdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildFixtureWithValues constructs {"a": 1, "b": [true, "x"]}, writing real
// pretty-text bytes so ValueRange slices resolve to something meaningful.
func buildFixtureWithValues() *FlatDocument {
	b := NewBuilder()
	b.OpenContainer(Object, nil) // 0

	start := b.Pos()
	b.WriteString("1")
	idx := b.Primitive(Number, &Key{Raw: "a"})
	b.SetValueRange(idx, b.Span(start))

	b.OpenContainer(Array, &Key{Raw: "b"}) // 2

	start = b.Pos()
	b.WriteString("true")
	idx = b.Primitive(Boolean, nil)
	b.SetValueRange(idx, b.Span(start))

	start = b.Pos()
	b.WriteString(`"x"`)
	idx = b.Primitive(String, nil)
	b.SetValueRange(idx, b.Span(start))

	b.CloseContainer() // closes array
	b.CloseContainer() // closes root
	return b.Build()
}

func TestPrettyPrintValue(t *testing.T) {
	fd := buildFixtureWithValues()

	got := fd.PrettyPrintValue(0)
	want := "{\n  \"a\": 1,\n  \"b\": [\n    true,\n    \"x\"\n  ]\n}"
	assert.Equal(t, want, got, "PrettyPrintValue(root)")

	// A subtree re-serializes starting fresh at indent 0.
	arrayIdx := 2
	gotArr := fd.PrettyPrintValue(arrayIdx)
	wantArr := "[\n  true,\n  \"x\"\n]"
	assert.Equal(t, wantArr, gotArr, "PrettyPrintValue(array)")
}

func TestPrettyPrintEmptyContainer(t *testing.T) {
	b := NewBuilder()
	b.EmptyContainer(Object, nil)
	fd := b.Build()

	assert.Equal(t, "{}", fd.PrettyPrintValue(0))
}
