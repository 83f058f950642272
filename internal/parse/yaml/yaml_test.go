package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trygveh/sdp/internal/flatdoc"
)

func mustParse(t *testing.T, src string) *flatdoc.FlatDocument {
	t.Helper()
	fd, err := Parse(src)
	require.NoError(t, err, "Parse(%q)", src)
	return fd
}

func TestParseScalarKinds(t *testing.T) {
	fd := mustParse(t, "a: 1\nb: true\nc: null\nd: hello\ne: 3.5\n")
	require.Equal(t, flatdoc.OpenObject, fd.Rows[0].Kind)
	want := map[string]flatdoc.Kind{
		"a": flatdoc.Number,
		"b": flatdoc.Boolean,
		"c": flatdoc.Null,
		"d": flatdoc.String,
		"e": flatdoc.Number,
	}
	for i := range fd.Rows {
		row := &fd.Rows[i]
		if row.Key == nil {
			continue
		}
		if k, ok := want[row.Key.Raw]; ok {
			assert.Equal(t, k, row.Kind, "key %q", row.Key.Raw)
		}
	}
}

func TestParseSequence(t *testing.T) {
	fd := mustParse(t, "- 1\n- 2\n- 3\n")
	require.Equal(t, flatdoc.OpenArray, fd.Rows[0].Kind)
	count := 0
	for child := fd.Rows[0].FirstChild; child != flatdoc.Nil; child = fd.Rows[child].NextSibling {
		count++
	}
	assert.Equal(t, 3, count)
}

func TestParseNonStringKey(t *testing.T) {
	fd := mustParse(t, "1: one\ntrue: yes-value\n")
	require.True(t, fd.HasNonStringKeys)
	foundSynthetic := false
	for i := range fd.Rows {
		if k := fd.Rows[i].Key; k != nil && k.Synthetic {
			foundSynthetic = true
		}
	}
	assert.True(t, foundSynthetic, "expected at least one synthetic key")
}

func TestParseEmptyContainers(t *testing.T) {
	fd := mustParse(t, "a: {}\nb: []\n")
	for i := range fd.Rows {
		row := &fd.Rows[i]
		if row.Key == nil {
			continue
		}
		switch row.Key.Raw {
		case "a":
			assert.Equal(t, flatdoc.EmptyObject, row.Kind, "key a")
		case "b":
			assert.Equal(t, flatdoc.EmptyArray, row.Kind, "key b")
		}
	}
}

func TestParseMultiDocumentStream(t *testing.T) {
	fd := mustParse(t, "---\n1\n---\n2\n")
	assert.Equal(t, 2, fd.TopLevelCount)
}

func TestParseStringEscapesNewline(t *testing.T) {
	fd := mustParse(t, "a: |\n  line one\n  line two\n")
	for i := range fd.Rows {
		row := &fd.Rows[i]
		if row.Kind == flatdoc.String {
			got := fd.Pretty[row.ValueRange.Start:row.ValueRange.End]
			assert.Equal(t, `"line one\nline two\n"`, got)
		}
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}
