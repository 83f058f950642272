package screen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trygveh/sdp/internal/flatdoc"
	jsonparse "github.com/trygveh/sdp/internal/parse/json"
	"github.com/trygveh/sdp/internal/search"
	"github.com/trygveh/sdp/internal/viewer"
)

// buildFixtureObject parses the object fixture used by the flatdoc and
// viewer test suites, {"1": 1, "2": [3, "4"], "6": {"7": null, "8": true,
// "9": 9}, "11": 11} (rows 0-12), through the JSON parser so that its keys
// and values have real pretty text for rendering and search.
func buildFixtureObject() *flatdoc.FlatDocument {
	doc, err := jsonparse.Parse(`{"1": 1, "2": [3, "4"], "6": {"7": null, "8": true, "9": 9}, "11": 11}`)
	if err != nil {
		panic(err)
	}
	return doc
}

func TestPrintViewerLineModeOneLinePerRow(t *testing.T) {
	fd := buildFixtureObject()
	v := viewer.New(fd, viewer.LineMode, 0)
	v.Height = 13
	v.Width = 40

	w := NewWriter()
	out := w.PrintViewer(v, nil)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 13)
}

func TestPrintViewerPastEndFillsWithTilde(t *testing.T) {
	fd := buildFixtureObject()
	v := viewer.New(fd, viewer.LineMode, 0)
	v.Height = 20
	v.Width = 40

	w := NewWriter()
	out := w.PrintViewer(v, nil)

	assert.Contains(t, out, "~")
}

func TestPrintViewerDataModeSkipsCloseRows(t *testing.T) {
	fd := buildFixtureObject()
	v := viewer.New(fd, viewer.DataMode, 0)
	v.Height = 6
	v.Width = 40

	w := NewWriter()
	out := w.PrintViewer(v, nil)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	// The sixth line is row 6 ("6": {...}); in line mode it would be row
	// 5, the closing "]" of "2".
	assert.Contains(t, lines[5], `"6"`)
}

func TestScrollFocusedLineRightAndLeft(t *testing.T) {
	w := NewWriter()
	w.ScrollFocusedLineRight(1, 5)
	assert.Equal(t, 5, w.scrolls[1])

	w.ScrollFocusedLineLeft(1, 100)
	assert.Equal(t, 0, w.scrolls[1])
}

func TestScrollFocusedLineToEndResets(t *testing.T) {
	w := NewWriter()
	w.ScrollFocusedLineRight(2, 3)
	w.ScrollFocusedLineToEnd(2)

	_, ok := w.scrolls[2]
	assert.False(t, ok)
}

func TestPrintStatusBarShowsFilenameAndMode(t *testing.T) {
	fd := buildFixtureObject()
	v := viewer.New(fd, viewer.DataMode, 0)
	v.Height = 5
	v.Width = 40

	w := NewWriter()
	out := w.PrintStatusBar(v, "", "example.json", nil, nil)

	assert.Contains(t, out, "example.json")
	assert.Contains(t, out, "DATA")
}

func TestPrintStatusBarShowsMessage(t *testing.T) {
	fd := buildFixtureObject()
	v := viewer.New(fd, viewer.LineMode, 0)
	v.Height = 5
	v.Width = 40

	w := NewWriter()
	msg := &Message{Text: "copied to clipboard", Severity: Info}
	out := w.PrintStatusBar(v, "", "example.json", nil, msg)

	assert.Contains(t, out, "copied to clipboard")
}

func TestPrintStatusBarShowsSearchState(t *testing.T) {
	fd := buildFixtureObject()
	v := viewer.New(fd, viewer.LineMode, 0)
	v.Height = 20
	v.Width = 40

	s, err := search.Compile("1", fd, search.Forward)
	require.NoError(t, err)

	w := NewWriter()
	out := w.PrintStatusBar(v, "", "example.json", s, nil)

	assert.Contains(t, out, "/1")
}
