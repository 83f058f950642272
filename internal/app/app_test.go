package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trygveh/sdp/internal/flatdoc"
	jsonparse "github.com/trygveh/sdp/internal/parse/json"
	"github.com/trygveh/sdp/internal/screen"
	"github.com/trygveh/sdp/internal/search"
	"github.com/trygveh/sdp/internal/viewer"
)

// buildFixtureObject parses the object fixture used by the flatdoc and
// viewer test suites, {"1": 1, "2": [3, "4"], "6": {"7": null, "8": true,
// "9": 9}, "11": 11} (rows 0-12), through the JSON parser so that its keys
// and values have real pretty text for search to match against.
func buildFixtureObject() *flatdoc.FlatDocument {
	doc, err := jsonparse.Parse(`{"1": 1, "2": [3, "4"], "6": {"7": null, "8": true, "9": 9}, "11": 11}`)
	if err != nil {
		panic(err)
	}
	return doc
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestBufferInputIgnoresLeadingZero(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.bufferInput('0')
	assert.Empty(t, m.inputBuffer)
}

func TestBufferInputDropsOldestPastMaxSize(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	for i := 0; i < MaxBufferSize+3; i++ {
		m.bufferInput('1')
	}
	assert.Len(t, m.inputBuffer, MaxBufferSize)
}

func TestParseBufferAsNumberDefaultsToOne(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	assert.Equal(t, 1, m.parseBufferAsNumber())
}

func TestParseBufferAsNumberParsesDigits(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.bufferInput('4')
	m.bufferInput('2')
	assert.Equal(t, 42, m.parseBufferAsNumber())
}

func TestMaybeParseBufferAsNumberNilWhenEmpty(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	assert.Nil(t, m.maybeParseBufferAsNumber())
}

func TestUpdateKeyMovesFocusDown(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.Viewer.Height = 13
	m.Viewer.Width = 40

	_, _ = m.updateKey(runeKey("j"))
	assert.NotEqual(t, 0, m.Viewer.FocusedRow)
}

func TestUpdateKeyDigitPrefixRepeatsMovement(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.Viewer.Height = 13
	m.Viewer.Width = 40

	m.updateKey(runeKey("2"))
	m.updateKey(runeKey("j"))
	assert.Equal(t, 2, m.Viewer.FocusedRow)
}

func TestUpdateKeyQuitReturnsQuitCmd(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	_, cmd := m.updateKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestUpdateKeyZPrefixChords(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.Viewer.Height = 13
	m.Viewer.Width = 40

	m.updateKey(runeKey("z"))
	assert.True(t, m.pendingZ)

	m.updateKey(runeKey("t"))
	assert.False(t, m.pendingZ)
	assert.Equal(t, m.Viewer.FocusedRow, m.Viewer.TopRow)
}

func TestRunCommandQuit(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	cmd := m.runCommand("q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestRunCommandUnknown(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	assert.Nil(t, m.runCommand("bogus"))
	require.NotNil(t, m.message)
	assert.Equal(t, screen.Info, m.message.Severity)
}

func TestRunSearchFindsMatches(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.Viewer.Height = 13
	m.Viewer.Width = 40

	m.runSearch("11")
	assert.True(t, m.Search.AnyMatches())
}

func TestStarSearchesForFocusedKeyForward(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.Viewer.Height = 13
	m.Viewer.Width = 40
	m.Viewer.FocusedRow = 11 // row keyed "11"

	m.updateKey(runeKey("*"))

	assert.Equal(t, "11", m.Search.Term)
	assert.True(t, m.Search.AnyMatches())
	assert.Equal(t, search.Forward, m.Search.Direction)
}

func TestHashSearchesForFocusedKeyBackward(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.Viewer.Height = 13
	m.Viewer.Width = 40
	m.Viewer.FocusedRow = 11

	m.updateKey(runeKey("#"))

	assert.Equal(t, search.Reverse, m.Search.Direction)
}

func TestKeySearchNoOpWithoutAFocusedKey(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	m.Viewer.Height = 13
	m.Viewer.Width = 40
	m.Viewer.FocusedRow = 0 // the root object row has no key

	m.updateKey(runeKey("*"))

	assert.False(t, m.Search.AnyMatches())
}

func TestCopyFocusedValueUsesClipboardProvider(t *testing.T) {
	m := New(buildFixtureObject(), viewer.DataMode, 0, "fixture.json")
	fake := &fakeClipboard{}
	m.Clipboard = fake

	m.copyFocusedValue()

	assert.NotEmpty(t, fake.lastCopied)
	assert.NotNil(t, m.message)
}

type fakeClipboard struct {
	lastCopied string
}

func (f *fakeClipboard) Copy(content string) error {
	f.lastCopied = content
	return nil
}
