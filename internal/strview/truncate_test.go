package strview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateRightToFit(t *testing.T) {
	assertNotTruncated(t, TruncateRightToFit("hello, world", 15, "..."))
	assertNotTruncated(t, TruncateRightToFit("👍👀😱", 6, "..."))

	assertDoesntFit(t, TruncateRightToFit("hello", 3, "..."))
	assertDoesntFit(t, TruncateRightToFit("👀abc", 1, ""))

	assertTruncated(t, TruncateRightToFit("hello, world", 10, ""), "hello, wor", 10)
	assertTruncated(t, TruncateRightToFit("hello, world", 10, "..."), "hello, ", 10)
	assertTruncated(t, TruncateRightToFit("👍👀😱🦀", 7, ""), "👍👀😱", 6)
	assertTruncated(t, TruncateRightToFit("👍👀😱🦀", 6, "..."), "👍", 5)
}

func TestTruncateLeftToFit(t *testing.T) {
	assertNotTruncated(t, TruncateLeftToFit("hello, world", 15, "..."))
	assertNotTruncated(t, TruncateLeftToFit("👍👀😱", 6, "..."))

	assertDoesntFit(t, TruncateLeftToFit("hello", 3, "..."))
	assertDoesntFit(t, TruncateLeftToFit("abc👀", 1, ""))

	assertTruncated(t, TruncateLeftToFit("hello, world", 10, ""), "llo, world", 10)
	assertTruncated(t, TruncateLeftToFit("hello, world", 10, "..."), ", world", 10)
	assertTruncated(t, TruncateLeftToFit("👍👀😱🦀", 7, ""), "👀😱🦀", 6)
	assertTruncated(t, TruncateLeftToFit("👍👀😱🦀", 6, "..."), "🦀", 5)
}

func assertNotTruncated(t *testing.T, r TruncationResult) {
	t.Helper()
	assert.Equal(t, NoTruncation, r.Kind)
}

func assertDoesntFit(t *testing.T, r TruncationResult) {
	t.Helper()
	assert.Equal(t, DoesntFit, r.Kind)
}

func assertTruncated(t *testing.T, r TruncationResult, wantText string, wantWidth int) {
	t.Helper()
	require.Equal(t, Truncated, r.Kind)
	assert.Equal(t, wantText, r.Text)
	assert.Equal(t, wantWidth, r.Width)
}
