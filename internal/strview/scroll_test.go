package strview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndInitBack(t *testing.T) {
	cases := []struct {
		s           string
		space       int
		front, back string
	}{
		{"abcde", -1, "", ""},
		{"abcde", 0, "", ""},
		{"", 0, "", ""},
		{"a", 1, "a", "a"},
		{"abc", 1, "…", "…"},
		{"abc", 2, "a…", "…c"},
		{"ab", 2, "ab", "ab"},
		{"🦀abc", 2, "�…", "…c"},
		{"abc🦀", 2, "a…", "…�"},
		{"abc", 3, "abc", "abc"},
		{"abcd", 3, "ab…", "…cd"},
		{"🦀🦀abc🦀🦀", 3, "🦀…", "…🦀"},
		{"🦀🦀abc🦀🦀", 5, "🦀🦀…", "…🦀🦀"},
	}

	for _, c := range cases {
		front := Init(c.s, c.space).Render(c.s)
		assert.Equal(t, c.front, front, "Init(%q, %d)", c.s, c.space)
		back := InitBack(c.s, c.space).Render(c.s)
		assert.Equal(t, c.back, back, "InitBack(%q, %d)", c.s, c.space)
	}
}

func assertScrollStates(t *testing.T, s string, availableSpace int, states []string) {
	t.Helper()

	cur := Init(s, availableSpace)
	prev := cur.Render(s)
	require.Equal(t, states[0], prev, "Init(%q,%d)", s, availableSpace)
	for _, want := range states[1:] {
		next := cur.ScrollRight(s, availableSpace)
		got := next.Render(s)
		assert.Equal(t, want, got, "scroll_right(%s) from %q", s, prev)
		cur = next
		prev = got
	}

	cur = InitBack(s, availableSpace)
	prev = cur.Render(s)
	last := states[len(states)-1]
	require.Equal(t, last, prev, "InitBack(%q,%d)", s, availableSpace)
	for i := len(states) - 2; i >= 0; i-- {
		want := states[i]
		next := cur.ScrollLeft(s, availableSpace)
		got := next.Render(s)
		assert.Equal(t, want, got, "scroll_left(%s) from %q", s, prev)
		cur = next
		prev = got
	}
}

func TestScrollStates(t *testing.T) {
	assertScrollStates(t, "abcdef", 5, []string{"abcd…", "…cdef"})
	assertScrollStates(t, "abcdefgh", 5, []string{"abcd…", "…cde…", "…def…", "…efgh"})
	assertScrollStates(t, "🦀bcde", 5, []string{"🦀bc…", "…bcde"})
	assertScrollStates(t, "🦀bcdef", 5, []string{"🦀bc…", "…bcd…", "…cdef"})
	assertScrollStates(t, "abcd🦀efghi", 5, []string{"abcd…", "…d🦀…", "…🦀e…", "…efg…", "…fghi"})
	assertScrollStates(t, "abc🦀def", 3, []string{"ab…", "…c…", "…�…", "…d…", "…ef"})
}

func TestJumpToAnEnd(t *testing.T) {
	s := "abcdefgh"
	front := Init(s, 5)
	back := front.JumpToAnEnd(s, 5)
	assert.Equal(t, "…efgh", back.Render(s), "jump from front")

	front2 := back.JumpToAnEnd(s, 5)
	assert.Equal(t, "abcd…", front2.Render(s), "jump from back")
}

func TestFitsAndOffScreenAreNoOps(t *testing.T) {
	fits := Init("ab", 5)
	require.Equal(t, Fits, fits.Kind)
	assert.Equal(t, Fits, fits.ScrollRight("ab", 5).Kind, "ScrollRight on Fits should be a no-op")

	off := Init("abcdef", -1)
	require.Equal(t, OffScreen, off.Kind)
	assert.Equal(t, OffScreen, off.ScrollLeft("abcdef", -1).Kind, "ScrollLeft on OffScreen should be a no-op")
}
