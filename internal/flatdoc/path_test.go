package flatdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFixtureForPaths builds the flat document for:
//
//	{"non js key": 1, "plain_key": [{}, {"nested": 5}]}
func buildFixtureForPaths() *FlatDocument {
	b := NewBuilder()
	b.OpenContainer(Object, nil)                    // 0 root
	b.Primitive(Number, &Key{Raw: "non js key"})     // 1
	b.OpenContainer(Array, &Key{Raw: "plain_key"})   // 2
	b.EmptyContainer(Object, nil)                    // 3  plain_key[0]
	b.OpenContainer(Object, nil)                     // 4  plain_key[1]
	b.Primitive(Number, &Key{Raw: "nested"})         // 5
	b.CloseContainer()                               // 6  closes 4
	b.CloseContainer()                               // 7  closes 2
	b.CloseContainer()                               // 8  closes 0
	return b.Build()
}

// TestScenarioS1 exercises the three string path flavors against the
// "nested" leaf at row 5.
func TestScenarioS1(t *testing.T) {
	fd := buildFixtureForPaths()

	cases := []struct {
		style PathStyle
		want  string
	}{
		{Dot, ".plain_key[1].nested"},
		{Bracket, `["plain_key"][1]["nested"]`},
		{Query, ".plain_key[].nested"},
	}

	for _, c := range cases {
		got, err := fd.BuildPathTo(5, c.style)
		require.NoError(t, err, "style %v", c.style)
		assert.Equal(t, c.want, got, "style %v", c.style)
	}
}

func TestPathNonStringKeyRejectsQuery(t *testing.T) {
	b := NewBuilder()
	b.OpenContainer(Object, nil)
	b.Primitive(Number, &Key{Raw: "1", Synthetic: true})
	b.CloseContainer()
	fd := b.Build()

	assert.True(t, fd.HasNonStringKeys, "expected synthetic key to mark HasNonStringKeys")

	_, err := fd.BuildPathTo(1, Query)
	assert.Equal(t, ErrNonStringKeyPath, err)

	// Dot and Bracket styles still work, rendering the synthetic form.
	got, err := fd.BuildPathTo(1, Dot)
	require.NoError(t, err)
	assert.Equal(t, "[1]", got)
}

func TestPathDotWithTopLevelIndex(t *testing.T) {
	b := NewBuilder()
	b.Primitive(Number, nil) // 0
	b.Primitive(Number, nil) // 1
	fd := b.Build()

	require.Equal(t, 2, fd.TopLevelCount)
	got, err := fd.BuildPathTo(1, DotWithTopLevelIndex)
	require.NoError(t, err)
	assert.Equal(t, "[1]", got)

	// A single top-level document gets no index prefix.
	single := NewBuilder()
	single.Primitive(Number, nil)
	fd2 := single.Build()
	got2, err := fd2.BuildPathTo(0, DotWithTopLevelIndex)
	require.NoError(t, err)
	assert.Empty(t, got2, "single top-level value path")
}
