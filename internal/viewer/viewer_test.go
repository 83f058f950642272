package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trygveh/sdp/internal/flatdoc"
)

// buildFixtureObject mirrors the object fixture used by the flatdoc test
// suite: {"1": 1, "2": [3, "4"], "6": {"7": null, "8": true, "9": 9},
// "11": 11}. Only rows are built; no pretty text is written.
func buildFixtureObject() *flatdoc.FlatDocument {
	b := flatdoc.NewBuilder()
	b.OpenContainer(flatdoc.Object, nil)                      // 0
	b.Primitive(flatdoc.Number, &flatdoc.Key{Raw: "1"})        // 1
	b.OpenContainer(flatdoc.Array, &flatdoc.Key{Raw: "2"})     // 2
	b.Primitive(flatdoc.Number, nil)                           // 3
	b.Primitive(flatdoc.String, nil)                           // 4
	b.CloseContainer()                                         // 5
	b.OpenContainer(flatdoc.Object, &flatdoc.Key{Raw: "6"})     // 6
	b.Primitive(flatdoc.Null, &flatdoc.Key{Raw: "7"})           // 7
	b.Primitive(flatdoc.Boolean, &flatdoc.Key{Raw: "8"})        // 8
	b.Primitive(flatdoc.Number, &flatdoc.Key{Raw: "9"})         // 9
	b.CloseContainer()                                         // 10
	b.Primitive(flatdoc.Number, &flatdoc.Key{Raw: "11"})        // 11
	b.CloseContainer()                                         // 12
	return b.Build()
}

func assertMovements(t *testing.T, v *Viewer, steps []struct {
	action Action
	want   int
}) {
	t.Helper()
	for i, step := range steps {
		v.Apply(step.action)
		assert.Equal(t, step.want, v.FocusedRow, "step %d", i)
	}
}

func TestMoveUpDownLineMode(t *testing.T) {
	fd := buildFixtureObject()
	v := New(fd, LineMode, 0)
	v.Height = 10

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveDown(1), 1},
		{MoveDown(2), 3},
	})

	fd.Collapse(6)
	v.FocusedRow = 6

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveDown(1), 11},
		{MoveDown(1), 12},
		{MoveDown(1), 12},
	})

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveUp(2), 6},
		{MoveUp(1), 5},
		{MoveUp(5), 0},
		{MoveUp(2), 0},
	})

	fd.Collapse(0)
	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveUp(1), 0},
		{MoveDown(1), 0},
	})
}

func TestMoveUpDownDataMode(t *testing.T) {
	fd := buildFixtureObject()
	v := New(fd, DataMode, 0)
	v.Height = 10

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveDown(1), 1},
		{MoveDown(3), 4},
		{MoveDown(1), 6},
	})

	fd.Collapse(6)

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveDown(1), 11},
		{MoveDown(1), 11},
	})

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveUp(1), 6},
		{MoveUp(3), 2},
		{MoveUp(1), 1},
		{MoveUp(1), 0},
		{MoveUp(1), 0},
	})
}

func TestMoveLeftRightLineMode(t *testing.T) {
	fd := buildFixtureObject()
	v := New(fd, LineMode, 0)
	v.Height = 10

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveRight(), 1},
		{MoveRight(), 1},
		{MoveDown(1), 2},
		{MoveRight(), 3},
		{MoveLeft(), 2},
		{MoveLeft(), 2},
	})

	assert.True(t, fd.Rows[2].Collapsed)

	v.FocusedRow = 10
	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveRight(), 9},
		{MoveLeft(), 6},
		{MoveDown(4), 10},
		{MoveLeft(), 6},
	})

	assert.True(t, fd.Rows[6].Collapsed)

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveLeft(), 0},
		{MoveLeft(), 0},
		{MoveDown(1), 0},
	})

	assert.True(t, fd.Rows[0].Collapsed)
	assertMovements(t, v, []struct {
		action Action
		want   int
	}{{MoveRight(), 0}})

	assert.False(t, fd.Rows[0].Collapsed, "expected row 0 to be expanded")
	assertMovements(t, v, []struct {
		action Action
		want   int
	}{{MoveRight(), 1}})
}

func TestMoveLeftRightDataMode(t *testing.T) {
	fd := buildFixtureObject()
	v := New(fd, DataMode, 0)
	v.Height = 10

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveRight(), 1},
		{MoveRight(), 1},
		{MoveDown(5), 7},
		{MoveLeft(), 6},
		{MoveLeft(), 6},
	})

	assert.True(t, fd.Rows[6].Collapsed)

	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveLeft(), 0},
		{MoveRight(), 1},
		{MoveLeft(), 0},
		{MoveLeft(), 0},
	})

	assert.True(t, fd.Rows[0].Collapsed)
	assertMovements(t, v, []struct {
		action Action
		want   int
	}{
		{MoveDown(1), 0},
		{MoveRight(), 0},
	})

	assert.False(t, fd.Rows[0].Collapsed, "expected row 0 to be expanded")
	assertMovements(t, v, []struct {
		action Action
		want   int
	}{{MoveLeft(), 0}})
}

// TestScrolloffKeepsFocusedRowOffEdges exercises scroll-offset maintenance:
// moving focus down to the last item of a short viewport should pull TopRow
// down to preserve the margin.
func TestScrolloffKeepsFocusedRowOffEdges(t *testing.T) {
	fd := buildFixtureObject()
	v := New(fd, DataMode, 1)
	v.Height = 3

	v.Apply(MoveDown(11)) // focus row 11, last item
	assert.Equal(t, 11, v.FocusedRow)
	assert.NotZero(t, v.TopRow, "expected TopRow to have scrolled down to keep margin")
}

func TestToggleModeRoundTrips(t *testing.T) {
	fd := buildFixtureObject()
	v := New(fd, LineMode, 0)
	v.Apply(ToggleMode())
	assert.Equal(t, DataMode, v.Mode)
	v.Apply(ToggleMode())
	assert.Equal(t, LineMode, v.Mode)
}
