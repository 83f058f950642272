package term

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopTerminalProducesNoOutput(t *testing.T) {
	var b strings.Builder
	nt := NopTerminal{}
	require.NoError(t, nt.PositionCursor(&b, 5))
	require.NoError(t, nt.SetForeground(&b, lipgloss.Color("1")))
	require.NoError(t, nt.SetBackground(&b, lipgloss.Color("2")))
	require.NoError(t, nt.SetBold(&b, true))
	require.NoError(t, nt.SetInverted(&b, true))
	require.NoError(t, nt.ResetStyle(&b))

	assert.Empty(t, b.String())
}

func TestEscapeLogTerminalTranscript(t *testing.T) {
	var b strings.Builder
	lt := NewEscapeLogTerminal()

	require.NoError(t, lt.PositionCursor(&b, 5))
	require.NoError(t, lt.SetForeground(&b, lipgloss.Color("9")))
	require.NoError(t, lt.SetBold(&b, true))
	require.NoError(t, lt.SetInverted(&b, true))
	require.NoError(t, lt.ResetStyle(&b))

	got := b.String()
	for _, want := range []string{"_C(5)_", "_FG(9)_", "_BLD_", "_INV_", "_R_"} {
		assert.Contains(t, got, want)
	}
}

func TestEscapeLogTerminalGatesIndependently(t *testing.T) {
	var b strings.Builder
	lt := EscapeLogTerminal{LogPosition: true, LogStyle: false}

	require.NoError(t, lt.PositionCursor(&b, 3))
	require.NoError(t, lt.SetBold(&b, true))

	got := b.String()
	assert.Contains(t, got, "_C(3)_")
	assert.NotContains(t, got, "_BLD_")
}

func TestAnsiTerminalEmitsRealEscapes(t *testing.T) {
	var b strings.Builder
	at := AnsiTerminal{}

	require.NoError(t, at.PositionCursor(&b, 10))
	require.NoError(t, at.SetBold(&b, true))
	require.NoError(t, at.SetBold(&b, false))
	require.NoError(t, at.SetInverted(&b, true))
	require.NoError(t, at.ResetStyle(&b))

	got := b.String()
	for _, want := range []string{"\x1b[10G", "\x1b[1m", "\x1b[22m", "\x1b[7m", "\x1b[0m"} {
		assert.Contains(t, got, want)
	}
}
