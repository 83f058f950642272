package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandProviderCopySucceeds(t *testing.T) {
	p := CommandProvider{ShellCommand: "cat > /dev/null"}
	require.NoError(t, p.Copy("hello"))
}

func TestCommandProviderCopyReportsNonZeroExit(t *testing.T) {
	p := CommandProvider{ShellCommand: "exit 3"}
	err := p.Copy("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 3")
}

func TestCommandProviderCopyReportsMissingCommand(t *testing.T) {
	p := CommandProvider{ShellCommand: "definitely-not-a-real-command-xyz"}
	assert.Error(t, p.Copy("hello"))
}
