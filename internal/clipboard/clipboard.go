// Package clipboard copies a value's text either to the system clipboard
// (SystemProvider) or by piping it through a user-configured shell command
// (CommandProvider). The two providers are independent: neither falls back
// to the other.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	"github.com/atotto/clipboard"
)

// Provider copies content to the clipboard, in one of two ways.
type Provider interface {
	Copy(content string) error
}

// SystemProvider uses the OS's native clipboard API.
type SystemProvider struct{}

func (SystemProvider) Copy(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// CommandProvider pipes content to stdin of a user-specified shell command,
// for environments where the native clipboard API isn't reachable (a
// headless SSH session with its own OSC 52 relay, a custom `xclip`/`wl-copy`
// wrapper, and so on).
type CommandProvider struct {
	ShellCommand string
}

func (p CommandProvider) Copy(content string) error {
	cmd := exec.Command("sh", "-c", p.ShellCommand)
	cmd.Stdin = bytes.NewBufferString(content)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("clipboard: command failed with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
