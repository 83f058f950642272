// Package app wires the viewer, screen writer, search engine, and
// clipboard provider into one bubbletea Model: the input loop that
// dispatches key presses to viewer actions, manages the digit-prefix and
// z-prefix chord buffers, and drives the command/search prompt.
package app

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trygveh/sdp/internal/clipboard"
	"github.com/trygveh/sdp/internal/flatdoc"
	"github.com/trygveh/sdp/internal/screen"
	"github.com/trygveh/sdp/internal/search"
	"github.com/trygveh/sdp/internal/viewer"
)

// MaxBufferSize caps the digit-prefix buffer the same way the teacher's
// input buffer is bounded, so a runaway stream of digits can't grow it
// without limit; the oldest digit is dropped once the cap is hit.
const MaxBufferSize = 9

// promptMode distinguishes what the single-line editor at the bottom of
// the screen is currently collecting.
type promptMode int

const (
	noPrompt promptMode = iota
	commandPrompt
	searchPrompt
	keySearchPrompt
)

// Model is the bubbletea model for one open document.
type Model struct {
	Viewer    *viewer.Viewer
	Screen    *screen.Writer
	Search    *search.State
	Clipboard clipboard.Provider

	Filename string

	inputBuffer []byte
	pendingZ    bool
	prompt      promptMode
	promptDir   search.Direction
	message     *screen.Message
}

// New constructs a Model ready to run.
func New(doc *flatdoc.FlatDocument, mode viewer.Mode, scrolloff int, filename string) *Model {
	return &Model{
		Viewer:    viewer.New(doc, mode, scrolloff),
		Screen:    screen.NewWriter(),
		Search:    search.Empty(),
		Clipboard: clipboard.SystemProvider{},
		Filename:  filename,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Viewer.Apply(viewer.ResizeWindow(msg.Width, msg.Height-1))
		return m, nil

	case tea.KeyMsg:
		if m.prompt != noPrompt {
			return m.updatePrompt(msg)
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *Model) View() string {
	body := m.Screen.PrintViewer(m.Viewer, m.Search)
	status := m.Screen.PrintStatusBar(m.Viewer, string(m.inputBuffer), m.Filename, m.Search, m.message)
	m.message = nil
	return body + status
}

// bufferInput appends a digit to the numeric-prefix buffer, ignoring
// leading zeros and dropping the oldest digit once MaxBufferSize is hit.
func (m *Model) bufferInput(ch byte) {
	if len(m.inputBuffer) == 0 && ch == '0' {
		return
	}
	if len(m.inputBuffer) >= MaxBufferSize {
		m.inputBuffer = m.inputBuffer[1:]
	}
	m.inputBuffer = append(m.inputBuffer, ch)
}

// parseBufferAsNumber interprets the buffer as a repeat count, defaulting
// to 1 when empty.
func (m *Model) parseBufferAsNumber() int {
	if len(m.inputBuffer) == 0 {
		return 1
	}
	n, err := strconv.Atoi(string(m.inputBuffer))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// maybeParseBufferAsNumber is like parseBufferAsNumber but returns nil when
// the buffer is empty, distinguishing "no prefix given" from "prefix 1"
// for actions whose default isn't 1 (JumpUp/JumpDown default to half a
// screen).
func (m *Model) maybeParseBufferAsNumber() *int {
	if len(m.inputBuffer) == 0 {
		return nil
	}
	n := m.parseBufferAsNumber()
	return &n
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.pendingZ {
		m.pendingZ = false
		switch key {
		case "z":
			m.Viewer.Apply(viewer.MoveFocusedLineToCenter())
		case "t":
			m.Viewer.Apply(viewer.MoveFocusedLineToTop())
		case "b":
			m.Viewer.Apply(viewer.MoveFocusedLineToBottom())
		}
		m.inputBuffer = m.inputBuffer[:0]
		return m, nil
	}

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		if key[0] == '0' && len(m.inputBuffer) == 0 {
			m.Viewer.Apply(viewer.FocusFirstSibling())
			return m, nil
		}
		m.bufferInput(key[0])
		return m, nil
	}

	jumpedToMatch := false
	focusedBefore := m.Viewer.FocusedRow
	collapsedBefore := m.Viewer.Doc.Row(focusedBefore).IsCollapsed()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "z":
		m.pendingZ = true
		return m, nil

	case "up", "k", "ctrl+p", "backspace":
		m.Viewer.Apply(viewer.MoveUp(m.parseBufferAsNumber()))
	case "down", "j", "ctrl+n", "enter":
		m.Viewer.Apply(viewer.MoveDown(m.parseBufferAsNumber()))
	case "ctrl+e":
		m.Viewer.Apply(viewer.ScrollDown(m.parseBufferAsNumber()))
	case "ctrl+y":
		m.Viewer.Apply(viewer.ScrollUp(m.parseBufferAsNumber()))
	case "ctrl+d":
		m.Viewer.Apply(viewer.JumpDown(m.maybeParseBufferAsNumber()))
	case "ctrl+u":
		m.Viewer.Apply(viewer.JumpUp(m.maybeParseBufferAsNumber()))
	case "pgup":
		m.Viewer.Apply(viewer.PageUp(m.parseBufferAsNumber()))
	case "pgdown":
		m.Viewer.Apply(viewer.PageDown(m.parseBufferAsNumber()))
	case "K":
		m.Viewer.Apply(viewer.FocusPrevSibling(m.parseBufferAsNumber()))
	case "J":
		m.Viewer.Apply(viewer.FocusNextSibling(m.parseBufferAsNumber()))
	case "n":
		jumpedToMatch = m.jumpToSearchMatch(search.Next, m.parseBufferAsNumber())
	case "N":
		jumpedToMatch = m.jumpToSearchMatch(search.Prev, m.parseBufferAsNumber())
	case "*":
		jumpedToMatch = m.startKeySearch(search.Forward)
	case "#":
		jumpedToMatch = m.startKeySearch(search.Reverse)
	case ".":
		m.Screen.ScrollFocusedLineRight(m.Viewer.FocusedRow, m.parseBufferAsNumber())
	case ",":
		m.Screen.ScrollFocusedLineLeft(m.Viewer.FocusedRow, m.parseBufferAsNumber())
	case "/":
		m.startPrompt(searchPrompt, search.Forward)
	case "?":
		m.startPrompt(searchPrompt, search.Reverse)
	case "b":
		m.Viewer.Apply(viewer.MoveUpUntilDepthChange())
	case "w":
		m.Viewer.Apply(viewer.MoveDownUntilDepthChange())
	case "left", "h":
		m.Viewer.Apply(viewer.MoveLeft())
	case "right", "l":
		m.Viewer.Apply(viewer.MoveRight())
	case "H":
		m.Viewer.Apply(viewer.FocusParent())
	case "c":
		m.Viewer.Apply(viewer.CollapseNodeAndSiblings())
	case "e":
		m.Viewer.Apply(viewer.ExpandNodeAndSiblings())
	case " ":
		m.Viewer.Apply(viewer.ToggleCollapsed())
	case "^":
		m.Viewer.Apply(viewer.FocusFirstSibling())
	case "$":
		m.Viewer.Apply(viewer.FocusLastSibling())
	case "g", "home":
		m.Viewer.Apply(viewer.FocusTop())
	case "G", "end":
		m.Viewer.Apply(viewer.FocusBottom())
	case "%":
		m.Viewer.Apply(viewer.FocusMatchingPair())
	case "m":
		m.Viewer.Apply(viewer.ToggleMode())
	case "<":
		m.Screen.DecreaseIndentationLevel(0)
	case ">":
		m.Screen.IncreaseIndentationLevel()
	case ";":
		m.Screen.ScrollFocusedLineToEnd(m.Viewer.FocusedRow)
	case "y":
		m.copyFocusedValue()
	case ":":
		m.startPrompt(commandPrompt, search.Forward)
	}

	m.inputBuffer = m.inputBuffer[:0]

	if jumpedToMatch {
		// Jump only moved FocusedRow; a zero-line scroll re-applies the
		// scrolloff clamp so the viewport follows the match.
		m.Viewer.Apply(viewer.ScrollDown(0))
	} else if focusedBefore != m.Viewer.FocusedRow ||
		collapsedBefore != m.Viewer.Doc.Row(focusedBefore).IsCollapsed() {
		m.Search.SetNoLongerActivelySearching()
	}

	return m, nil
}

func (m *Model) jumpToSearchMatch(dir search.JumpDirection, n int) bool {
	if m.Search == nil || !m.Search.AnyMatches() {
		return false
	}
	m.Viewer.FocusedRow = m.Search.Jump(m.Viewer.FocusedRow, dir, n)
	return true
}

// startKeySearch searches for every other occurrence of the focused row's
// own key, the same way "*"/"#" search for the word under the cursor in
// less/vim. The term is built and compiled immediately instead of being
// typed at the command/search prompt, but it still passes through
// keySearchPrompt so the rest of the model's state machine sees a
// search-prompt-shaped transition rather than a silent field mutation.
func (m *Model) startKeySearch(dir search.Direction) bool {
	row := m.Viewer.Doc.Row(m.Viewer.FocusedRow)
	if row.Key == nil {
		return false
	}

	m.prompt = keySearchPrompt
	m.promptDir = dir
	m.runSearch(regexp.QuoteMeta(row.Key.Raw))
	m.prompt = noPrompt

	return m.Search.AnyMatches()
}

func (m *Model) copyFocusedValue() {
	text := m.Viewer.Doc.PrettyPrintValue(m.Viewer.FocusedRow)
	if err := m.Clipboard.Copy(text); err != nil {
		m.message = &screen.Message{Text: err.Error(), Severity: screen.Error}
		return
	}
	m.message = &screen.Message{Text: "copied to clipboard", Severity: screen.Info}
}

func (m *Model) startPrompt(mode promptMode, dir search.Direction) {
	m.prompt = mode
	m.promptDir = dir
	m.Screen.Prompt.SetValue("")
	m.Screen.Prompt.Focus()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := m.Screen.Prompt.Value()
		mode := m.prompt
		m.prompt = noPrompt
		m.Screen.Prompt.Blur()

		switch mode {
		case commandPrompt:
			return m, m.runCommand(input)
		case searchPrompt:
			m.runSearch(input)
		}
		return m, nil

	case "esc", "ctrl+c":
		m.prompt = noPrompt
		m.Screen.Prompt.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.Screen.Prompt, cmd = m.Screen.Prompt.Update(msg)
	return m, cmd
}

func (m *Model) runSearch(input string) {
	s, err := search.Compile(input, m.Viewer.Doc, m.promptDir)
	if err != nil {
		m.message = &screen.Message{Text: err.Error(), Severity: screen.Error}
		return
	}
	m.Search = s
	if s.AnyMatches() {
		m.Viewer.FocusedRow = s.Jump(m.Viewer.FocusedRow, search.Next, 1)
		m.Viewer.Apply(viewer.ScrollDown(0))
	} else if s.Term != "" {
		m.message = &screen.Message{Text: s.NoMatchesMessage(), Severity: screen.Info}
	}
}

func (m *Model) runCommand(input string) tea.Cmd {
	cmd := strings.TrimSpace(input)
	switch cmd {
	case "":
		return nil
	case "q", "quit":
		return tea.Quit
	case "help":
		return m.showHelp()
	default:
		m.message = &screen.Message{Text: fmt.Sprintf("Unknown command: %s", cmd), Severity: screen.Info}
		return nil
	}
}

// showHelp pipes the bundled help text to an external pager, the same way
// the teacher spawns an editor through tea.ExecProcess.
func (m *Model) showHelp() tea.Cmd {
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = "less"
	}
	c := exec.Command(pager)
	c.Stdin = strings.NewReader(helpText)
	c.Stdout, c.Stderr = os.Stdout, os.Stderr
	return tea.ExecProcess(c, func(error) tea.Msg { return nil })
}

const helpText = `sdp - structured data pager

Navigation:
  j/k, down/up       move focused row
  h/l, left/right    collapse/expand, or move to parent/child
  space              toggle collapsed
  c / e              collapse/expand focused node and its siblings
  H                  focus parent
  ^ / $              focus first/last sibling
  J / K              focus next/prev sibling
  g/G, home/end      focus top/bottom of document
  %                  jump to matching brace/bracket
  m                  toggle line/data mode
  zz/zt/zb           move focused line to center/top/bottom of viewport

Search:
  /   ?              search forward/backward
  n   N              repeat search in same/opposite direction

Other:
  y                  copy focused value to the clipboard
  :                  command prompt (help, quit)
  q, ctrl+c          quit
`
