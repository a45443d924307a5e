package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/memlab/lab"
)

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	model Model
	cmd   tea.Cmd
}

// NewTestHelper creates a test helper with a model over s
func NewTestHelper(s *lab.Session) *TestHelper {
	return &TestHelper{
		model: NewModel(s),
	}
}

// WithClipboard replaces the clipboard writer used by the copy binding
func (h *TestHelper) WithClipboard(write func(string) error) *TestHelper {
	h.model.copyPID = write
	return h
}

// SendKey simulates a key press; the returned command is kept, not executed
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// TypeString sends each rune of s as a key press
func (h *TestHelper) TypeString(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

func (h *TestHelper) send(msg tea.Msg) *TestHelper {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	h.cmd = cmd
	return h
}

// Quitting reports whether the last message asked the program to exit
func (h *TestHelper) Quitting() bool {
	if h.cmd == nil {
		return false
	}
	_, ok := h.cmd().(tea.QuitMsg)
	return ok
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}
