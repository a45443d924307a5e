// Package tui is the bubbletea front end for a memlab session.
package tui

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/memlab/lab"
)

// Pane represents which pane is focused
type Pane int

const (
	CatalogPane Pane = iota
	ActivePane
)

// Layout constants
const (
	paneWidth     = 52
	chromeHeight  = 9 // header, pane borders and titles, prompt, status, footer
	minPaneHeight = 3
)

// Model is the main application model
type Model struct {
	session *lab.Session
	keys    KeyMap

	focused       Pane
	catalogCursor int // 0-based
	activeCursor  int // 0-based
	catalogView   viewport.Model

	width  int
	height int

	// Selection prompt (n / -n)
	prompt    textinput.Model
	prompting bool

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	status      string
	statusError bool

	pid     int
	copyPID func(string) error

	// fatal is a release failure; the program quits and the caller reports it.
	fatal error
}

// NewModel creates a new TUI model over s. The caller keeps ownership of s and
// closes it after the program exits.
func NewModel(s *lab.Session) Model {
	ti := textinput.New()
	ti.Prompt = "selection> "
	ti.Placeholder = "n creates, -n removes"
	ti.CharLimit = 16

	return Model{
		session:     s,
		keys:        DefaultKeyMap(),
		catalogView: viewport.New(paneWidth, minPaneHeight),
		prompt:      ti,
		pid:         os.Getpid(),
		copyPID:     clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Err returns the release failure that ended the program, if any.
func (m Model) Err() error {
	return m.fatal
}

func (m *Model) resize() {
	h := max(m.height-chromeHeight, minPaneHeight)
	m.catalogView.Width = paneWidth
	m.catalogView.Height = h
	m.scrollToCursor()
}

// scrollToCursor keeps the catalog cursor inside the viewport.
func (m *Model) scrollToCursor() {
	vp := &m.catalogView
	switch {
	case m.catalogCursor < vp.YOffset:
		vp.YOffset = m.catalogCursor
	case m.catalogCursor >= vp.YOffset+vp.Height:
		vp.YOffset = m.catalogCursor - vp.Height + 1
	}
}

// clampCursors keeps both cursors on existing rows after the lists change.
func (m *Model) clampCursors() {
	n := m.session.Len()
	if m.activeCursor >= n {
		m.activeCursor = max(n-1, 0)
	}
	if n == 0 && m.focused == ActivePane {
		m.focused = CatalogPane
	}
}
