package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/memlab/internal/logger"
	"github.com/joshuapare/memlab/internal/sizefmt"
	"github.com/joshuapare/memlab/lab"
	"github.com/joshuapare/memlab/lab/selection"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		// If help is showing, handle help keys
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc, m.keys.Help, m.keys.Quit) {
				m.showHelp = false
			}
			// Ignore other keys when help is showing
			return m, nil
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Tab):
		if m.focused == CatalogPane && m.session.Len() > 0 {
			m.focused = ActivePane
		} else {
			m.focused = CatalogPane
		}

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.Create):
		if m.focused == CatalogPane {
			return m.create(m.catalogCursor + 1)
		}

	case key.Matches(msg, m.keys.Remove):
		if m.focused == ActivePane && m.session.Len() > 0 {
			return m.remove(m.activeCursor + 1)
		}

	case key.Matches(msg, m.keys.Prompt):
		m.prompting = true
		cmd := m.prompt.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CopyPID):
		pid := strconv.Itoa(m.pid)
		if err := m.copyPID(pid); err != nil {
			logger.Warn("clipboard copy failed", "error", err)
			m.setError("Copy failed: " + err.Error())
		} else {
			m.setStatus("Copied PID " + pid)
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil

	case tea.KeyEnter:
		input := m.prompt.Value()
		m.closePrompt()
		if strings.TrimSpace(input) == "" {
			return m, nil
		}

		before := m.session.Allocations()
		choice, err := m.session.Apply(input)
		if err != nil {
			return m.fail(err)
		}
		switch choice.Action {
		case selection.Quit:
			return m, tea.Quit
		case selection.Create:
			m.reportCreated(m.session.Len())
		case selection.Remove:
			m.reportRemoved(before[choice.Index-1].Name)
		}
		m.clampCursors()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.Reset()
}

func (m *Model) move(delta int) {
	switch m.focused {
	case CatalogPane:
		m.catalogCursor = clamp(m.catalogCursor+delta, 0, m.session.Catalog().Len()-1)
		m.scrollToCursor()
	case ActivePane:
		m.activeCursor = clamp(m.activeCursor+delta, 0, m.session.Len()-1)
	}
}

func (m Model) create(index int) (tea.Model, tea.Cmd) {
	live, err := m.session.Create(index)
	if err != nil {
		return m.fail(err)
	}
	m.reportCreated(live)
	return m, nil
}

func (m Model) remove(index int) (tea.Model, tea.Cmd) {
	allocs := m.session.Allocations()
	if err := m.session.Remove(index); err != nil {
		return m.fail(err)
	}
	m.reportRemoved(allocs[index-1].Name)
	m.clampCursors()
	return m, nil
}

// fail shows recoverable errors in the status line and quits on release
// failures.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	if lab.IsFatal(err) {
		m.fatal = err
		return m, tea.Quit
	}
	m.setError(selection.Message(err))
	return m, nil
}

func (m *Model) reportCreated(live int) {
	allocs := m.session.Allocations()
	a := allocs[live-1]
	m.setStatus(fmt.Sprintf("Created %d. %s (%s)", a.Index, a.Name, sizefmt.Human(a.Size)))
}

func (m *Model) reportRemoved(name string) {
	m.setStatus(fmt.Sprintf("Removed %s; later allocations moved up one index", name))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusError = true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
