package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joshuapare/memlab/internal/sizefmt"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View renders the entire UI
func (m Model) View() string {
	if !m.showHelp {
		return m.renderMain()
	}

	// Recreated each render so the background sees the latest state
	help := overlay.New(
		&helpViewModel{keys: m.keys},
		&mainViewModel{model: &m},
		overlay.Center,
		overlay.Center,
		0,
		0,
	)
	return help.View()
}

func (m Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderCatalog(), " ", m.renderActive()),
	}
	if m.prompting {
		sections = append(sections, m.prompt.View())
	}
	sections = append(sections, m.renderStatus(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	info := fmt.Sprintf("PID %d  live %d  requested %s",
		m.pid, m.session.Len(), sizefmt.Human(m.session.RequestedBytes()))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("memlab"),
		"  ",
		pidStyle.Render(info),
	)
}

func (m Model) renderCatalog() string {
	listings := m.session.Catalog().List()
	lines := make([]string, len(listings))
	for i, l := range listings {
		line := fmt.Sprintf("%2d. %s", l.Index, l.Name)
		if i == m.catalogCursor && m.focused == CatalogPane {
			line = selectedStyle.Render(line)
		}
		lines[i] = line
	}

	vp := m.catalogView
	vp.SetContent(strings.Join(lines, "\n"))

	style := paneStyle
	if m.focused == CatalogPane {
		style = activePaneStyle
	}
	return style.Width(paneWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, paneTitleStyle.Render("Catalog"), vp.View()),
	)
}

func (m Model) renderActive() string {
	allocs := m.session.Allocations()
	height := m.catalogView.Height

	var lines []string
	if len(allocs) == 0 {
		lines = append(lines, mutedStyle.Render("no live allocations"))
	}

	// Keep the cursor row on screen without a second viewport.
	start := 0
	if m.activeCursor >= height {
		start = m.activeCursor - height + 1
	}
	for i := start; i < len(allocs) && i < start+height; i++ {
		a := allocs[i]
		line := fmt.Sprintf("%2d. %s", a.Index, a.Name)
		if i == m.activeCursor && m.focused == ActivePane {
			line = selectedStyle.Render(line)
		}
		if a.ResidentKnown {
			line += mutedStyle.Render(" rss " + sizefmt.Human(a.Resident))
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	style := paneStyle
	if m.focused == ActivePane {
		style = activePaneStyle
	}
	return style.Width(paneWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, paneTitleStyle.Render("Active allocations"), strings.Join(lines, "\n")),
	)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusError {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m Model) renderFooter() string {
	return mutedStyle.Render("enter create • x remove • : select • y copy PID • ? help • q quit")
}

// mainViewModel wraps the main UI for use as overlay background
type mainViewModel struct {
	model *Model
}

func (v *mainViewModel) Init() tea.Cmd { return nil }

func (v *mainViewModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v *mainViewModel) View() string { return v.model.renderMain() }

// helpViewModel renders the key bindings as the overlay foreground
type helpViewModel struct {
	keys KeyMap
}

func (h *helpViewModel) Init() tea.Cmd { return nil }

func (h *helpViewModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

func (h *helpViewModel) View() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, k := range h.keys.helpBindings() {
		help := k.Help()
		fmt.Fprintf(&b, "%s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-6s", help.Key)), help.Desc)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Removing shifts every later allocation up one index."))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or esc to close."))
	return helpBoxStyle.Render(b.String())
}
