package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pickterm/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	focusedBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	blurredBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	groupStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingTop(1)
)

func panelTitle(p model.Panel) string {
	if p == model.PanelSelected {
		return "Selected recipients"
	}
	return "Available recipients"
}

func (m *AppModel) panelWidth() int {
	if m.width <= 0 {
		return 40
	}
	return m.width/2 - 2
}

func (m *AppModel) renderPanel(p model.Panel) string {
	ps := m.panels[p]
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", panelTitle(p), m.store.Len(p))))
	b.WriteString("\n")
	b.WriteString(ps.input.View())
	b.WriteString("\n\n")

	rows := panelRows(m.store, p)
	if len(rows) == 0 {
		if strings.TrimSpace(m.store.Search(p)) != "" {
			b.WriteString(dimStyle.Render("no recipients match"))
		} else {
			b.WriteString(dimStyle.Render("nothing here"))
		}
		b.WriteString("\n")
	}

	expanded := m.store.EffectiveExpansion(p)
	for i, r := range rows {
		var line string
		switch r.kind {
		case rowGroup:
			arrow := "▸"
			if _, open := expanded[r.domain]; open {
				arrow = "▾"
			}
			line = groupStyle.Render(fmt.Sprintf("%s %s (%d)", arrow, r.domain, r.count))
		case rowMember:
			line = "    " + r.recipient.Email
		case rowIndividual:
			line = "  " + r.recipient.Email
		}

		if p == m.focus && i == ps.cursor && !ps.searching {
			b.WriteString(cursorStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	box := blurredBox
	if p == m.focus {
		box = focusedBox
	}
	return box.Width(m.panelWidth()).Render(b.String())
}

func footer() string {
	return footerStyle.Render("tab: panel  /: search  enter: move/toggle  a: move domain  r: reload  q: quit")
}

// View renders both panels side by side with the footer and any transient
// status underneath.
func (m *AppModel) View() string {
	if m.Err != nil {
		return "Error: " + m.Err.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPanel(model.PanelAvailable),
		m.renderPanel(model.PanelSelected),
	))
	b.WriteString("\n")
	b.WriteString(footer())
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return b.String()
}
