package src

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	title := titleStyle.Render(appName + " " + version)
	help := subtitleStyle.Render(strings.Join([]string{
		helpString(m.keys.quit),
		helpString(m.keys.tab),
		helpString(m.keys.selectIt),
		helpString(m.keys.command),
		helpString(m.keys.find),
		helpString(m.keys.sync),
		helpString(m.keys.help),
	}, " • "))
	fBar := fBarStyle.Render(fBarContent)

	switch m.mode {
	case progressMode:
		return lipgloss.JoinVertical(lipgloss.Left, title, m.progress.View(), m.statusMsg,
			subtitleStyle.Render(helpString(m.keys.cancel)), fBar)
	case viewMode:
		header := subtitleStyle.Render("Viewing: " + m.viewerTitle)
		footer := subtitleStyle.Render(fmt.Sprintf("%3.f%% • esc/F3: close", m.viewer.ScrollPercent()*100))
		return lipgloss.JoinVertical(lipgloss.Left, title, header, previewStyle.Render(m.viewer.View()), footer)
	case menuMode:
		return lipgloss.JoinVertical(lipgloss.Left, title, listStyle.Render(m.menuList.View()), m.statusMsg, fBar)
	}

	panes := make([]string, len(m.sides))
	for i, s := range m.sides {
		style := listStyle
		if i == m.activePanel {
			style = activeListStyle
		}
		panes[i] = style.Width(s.fileList.Width()).Render(s.fileList.View())
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	var bottom string
	switch m.mode {
	case promptMode:
		bottom = inputStyle.Render(m.prompt.View())
	case confirmMode:
		bottom = inputStyle.Render(m.confirmText() + "  [y/N]")
	default:
		bottom = inputStyle.Render(m.commandInput.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, content, bottom, m.statusMsg, fBar, help)
}

func (m Model) confirmText() string {
	if m.confirm == confirmSync && m.syncPlan != nil {
		return fmt.Sprintf("Copy %d of %d entries from %s to %s?",
			m.syncPlan.Pending(), len(m.syncPlan.Items), m.syncPlan.Active, m.syncPlan.Inactive)
	}
	sel := m.sides[m.activePanel].pane.Selection()
	if len(sel) == 1 {
		return fmt.Sprintf("Delete %s?", sel[0].Name)
	}
	return fmt.Sprintf("Delete %d entries?", len(sel))
}
