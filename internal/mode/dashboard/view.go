package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/skillforge/internal/ui/styles"
)

const (
	tabBarHeight    = 1
	statusBarHeight = 1
)

func tabZoneID(t Tab) string {
	return "dashboard-tab-" + strings.ToLower(t.String())
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.offlineMode {
		return m.offline.View()
	}

	parts := []string{m.tabBarView(), m.bodyView()}
	if m.cfg.UI.ShowStatusBar {
		parts = append(parts, m.statusBarView())
	}
	out := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.confirm != nil {
		out = m.confirm.Overlay(out)
	}
	if m.cfg.Zones != nil {
		out = m.cfg.Zones.Scan(out)
	}
	return out
}

func (m Model) tabBarView() string {
	tabs := make([]string, len(tabNames))
	for i := range tabNames {
		t := Tab(i)
		style := styles.TabStyle
		if t == m.activeTab {
			style = styles.ActiveTabStyle
		}
		label := style.Render(fmt.Sprintf("%d %s", i+1, t))
		if m.cfg.Zones != nil {
			label = m.cfg.Zones.Mark(tabZoneID(t), label)
		}
		tabs[i] = label
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	title := styles.TitleStyle.Render("SkillForge")
	gap := m.width - lipgloss.Width(bar) - lipgloss.Width(title) - 1
	if gap < 1 {
		return styles.TruncateString(bar, m.width)
	}
	return bar + strings.Repeat(" ", gap) + title
}

func (m Model) bodyView() string {
	switch m.activeTab {
	case TabAgents:
		return m.chat.View()
	case TabInsights:
		return m.insights.View()
	}
	switch m.screen {
	case screenForm:
		return m.form.View()
	case screenDetail:
		return m.detail.View()
	}
	return m.list.View()
}

func (m Model) statusBarView() string {
	left := fmt.Sprintf("%s • %d workflows", m.cfg.BaseURL, m.list.Len())
	if m.refreshing {
		left += " • refreshing..."
	}

	right := m.toast
	if right == "" {
		right = m.helpText()
	}
	rightStyle := styles.HelpStyle
	switch {
	case m.toast != "" && m.toastErr:
		rightStyle = styles.ErrorStyle
	case m.toast != "":
		rightStyle = styles.SuccessStyle
	}

	leftView := styles.StatusBarStyle.Render(left)
	avail := m.width - lipgloss.Width(leftView) - 2
	if avail < 4 {
		return styles.TruncateString(leftView, m.width)
	}
	rightView := rightStyle.Render(styles.TruncateString(right, avail))
	gap := max(m.width-lipgloss.Width(leftView)-lipgloss.Width(rightView)-1, 1)
	return leftView + strings.Repeat(" ", gap) + rightView
}

func (m Model) helpText() string {
	switch m.activeTab {
	case TabAgents:
		return "tab switch • ctrl+y copy reply • ctrl+c quit"
	case TabInsights:
		return "1-3/tab switch • r refresh • q quit"
	}
	switch m.screen {
	case screenForm:
		return "ctrl+s create • esc back"
	case screenDetail:
		return "esc back • d delete • y copy id"
	}
	return "n new • enter details • d delete • y copy id • r refresh • q quit"
}
