// Package insightspanel renders the insights report sections.
package insightspanel

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/skillforge/internal/insights"
	"github.com/zjrosen/skillforge/internal/ui/styles"
)

// RefreshMsg asks the dashboard to reload the report.
type RefreshMsg struct{}

// Model is the panel state.
type Model struct {
	report   insights.Report
	loaded   bool
	loading  bool
	loadedAt time.Time
	viewport viewport.Model
	width    int
	height   int
}

// New creates an empty panel.
func New() Model {
	return Model{viewport: viewport.New(0, 0)}
}

// SetLoading marks a reload in progress. The previous report stays visible.
func (m Model) SetLoading() Model {
	m.loading = true
	m.refreshContent()
	return m
}

// Loading reports whether a reload is in progress.
func (m Model) Loading() bool { return m.loading }

// SetReport shows report.
func (m Model) SetReport(report insights.Report, at time.Time) Model {
	m.report = report
	m.loaded = true
	m.loading = false
	m.loadedAt = at
	m.refreshContent()
	return m
}

// SetSize sets the panel size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-2, 1)
	m.viewport.Height = max(height-3, 1)
	m.refreshContent()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles scrolling; r requests a reload.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "r" {
		if m.loading {
			return m, nil
		}
		return m, func() tea.Msg { return RefreshMsg{} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refreshContent() {
	if m.width == 0 {
		return
	}
	m.viewport.SetContent(Render(m.report, m.loaded, m.viewport.Width-1))
}

// Render formats the report sections. Before the first load it shows a
// loading line.
func Render(report insights.Report, loaded bool, width int) string {
	if !loaded {
		return styles.MutedStyle.Render("Loading insights...")
	}

	blocks := make([]string, 0, 5)
	for _, section := range report.Sections() {
		lines := []string{styles.TitleStyle.Render(section.Title)}
		for _, line := range section.Lines {
			wrapped := styles.Wrap(line, width)
			if section.Err != nil {
				wrapped = styles.ErrorStyle.Render(wrapped)
			}
			lines = append(lines, wrapped)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// View renders the panel.
func (m Model) View() string {
	info := ""
	switch {
	case m.loading:
		info = "refreshing..."
	case m.loaded:
		info = "updated " + m.loadedAt.Format("15:04:05")
	}
	body := m.viewport.View() + "\n" + styles.HelpStyle.Render("r refresh • ↑/↓ scroll")
	return styles.Panel{
		Title:   "Insights",
		Info:    info,
		Width:   m.width,
		Height:  m.height,
		Focused: true,
	}.Render(body)
}
