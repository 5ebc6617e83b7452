// Package workflowdetail shows one workflow record with its AI output.
package workflowdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/skillforge/internal/ui/styles"
	"github.com/zjrosen/skillforge/internal/ui/workflowlist"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// CloseMsg asks the dashboard to return to the list.
type CloseMsg struct{}

// Model is the detail view state.
type Model struct {
	id       string
	workflow wfdomain.Workflow
	loaded   bool
	err      string
	viewport viewport.Model
	width    int
	height   int
}

// New creates a detail view that is waiting for the record with the given id.
func New(id string) Model {
	return Model{id: id, viewport: viewport.New(0, 0)}
}

// ID returns the id of the displayed workflow.
func (m Model) ID() string { return m.id }

// Workflow returns the loaded record.
func (m Model) Workflow() (wfdomain.Workflow, bool) {
	return m.workflow, m.loaded
}

// SetWorkflow shows wf.
func (m Model) SetWorkflow(wf wfdomain.Workflow) Model {
	m.workflow = wf
	m.loaded = true
	m.err = ""
	m.refreshContent()
	m.viewport.GotoTop()
	return m
}

// SetError shows a load failure in place of the record.
func (m Model) SetError(msg string) Model {
	m.err = msg
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

// Update handles scrolling. esc closes; d asks to delete the shown record.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return CloseMsg{} }
		case "d":
			if m.loaded {
				wf := m.workflow
				return m, func() tea.Msg {
					return workflowlist.DeleteRequestMsg{ID: wf.ID, Name: wf.DisplayName()}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refreshContent() {
	if m.width == 0 {
		return
	}
	m.viewport.SetContent(m.content(m.viewport.Width - 1))
}

func (m Model) content(width int) string {
	switch {
	case m.err != "":
		return styles.ErrorStyle.Render(styles.Wrap(m.err, width))
	case !m.loaded:
		return styles.MutedStyle.Render("Loading workflow details...")
	}

	wf := m.workflow
	field := func(label, value string) string {
		return styles.MutedStyle.Render(fmt.Sprintf("%-14s", label)) + value
	}

	badges := make([]string, 0, 2)
	for _, label := range wf.Integrations() {
		badges = append(badges, styles.EnhancementBadge(label))
	}

	lines := []string{
		styles.TitleStyle.Render(wf.DisplayName()),
		"",
		field("ID", wf.ID),
		field("Priority", styles.PriorityBadge(wf.Priority)),
		field("Status", styles.StatusBadge(wf.Status)),
		field("Created", wf.CreatedAt.Display()),
	}
	if wf.Deadline != "" {
		lines = append(lines, field("Deadline", wf.Deadline))
	}
	if len(wf.Stakeholders) > 0 {
		lines = append(lines, field("Stakeholders", strings.Join(wf.Stakeholders, ", ")))
	}
	lines = append(lines,
		field("Integrations", strings.Join(badges, " ")),
		field("Tokens Used", wf.TokensUsed()),
		"",
		styles.TitleStyle.Render("Description"),
		styles.Wrap(wf.DisplayDescription(), width),
		"",
		styles.TitleStyle.Render("AI Output"),
		styles.Markdown(wf.Output(), width),
	)
	return strings.Join(lines, "\n")
}

// View renders the panel.
func (m Model) View() string {
	info := ""
	if m.viewport.TotalLineCount() > m.viewport.Height {
		info = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
	}
	body := m.viewport.View() + "\n" + styles.HelpStyle.Render("esc back • d delete • y copy id • ↑/↓ scroll")
	return styles.Panel{
		Title:   "Workflow Details",
		Info:    info,
		Width:   m.width,
		Height:  m.height,
		Focused: true,
	}.Render(body)
}
