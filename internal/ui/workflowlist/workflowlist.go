// Package workflowlist renders the reconciled workflow list as a selectable table.
package workflowlist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/skillforge/internal/ui/shared/table"
	"github.com/zjrosen/skillforge/internal/ui/styles"
	"github.com/zjrosen/skillforge/internal/workflows"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// Intent messages sent to the dashboard.
type (
	// OpenDetailMsg asks for the detail view of a workflow.
	OpenDetailMsg struct{ ID string }
	// DeleteRequestMsg asks for a workflow to be deleted after confirmation.
	DeleteRequestMsg struct{ ID, Name string }
	// NewWorkflowMsg asks for the create form.
	NewWorkflowMsg struct{}
	// RefreshRequestMsg asks for the list to be reloaded.
	RefreshRequestMsg struct{}
)

var columns = []table.Column{
	{Key: "name", Title: "Name", MinWidth: 16},
	{Key: "priority", Title: "Priority", Width: 10},
	{Key: "status", Title: "Status", Width: 11},
	{Key: "integrations", Title: "Integrations", MinWidth: 14, MaxWidth: 36, HideBelow: 90},
	{Key: "created", Title: "Created", Width: 16, HideBelow: 70},
	{Key: "id", Title: "ID", MinWidth: 8, MaxWidth: 14, HideBelow: 110},
}

// Model is the list state.
type Model struct {
	view    workflows.ListView
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
	loading bool
}

// New creates an empty list that shows a loading line until SetView is called.
func New() Model {
	return Model{loading: true, focused: true}
}

// SetView replaces the displayed records. The cursor stays on the same
// workflow when it is still present.
func (m Model) SetView(v workflows.ListView) Model {
	selectedID := ""
	if wf, ok := m.Selected(); ok {
		selectedID = wf.ID
	}

	m.view = v
	m.loading = false
	m.cursor = 0
	for i, wf := range v.Workflows {
		if wf.ID == selectedID {
			m.cursor = i
			break
		}
	}
	m.clampOffset()
	return m
}

// Selected returns the workflow under the cursor.
func (m Model) Selected() (wfdomain.Workflow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Workflows) {
		return wfdomain.Workflow{}, false
	}
	return m.view.Workflows[m.cursor], true
}

// Len returns the number of listed workflows.
func (m Model) Len() int { return len(m.view.Workflows) }

// SetSize sets the outer size of the panel.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.clampOffset()
	return m
}

// SetFocused toggles the focused border.
func (m Model) SetFocused(focused bool) Model {
	m.focused = focused
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles navigation and turns action keys into intent messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.move(1)
	case "k", "up":
		m.move(-1)
	case "pgdown", "ctrl+d":
		m.move(m.rows())
	case "pgup", "ctrl+u":
		m.move(-m.rows())
	case "g", "home":
		m.move(-len(m.view.Workflows))
	case "G", "end":
		m.move(len(m.view.Workflows))
	case "n":
		return m, emit(NewWorkflowMsg{})
	case "r":
		return m, emit(RefreshRequestMsg{})
	case "enter":
		if wf, ok := m.Selected(); ok {
			return m, emit(OpenDetailMsg{ID: wf.ID})
		}
	case "d", "delete":
		if wf, ok := m.Selected(); ok {
			return m, emit(DeleteRequestMsg{ID: wf.ID, Name: wf.DisplayName()})
		}
	}
	return m, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *Model) move(delta int) {
	n := len(m.view.Workflows)
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.clampOffset()
}

// rows is the number of table rows that fit below the header.
func (m Model) rows() int {
	return max(m.height-3, 1)
}

func (m *Model) clampOffset() {
	rows := m.rows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(min(m.offset, len(m.view.Workflows)-rows), 0)
}

// Row formats one workflow as table cells.
func Row(wf wfdomain.Workflow) table.Row {
	badges := make([]string, 0, 2)
	for _, label := range wf.Integrations() {
		badges = append(badges, styles.EnhancementBadge(label))
	}
	return table.Row{
		"id":           wf.ID,
		"name":         wf.DisplayName(),
		"priority":     styles.PriorityBadge(wf.Priority),
		"status":       styles.StatusBadge(wf.Status),
		"integrations": strings.Join(badges, " "),
		"created":      wf.CreatedAt.Display(),
	}
}

// View renders the panel.
func (m Model) View() string {
	panel := styles.Panel{
		Title:   "Workflows",
		Width:   m.width,
		Height:  m.height,
		Focused: m.focused,
	}

	switch {
	case m.loading:
		return panel.Render(styles.MutedStyle.Render("Loading workflows..."))
	case m.view.Empty:
		panel.Info = "n new"
		return panel.Render(styles.MutedStyle.Render(m.view.Placeholder))
	}

	panel.Info = fmt.Sprintf("%d workflows", len(m.view.Workflows))
	if len(m.view.Workflows) == 1 {
		panel.Info = "1 workflow"
	}

	layout := table.Fit(columns, max(m.width-4, 1))
	lines := []string{" " + layout.Header()}

	end := min(m.offset+m.rows(), len(m.view.Workflows))
	for i := m.offset; i < end; i++ {
		line := layout.Render(Row(m.view.Workflows[i]))
		if i == m.cursor {
			lines = append(lines, styles.SelectedRowStyle.Render("▸")+line)
			continue
		}
		lines = append(lines, " "+line)
	}
	return panel.Render(strings.Join(lines, "\n"))
}
