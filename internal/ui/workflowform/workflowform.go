// Package workflowform is the create-workflow form.
//
// The form only collects and validates input. Submitting emits SubmitMsg;
// the owner runs the create call and reports back through Done or Failed.
// While a submit is outstanding the form refuses to submit again.
package workflowform

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/skillforge/internal/ui/shared/editor"
	"github.com/zjrosen/skillforge/internal/ui/styles"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// SubmittingLabel replaces the submit button text while a create is in flight.
const SubmittingLabel = "Creating Workflow..."

const submitLabel = "Create Workflow"

// editorTarget routes editor.FinishedMsg back to the description field.
const editorTarget = "workflowform.description"

// Field identifies a focusable form element.
type Field int

const (
	FieldName Field = iota
	FieldDescription
	FieldPriority
	FieldSubmit
	fieldCount
)

// SubmitMsg carries a validated create request.
type SubmitMsg struct {
	Request wfdomain.CreateRequest
}

// CancelMsg is sent when the user leaves the form.
type CancelMsg struct{}

// Model is the form state.
type Model struct {
	name        textinput.Model
	description textarea.Model
	priority    int
	focused     Field
	submitting  bool
	err         string
	width       int
	height      int
}

// New creates an empty form with the name field focused.
func New() Model {
	name := textinput.New()
	name.Placeholder = "Workflow name"
	name.CharLimit = 120
	name.Prompt = ""
	name.Focus()

	desc := textarea.New()
	desc.Placeholder = "Describe what the workflow should accomplish (ctrl+g opens $EDITOR)"
	desc.ShowLineNumbers = false
	desc.SetHeight(5)
	desc.Prompt = ""

	return Model{
		name:        name,
		description: desc,
		priority:    priorityIndex(wfdomain.PriorityMedium),
	}
}

func priorityIndex(p wfdomain.Priority) int {
	for i, candidate := range wfdomain.Priorities() {
		if candidate == p {
			return i
		}
	}
	return 0
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the panel size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	inner := max(width-6, 10)
	m.name.Width = inner
	m.description.SetWidth(inner)
	return m
}

// Submitting reports whether a create is in flight.
func (m Model) Submitting() bool { return m.submitting }

// Err returns the message shown under the form.
func (m Model) Err() string { return m.err }

// Focused returns the focused field.
func (m Model) Focused() Field { return m.focused }

// Failed re-enables the form after a failed create and shows msg.
func (m Model) Failed(msg string) Model {
	m.submitting = false
	m.err = msg
	return m
}

// Done resets the form after a successful create.
func (m Model) Done() Model {
	return New().SetSize(m.width, m.height)
}

// Request builds the create request from the current values.
func (m Model) Request() wfdomain.CreateRequest {
	return wfdomain.CreateRequest{
		Name:        m.name.Value(),
		Description: m.description.Value(),
		Priority:    wfdomain.Priorities()[m.priority],
	}
}

// Update handles input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editor.ExecMsg:
		if msg.Target == editorTarget {
			return m, msg.ExecCmd()
		}
		return m, nil

	case editor.FinishedMsg:
		if msg.Target != editorTarget {
			return m, nil
		}
		if msg.Err != nil {
			m.err = "Editor failed: " + msg.Err.Error()
			return m, nil
		}
		m.description.SetValue(msg.Content)
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			// Input stays frozen until Done or Failed.
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		case "tab":
			return m.focus((m.focused + 1) % fieldCount), nil
		case "shift+tab":
			return m.focus((m.focused + fieldCount - 1) % fieldCount), nil
		case "ctrl+s":
			return m.submit()
		case "ctrl+g":
			return m, editor.OpenCmd(editorTarget, m.description.Value())
		}
		return m.updateField(msg)
	}

	return m, nil
}

func (m Model) updateField(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focused {
	case FieldName:
		if msg.String() == "enter" {
			return m.focus(FieldDescription), nil
		}
		m.name, cmd = m.name.Update(msg)
	case FieldDescription:
		m.description, cmd = m.description.Update(msg)
	case FieldPriority:
		n := len(wfdomain.Priorities())
		switch msg.String() {
		case "left", "h":
			m.priority = (m.priority + n - 1) % n
		case "right", "l", " ":
			m.priority = (m.priority + 1) % n
		case "enter":
			return m.focus(FieldSubmit), nil
		}
	case FieldSubmit:
		if msg.String() == "enter" {
			return m.submit()
		}
	}
	return m, cmd
}

func (m Model) focus(f Field) Model {
	m.focused = f
	m.name.Blur()
	m.description.Blur()
	switch f {
	case FieldName:
		m.name.Focus()
	case FieldDescription:
		m.description.Focus()
	}
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	req := m.Request()
	if err := req.Validate(); err != nil {
		m.err = validationText(err)
		return m, nil
	}
	m.submitting = true
	m.err = ""
	return m, func() tea.Msg { return SubmitMsg{Request: req} }
}

func validationText(err error) string {
	switch {
	case errors.Is(err, wfdomain.ErrNameRequired):
		return "Please enter a workflow name"
	case errors.Is(err, wfdomain.ErrDescriptionRequired):
		return "Please enter a workflow description"
	}
	return err.Error()
}

// View renders the form.
func (m Model) View() string {
	label := func(f Field, text string) string {
		if m.focused == f && !m.submitting {
			return styles.SelectedRowStyle.Render("▸ " + text)
		}
		return styles.TitleStyle.Render("  " + text)
	}

	var b strings.Builder
	b.WriteString(label(FieldName, "Name"))
	b.WriteString("\n  ")
	b.WriteString(m.name.View())
	b.WriteString("\n\n")
	b.WriteString(label(FieldDescription, "Description"))
	b.WriteString("\n")
	b.WriteString(indent(m.description.View()))
	b.WriteString("\n\n")
	b.WriteString(label(FieldPriority, "Priority"))
	b.WriteString("\n  ")
	b.WriteString(m.priorityView())
	b.WriteString("\n\n  ")
	b.WriteString(m.submitView())
	if m.err != "" {
		b.WriteString("\n\n  ")
		b.WriteString(styles.ErrorStyle.Render(m.err))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("  tab next field • ctrl+s create • ctrl+g edit description • esc back"))

	return styles.Panel{
		Title:   "New Workflow",
		Width:   m.width,
		Height:  m.height,
		Focused: true,
	}.Render(b.String())
}

func (m Model) priorityView() string {
	parts := make([]string, 0, len(wfdomain.Priorities()))
	for i, p := range wfdomain.Priorities() {
		if i == m.priority {
			parts = append(parts, styles.PriorityBadge(p))
			continue
		}
		parts = append(parts, styles.MutedStyle.Render(" "+p.Label()+" "))
	}
	return strings.Join(parts, " ")
}

func (m Model) submitView() string {
	switch {
	case m.submitting:
		return styles.DisabledButton.Render(SubmittingLabel)
	case m.focused == FieldSubmit:
		return styles.ButtonStyle.Render(submitLabel)
	}
	return styles.DisabledButton.Render(submitLabel)
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
