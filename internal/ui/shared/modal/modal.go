// Package modal provides a yes/no confirmation dialog drawn over another view.
package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/skillforge/internal/ui/styles"
)

// Field is the focused button.
type Field int

const (
	FieldConfirm Field = iota
	FieldCancel
)

// Config describes the dialog.
type Config struct {
	Title   string
	Message string
	// ConfirmLabel and CancelLabel default to "Yes" and "No".
	ConfirmLabel string
	CancelLabel  string
	// Destructive draws the confirm button in the error color.
	Destructive bool
	// Payload is returned unchanged in ConfirmedMsg so the parent knows what
	// was confirmed.
	Payload any
}

// ConfirmedMsg is sent when the user accepts.
type ConfirmedMsg struct {
	Payload any
}

// CancelMsg is sent when the user declines or dismisses the dialog.
type CancelMsg struct{}

const boxWidth = 50

// Model is the dialog state.
type Model struct {
	cfg     Config
	focused Field
	width   int
	height  int
}

// New creates a dialog with the confirm button focused.
func New(cfg Config) Model {
	if cfg.ConfirmLabel == "" {
		cfg.ConfirmLabel = "Yes"
	}
	if cfg.CancelLabel == "" {
		cfg.CancelLabel = "No"
	}
	return Model{cfg: cfg, focused: FieldConfirm}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// SetSize records the size of the view the dialog is drawn over.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the focused button.
func (m Model) Focused() Field { return m.focused }

// Update handles navigation and the answer keys. y/n answer directly, enter
// activates the focused button, esc cancels.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "right", "tab", "shift+tab", "h", "l":
			if m.focused == FieldConfirm {
				m.focused = FieldCancel
			} else {
				m.focused = FieldConfirm
			}
		case "y", "Y":
			return m, m.confirm()
		case "n", "N", "esc", "q":
			return m, cancel
		case "enter":
			if m.focused == FieldConfirm {
				return m, m.confirm()
			}
			return m, cancel
		}
	}
	return m, nil
}

func (m Model) confirm() tea.Cmd {
	payload := m.cfg.Payload
	return func() tea.Msg { return ConfirmedMsg{Payload: payload} }
}

func cancel() tea.Msg { return CancelMsg{} }

// View renders the dialog box.
func (m Model) View() string {
	inner := boxWidth - 4

	confirmStyle, cancelStyle := styles.DisabledButton, styles.DisabledButton
	active := styles.ButtonStyle
	if m.cfg.Destructive {
		active = styles.DangerButton
	}
	if m.focused == FieldConfirm {
		confirmStyle = active
	} else {
		cancelStyle = styles.ButtonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		confirmStyle.Render(m.cfg.ConfirmLabel+" (y)"),
		"  ",
		cancelStyle.Render(m.cfg.CancelLabel+" (n)"),
	)

	var body strings.Builder
	body.WriteString(styles.TitleStyle.Render(m.cfg.Title))
	if m.cfg.Message != "" {
		body.WriteString("\n\n")
		body.WriteString(styles.Wrap(m.cfg.Message, inner))
	}
	body.WriteString("\n\n")
	body.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, buttons))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Padding(0, 1).
		Width(boxWidth - 2).
		Render(body.String())
}

// Overlay draws the dialog centered over bg, keeping the background visible
// around it.
func (m Model) Overlay(bg string) string {
	box := strings.Split(m.View(), "\n")
	boxW := lipgloss.Width(m.View())

	lines := strings.Split(bg, "\n")
	for len(lines) < m.height {
		lines = append(lines, "")
	}

	top := max((len(lines)-len(box))/2, 0)
	left := max((m.width-boxW)/2, 0)

	for i, row := range box {
		y := top + i
		if y >= len(lines) {
			break
		}
		bgLine := lines[y]
		prefix := ansi.Truncate(bgLine, left, "")
		if pad := left - lipgloss.Width(prefix); pad > 0 {
			prefix += strings.Repeat(" ", pad)
		}
		suffix := ansi.TruncateLeft(bgLine, left+boxW, "")
		lines[y] = prefix + row + suffix
	}
	return strings.Join(lines, "\n")
}
