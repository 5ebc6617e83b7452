// Package offline provides the view shown when the first workflow load fails.
package offline

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/skillforge/internal/ui/shared/chainart"
	"github.com/zjrosen/skillforge/internal/ui/styles"
)

// RetryMsg asks the dashboard to try loading again.
type RetryMsg struct{}

// Model holds the offline view state.
type Model struct {
	baseURL  string
	err      string
	retrying bool
	width    int
	height   int
}

// New creates the view for the server at baseURL.
func New(baseURL string) Model {
	return Model{baseURL: baseURL}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// WithError records the error from the latest attempt and ends a retry in progress.
func (m Model) WithError(msg string) Model {
	m.err = msg
	m.retrying = false
	return m
}

// Retrying reports whether a retry is in flight.
func (m Model) Retrying() bool { return m.retrying }

// Update handles messages. r retries unless a retry is already running.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.retrying {
				return m, nil
			}
			m.retrying = true
			return m, func() tea.Msg { return RetryMsg{} }
		}
	}
	return m, nil
}

// View renders the offline state.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).MarginTop(1)
	message := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).MarginTop(2)

	var content strings.Builder
	content.WriteString(chainart.Broken())
	content.WriteString("\n\n")
	content.WriteString(title.Render("Can't reach the SkillForge API"))
	content.WriteString("\n\n")
	content.WriteString(message.Render("Server: " + m.baseURL))
	if m.err != "" {
		content.WriteString("\n")
		content.WriteString(styles.ErrorStyle.Render(styles.Wrap(m.err, max(m.width-4, 20))))
	}
	content.WriteString("\n\n")
	content.WriteString(message.Render("  1. Check that the server is running"))
	content.WriteString("\n")
	content.WriteString(message.Render("  2. Use --api-url or SKILLFORGE_API_BASE_URL to point at another server"))
	content.WriteString("\n")
	content.WriteString(message.Render("  3. Set api.base_url in ~/.config/skillforge/config.yaml"))
	content.WriteString("\n\n")
	if m.retrying {
		content.WriteString(hint.Render("Retrying..."))
	} else {
		content.WriteString(hint.Render("Press r to try again, q to quit"))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content.String())
}

// SetSize updates the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}
