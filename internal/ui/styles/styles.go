// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/skillforge/internal/agents"
	"github.com/zjrosen/skillforge/internal/config"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// Theme colors, set by ApplyTheme.
var (
	TextPrimaryColor    lipgloss.Color
	TextSecondaryColor  lipgloss.Color
	TextMutedColor      lipgloss.Color
	BorderDefaultColor  lipgloss.Color
	BorderFocusColor    lipgloss.Color
	AccentColor         lipgloss.Color
	StatusSuccessColor  lipgloss.Color
	StatusWarningColor  lipgloss.Color
	StatusErrorColor    lipgloss.Color
	StatusInfoColor     lipgloss.Color
	PriorityHighColor   lipgloss.Color
	PriorityMediumColor lipgloss.Color
	PriorityLowColor    lipgloss.Color
	ChatUserColor       lipgloss.Color
	ChatAssistantColor  lipgloss.Color
)

// Derived styles, rebuilt whenever the colors change.
var (
	TitleStyle       lipgloss.Style
	MutedStyle       lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	HelpStyle        lipgloss.Style
	TabStyle         lipgloss.Style
	ActiveTabStyle   lipgloss.Style
	SelectedRowStyle lipgloss.Style
	StatusBarStyle   lipgloss.Style
	UserLabelStyle   lipgloss.Style
	AgentLabelStyle  lipgloss.Style
	ButtonStyle      lipgloss.Style
	DangerButton     lipgloss.Style
	DisabledButton   lipgloss.Style
	badgeStyle       lipgloss.Style
)

func init() {
	_ = ApplyTheme(config.ThemeConfig{Mode: "dark"})
}

func setColors(c map[ColorToken]string) {
	TextPrimaryColor = lipgloss.Color(c[TokenTextPrimary])
	TextSecondaryColor = lipgloss.Color(c[TokenTextSecondary])
	TextMutedColor = lipgloss.Color(c[TokenTextMuted])
	BorderDefaultColor = lipgloss.Color(c[TokenBorderDefault])
	BorderFocusColor = lipgloss.Color(c[TokenBorderFocus])
	AccentColor = lipgloss.Color(c[TokenAccent])
	StatusSuccessColor = lipgloss.Color(c[TokenStatusSuccess])
	StatusWarningColor = lipgloss.Color(c[TokenStatusWarning])
	StatusErrorColor = lipgloss.Color(c[TokenStatusError])
	StatusInfoColor = lipgloss.Color(c[TokenStatusInfo])
	PriorityHighColor = lipgloss.Color(c[TokenPriorityHigh])
	PriorityMediumColor = lipgloss.Color(c[TokenPriorityMedium])
	PriorityLowColor = lipgloss.Color(c[TokenPriorityLow])
	ChatUserColor = lipgloss.Color(c[TokenChatUser])
	ChatAssistantColor = lipgloss.Color(c[TokenChatAssistant])

	rebuildStyles()
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	TabStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(TextSecondaryColor)
	ActiveTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
		Foreground(TextPrimaryColor).Background(BorderFocusColor)
	SelectedRowStyle = lipgloss.NewStyle().Bold(true).Foreground(BorderFocusColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
	UserLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ChatUserColor)
	AgentLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ChatAssistantColor)
	ButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).Background(BorderFocusColor)
	DangerButton = ButtonStyle.Background(StatusErrorColor)
	DisabledButton = lipgloss.NewStyle().Padding(0, 2).
		Foreground(TextMutedColor).Background(BorderDefaultColor)
	badgeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
}

// PriorityBadge renders a priority as a colored label.
func PriorityBadge(p wfdomain.Priority) string {
	color := PriorityMediumColor
	switch p.OrDefault() {
	case wfdomain.PriorityHigh:
		color = PriorityHighColor
	case wfdomain.PriorityLow:
		color = PriorityLowColor
	}
	return badgeStyle.Background(color).Render(p.Label())
}

// StatusBadge renders a workflow status as a colored label.
func StatusBadge(s wfdomain.Status) string {
	color := TextMutedColor
	switch s.Normalize() {
	case wfdomain.StatusCompleted:
		color = StatusSuccessColor
	case wfdomain.StatusRunning:
		color = StatusInfoColor
	case wfdomain.StatusPending:
		color = StatusWarningColor
	case wfdomain.StatusFailed:
		color = StatusErrorColor
	}
	return badgeStyle.Background(color).Render(s.Label())
}

// EnhancementBadge renders an integration flag label.
func EnhancementBadge(label string) string {
	return badgeStyle.Background(AccentColor).Render(label)
}

// RoleLabel renders the speaker of a transcript entry.
func RoleLabel(role agents.Role, personaName string) string {
	switch role {
	case agents.RoleUser:
		return UserLabelStyle.Render("You:")
	case agents.RoleError:
		return ErrorStyle.Bold(true).Render("Error:")
	}
	return AgentLabelStyle.Render(personaName + ":")
}
