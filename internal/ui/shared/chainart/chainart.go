// Package chainart draws the broken chain shown when the API cannot be reached.
package chainart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/skillforge/internal/ui/styles"
)

var (
	linkLines = []string{
		"╔═══════╗",
		"╣       ╠",
		"╣       ╠",
		"╚═══════╝",
	}

	brokenLines = []string{
		"    \\│/    ",
		"╔════╲   │   ╱════╗",
		"╣     ╲  │  ╱     ╠",
		"╣     ╱  │  ╲     ╠",
		"╚════╱   │   ╲════╝",
		"    /│\\    ",
	}

	connectorLines = []string{"", "═══", "═══", ""}
)

// artHeight is the height of the broken link; shorter pieces are centered on it.
const artHeight = 6

// Broken renders client link, broken link, server link. The end links use
// the theme's accent and success colors so the art follows the active preset.
func Broken() string {
	client := lipgloss.NewStyle().Foreground(styles.AccentColor)
	server := lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	broken := lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	connector := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)

	link := padLines(linkLines)
	conn := padLines(connectorLines)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		render(link, client),
		render(conn, connector),
		render(brokenLines, broken),
		render(conn, connector),
		render(link, server),
	)
}

// padLines centers lines vertically within artHeight rows.
func padLines(lines []string) []string {
	if len(lines) >= artHeight {
		return lines
	}

	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}

	top := (artHeight - len(lines)) / 2
	bottom := artHeight - len(lines) - top
	blank := strings.Repeat(" ", width)

	out := make([]string, 0, artHeight)
	for range top {
		out = append(out, blank)
	}
	out = append(out, lines...)
	for range bottom {
		out = append(out, blank)
	}
	return out
}

func render(lines []string, style lipgloss.Style) string {
	return style.Render(strings.Join(lines, "\n"))
}
