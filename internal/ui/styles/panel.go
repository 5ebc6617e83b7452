package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// Rounded border pieces.
const (
	cornerTopLeft     = "╭"
	cornerTopRight    = "╮"
	cornerBottomLeft  = "╰"
	cornerBottomRight = "╯"
	edgeHorizontal    = "─"
	edgeVertical      = "│"
)

// Panel is a bordered box with a title on the left of the top edge and an
// optional info label on the right:
//
//	╭─ Workflows ──────────── 3 items ─╮
//	│ ...                              │
//	╰──────────────────────────────────╯
type Panel struct {
	Title   string
	Info    string
	Width   int
	Height  int
	Focused bool
}

// Render draws content inside the panel. Content is clipped to the inner
// area; short content is padded so the right edge lines up.
func (p Panel) Render(content string) string {
	edgeColor := BorderDefaultColor
	if p.Focused {
		edgeColor = BorderFocusColor
	}
	edge := lipgloss.NewStyle().Foreground(edgeColor)
	title := lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(p.Focused)

	inner := max(p.Width-2, 1)
	rows := max(p.Height-2, 1)

	lines := strings.Split(lipgloss.NewStyle().Width(inner).Render(content), "\n")

	var b strings.Builder
	b.WriteString(p.topEdge(inner, edge, title))
	for i := range rows {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], inner, "")
		}
		if pad := inner - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString("\n")
		b.WriteString(edge.Render(edgeVertical) + line + edge.Render(edgeVertical))
	}
	b.WriteString("\n")
	b.WriteString(edge.Render(cornerBottomLeft + strings.Repeat(edgeHorizontal, inner) + cornerBottomRight))
	return b.String()
}

// topEdge builds the top border with the labels embedded. The info label is
// dropped first when space runs out, then the title is truncated.
func (p Panel) topEdge(inner int, edge, title lipgloss.Style) string {
	plain := edge.Render(cornerTopLeft + strings.Repeat(edgeHorizontal, inner) + cornerTopRight)
	if p.Title == "" && p.Info == "" {
		return plain
	}

	// "─ " + title + " " ... " " + info + " ─"
	left, right := p.Title, p.Info
	need := func() int {
		n := 0
		if left != "" {
			n += 3 + lipgloss.Width(left)
		}
		if right != "" {
			n += 3 + lipgloss.Width(right)
		}
		return n + 1
	}
	if right != "" && need() > inner {
		right = ""
	}
	if left != "" && need() > inner {
		avail := inner - 4
		if avail < 1 {
			return plain
		}
		left = TruncateString(left, avail)
	}

	fill := inner - need() + 1

	var b strings.Builder
	b.WriteString(edge.Render(cornerTopLeft))
	if left != "" {
		b.WriteString(edge.Render(edgeHorizontal+" ") + title.Render(left) + edge.Render(" "))
	}
	b.WriteString(edge.Render(strings.Repeat(edgeHorizontal, max(fill, 1))))
	if right != "" {
		b.WriteString(edge.Render(" ") + MutedStyle.Render(right) + edge.Render(" "+edgeHorizontal))
	}
	b.WriteString(edge.Render(cornerTopRight))
	return b.String()
}

// TruncateString shortens s to maxWidth cells, marking the cut with "...".
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// Wrap word-wraps s to width cells.
func Wrap(s string, width int) string {
	if width < 1 {
		return s
	}
	return wordwrap.String(s, width)
}
