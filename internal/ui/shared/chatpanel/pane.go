package chatpanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/zjrosen/skillforge/internal/ui/styles"
)

// paneConfig holds the inputs for renderScrollablePane.
type paneConfig struct {
	// Viewport must be a pointer so scroll position survives between renders.
	Viewport *viewport.Model

	// ContentDirty is set when the transcript changed since the last render.
	ContentDirty bool

	// HasNewContent shows "↓New" when content arrived while scrolled up.
	HasNewContent bool

	Title   string
	Focused bool
}

// renderScrollablePane renders transcript content into a bordered viewport.
//
// Order matters:
//  1. wasAtBottom is read before SetContent, otherwise every render would
//     look like the user is at the bottom and yank them down.
//  2. Short content is padded at the top so the latest entry sits on the
//     bottom edge.
func renderScrollablePane(width, height int, cfg paneConfig, contentFn func(wrapWidth int) string) string {
	vpWidth := max(width-2, 1)
	vpHeight := max(height-2, 1)

	content := contentFn(vpWidth)
	lines := strings.Split(content, "\n")
	if len(lines) < vpHeight {
		padding := make([]string, vpHeight-len(lines))
		content = strings.Join(append(padding, lines...), "\n")
	}

	cfg.Viewport.Width = vpWidth
	cfg.Viewport.Height = vpHeight

	wasAtBottom := cfg.Viewport.AtBottom()
	cfg.Viewport.SetContent(content)
	if cfg.ContentDirty && wasAtBottom {
		cfg.Viewport.GotoBottom()
	}

	return styles.Panel{
		Title:   cfg.Title,
		Info:    buildRightTitle(*cfg.Viewport, cfg.HasNewContent),
		Width:   width,
		Height:  height,
		Focused: cfg.Focused,
	}.Render(cfg.Viewport.View())
}

// buildRightTitle combines the new-content marker and the scroll position.
func buildRightTitle(vp viewport.Model, hasNewContent bool) string {
	var parts []string
	if hasNewContent {
		parts = append(parts, "↓New")
	}
	if indicator := buildScrollIndicator(vp); indicator != "" {
		parts = append(parts, indicator)
	}
	return strings.Join(parts, " ")
}

// buildScrollIndicator shows how far up the user has scrolled, or nothing at
// the bottom.
func buildScrollIndicator(vp viewport.Model) string {
	if vp.AtBottom() {
		return ""
	}
	return fmt.Sprintf("↑%d%%", int(vp.ScrollPercent()*100))
}
