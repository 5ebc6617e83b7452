package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type rendererKey struct {
	width int
	dark  bool
}

var (
	renderersMu sync.Mutex
	renderers   = map[rendererKey]*glamour.TermRenderer{}
)

// Markdown renders md for the terminal, word-wrapped at width. If glamour
// cannot render the text it is returned plain-wrapped instead.
func Markdown(md string, width int) string {
	width = max(width, 10)
	r, err := renderer(width)
	if err != nil {
		return Wrap(md, width)
	}

	renderersMu.Lock()
	out, err := r.Render(md)
	renderersMu.Unlock()
	if err != nil {
		return Wrap(md, width)
	}
	return strings.Trim(out, "\n")
}

func renderer(width int) (*glamour.TermRenderer, error) {
	key := rendererKey{width: width, dark: lipgloss.HasDarkBackground()}

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r, ok := renderers[key]; ok {
		return r, nil
	}

	style := "light"
	if key.dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}
