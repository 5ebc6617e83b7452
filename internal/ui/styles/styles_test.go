package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/skillforge/internal/config"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

func resetTheme(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(config.ThemeConfig{Mode: "dark"}) })
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(config.ThemeConfig{Mode: "dark"}))
	assert.Equal(t, lipgloss.Color(DefaultPreset.Colors[TokenTextPrimary]), TextPrimaryColor)
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(config.ThemeConfig{Preset: "dracula", Mode: "dark"}))
	assert.Equal(t, lipgloss.Color("#FF5555"), StatusErrorColor)
}

func TestApplyTheme_PresetWithOverride(t *testing.T) {
	resetTheme(t)
	Presets["partial"] = Preset{
		Name:   "partial",
		Colors: map[ColorToken]string{TokenTextPrimary: "#FF0000", TokenTextSecondary: "#0000FF"},
	}
	defer delete(Presets, "partial")

	err := ApplyTheme(config.ThemeConfig{
		Preset: "partial",
		Mode:   "light",
		Colors: map[string]string{"text.primary": "#00FF00"},
	})

	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("#00FF00"), TextPrimaryColor)
	assert.Equal(t, lipgloss.Color("#0000FF"), TextSecondaryColor)
	// Tokens the preset leaves out fall back to the default preset.
	assert.Equal(t, lipgloss.Color(DefaultPreset.Colors[TokenAccent]), AccentColor)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	tests := []struct {
		name string
		cfg  config.ThemeConfig
		want string
	}{
		{name: "unknown preset", cfg: config.ThemeConfig{Preset: "solarized"}, want: "unknown theme preset"},
		{name: "unknown token", cfg: config.ThemeConfig{Colors: map[string]string{"invalid.token": "#FFF"}}, want: "unknown color token"},
		{name: "bad hex", cfg: config.ThemeConfig{Colors: map[string]string{"text.primary": "red"}}, want: "invalid hex color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := TextPrimaryColor
			err := ApplyTheme(tt.cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
			require.Equal(t, before, TextPrimaryColor)
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#abcdef", true},
		{"FFFFFF", false},
		{"#FF", false},
		{"#GGGGGG", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidHexColor(tt.color))
		})
	}
}

func TestIsDark_ExplicitModes(t *testing.T) {
	require.True(t, IsDark("dark"))
	require.False(t, IsDark("light"))
}

func TestPresetNames_IncludesDefault(t *testing.T) {
	require.Contains(t, PresetNames(), "default")
	require.Contains(t, PresetNames(), "high-contrast")
}

func TestBadges(t *testing.T) {
	require.Contains(t, ansi.Strip(PriorityBadge(wfdomain.PriorityHigh)), "HIGH")
	require.Contains(t, ansi.Strip(PriorityBadge("")), "MEDIUM")
	require.Contains(t, ansi.Strip(StatusBadge("archived")), "UNKNOWN")
	require.Contains(t, ansi.Strip(StatusBadge(wfdomain.StatusCompleted)), "COMPLETED")
	require.Contains(t, ansi.Strip(EnhancementBadge("AI Agents")), "AI Agents")
}

func TestPanel_Structure(t *testing.T) {
	out := Panel{Title: "Workflows", Info: "3 items", Width: 40, Height: 5}.Render("row one\nrow two")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	for i, line := range lines {
		require.Equal(t, 40, lipgloss.Width(line), "line %d has wrong width", i)
	}
	top := ansi.Strip(lines[0])
	require.True(t, strings.HasPrefix(top, "╭─ Workflows "))
	require.True(t, strings.HasSuffix(top, " 3 items ─╮"))
	require.Contains(t, ansi.Strip(lines[1]), "row one")
	require.True(t, strings.HasPrefix(ansi.Strip(lines[4]), "╰"))
}

func TestPanel_NarrowDropsInfoThenTruncatesTitle(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		wantTitle string
		wantInfo  bool
	}{
		{name: "fits both", width: 30, wantTitle: "Workflows", wantInfo: true},
		{name: "drops info", width: 18, wantTitle: "Workflows", wantInfo: false},
		{name: "truncates title", width: 10, wantTitle: "W...", wantInfo: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Panel{Title: "Workflows", Info: "12 items", Width: tt.width, Height: 3}.Render("")
			top := ansi.Strip(strings.Split(out, "\n")[0])

			require.Equal(t, tt.width, lipgloss.Width(top))
			require.Contains(t, top, tt.wantTitle)
			if tt.wantInfo {
				require.Contains(t, top, "12 items")
			} else {
				require.NotContains(t, top, "items")
			}
		})
	}
}

func TestPanel_ClipsLongLines(t *testing.T) {
	out := Panel{Width: 12, Height: 3}.Render(strings.Repeat("x", 50))
	for _, line := range strings.Split(out, "\n") {
		require.Equal(t, 12, lipgloss.Width(line))
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "..."},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, TruncateString(tt.in, tt.width))
		})
	}
}

func TestWrap(t *testing.T) {
	require.Equal(t, "one two\nthree", Wrap("one two three", 8))
	require.Equal(t, "unchanged", Wrap("unchanged", 0))
}

func TestMarkdown(t *testing.T) {
	out := ansi.Strip(Markdown("# Heading\n\nSome **bold** text and a list:\n\n- one\n- two", 40))

	require.Contains(t, out, "Heading")
	require.Contains(t, out, "bold")
	require.NotContains(t, out, "**")
	require.Contains(t, out, "one")
	require.False(t, strings.HasPrefix(out, "\n"))
}

func TestMarkdown_Wraps(t *testing.T) {
	out := ansi.Strip(Markdown(strings.Repeat("word ", 40), 30))

	require.Greater(t, len(strings.Split(out, "\n")), 3)
}
