package styles

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/zjrosen/skillforge/internal/config"
)

// ColorToken names a themable color slot.
type ColorToken string

const (
	TokenTextPrimary    ColorToken = "text.primary"
	TokenTextSecondary  ColorToken = "text.secondary"
	TokenTextMuted      ColorToken = "text.muted"
	TokenBorderDefault  ColorToken = "border.default"
	TokenBorderFocus    ColorToken = "border.focus"
	TokenAccent         ColorToken = "accent"
	TokenStatusSuccess  ColorToken = "status.success"
	TokenStatusWarning  ColorToken = "status.warning"
	TokenStatusError    ColorToken = "status.error"
	TokenStatusInfo     ColorToken = "status.info"
	TokenPriorityHigh   ColorToken = "priority.high"
	TokenPriorityMedium ColorToken = "priority.medium"
	TokenPriorityLow    ColorToken = "priority.low"
	TokenChatUser       ColorToken = "chat.user"
	TokenChatAssistant  ColorToken = "chat.assistant"
)

var allTokens = []ColorToken{
	TokenTextPrimary, TokenTextSecondary, TokenTextMuted,
	TokenBorderDefault, TokenBorderFocus, TokenAccent,
	TokenStatusSuccess, TokenStatusWarning, TokenStatusError, TokenStatusInfo,
	TokenPriorityHigh, TokenPriorityMedium, TokenPriorityLow,
	TokenChatUser, TokenChatAssistant,
}

// Preset is a named set of colors.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// DefaultPreset is used when no preset is configured.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Indigo accents on the terminal background",
	Colors: map[ColorToken]string{
		TokenTextPrimary:    "#E2E8F0",
		TokenTextSecondary:  "#A0AEC0",
		TokenTextMuted:      "#718096",
		TokenBorderDefault:  "#4A5568",
		TokenBorderFocus:    "#667EEA",
		TokenAccent:         "#764BA2",
		TokenStatusSuccess:  "#48BB78",
		TokenStatusWarning:  "#ED8936",
		TokenStatusError:    "#F56565",
		TokenStatusInfo:     "#4299E1",
		TokenPriorityHigh:   "#F56565",
		TokenPriorityMedium: "#ED8936",
		TokenPriorityLow:    "#48BB78",
		TokenChatUser:       "#4299E1",
		TokenChatAssistant:  "#9F7AEA",
	},
}

// Presets holds every built-in theme by name.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"dracula": {
		Name:        "dracula",
		Description: "Dracula palette",
		Colors: map[ColorToken]string{
			TokenTextPrimary:    "#F8F8F2",
			TokenTextSecondary:  "#BFBFBF",
			TokenTextMuted:      "#6272A4",
			TokenBorderDefault:  "#44475A",
			TokenBorderFocus:    "#BD93F9",
			TokenAccent:         "#FF79C6",
			TokenStatusSuccess:  "#50FA7B",
			TokenStatusWarning:  "#FFB86C",
			TokenStatusError:    "#FF5555",
			TokenStatusInfo:     "#8BE9FD",
			TokenPriorityHigh:   "#FF5555",
			TokenPriorityMedium: "#FFB86C",
			TokenPriorityLow:    "#50FA7B",
			TokenChatUser:       "#8BE9FD",
			TokenChatAssistant:  "#BD93F9",
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Nord palette",
		Colors: map[ColorToken]string{
			TokenTextPrimary:    "#ECEFF4",
			TokenTextSecondary:  "#D8DEE9",
			TokenTextMuted:      "#4C566A",
			TokenBorderDefault:  "#434C5E",
			TokenBorderFocus:    "#88C0D0",
			TokenAccent:         "#B48EAD",
			TokenStatusSuccess:  "#A3BE8C",
			TokenStatusWarning:  "#EBCB8B",
			TokenStatusError:    "#BF616A",
			TokenStatusInfo:     "#81A1C1",
			TokenPriorityHigh:   "#BF616A",
			TokenPriorityMedium: "#EBCB8B",
			TokenPriorityLow:    "#A3BE8C",
			TokenChatUser:       "#81A1C1",
			TokenChatAssistant:  "#B48EAD",
		},
	},
	"high-contrast": {
		Name:        "high-contrast",
		Description: "Maximum contrast for accessibility",
		Colors: map[ColorToken]string{
			TokenTextPrimary:    "#FFFFFF",
			TokenTextSecondary:  "#FFFFFF",
			TokenTextMuted:      "#C0C0C0",
			TokenBorderDefault:  "#FFFFFF",
			TokenBorderFocus:    "#FFFF00",
			TokenAccent:         "#00FFFF",
			TokenStatusSuccess:  "#00FF00",
			TokenStatusWarning:  "#FFFF00",
			TokenStatusError:    "#FF0000",
			TokenStatusInfo:     "#00FFFF",
			TokenPriorityHigh:   "#FF0000",
			TokenPriorityMedium: "#FFFF00",
			TokenPriorityLow:    "#00FF00",
			TokenChatUser:       "#00FFFF",
			TokenChatAssistant:  "#FF00FF",
		},
	},
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var hexColorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

func isValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

func isValidToken(t ColorToken) bool {
	for _, known := range allTokens {
		if t == known {
			return true
		}
	}
	return false
}

// ApplyTheme resolves cfg against the presets and installs the result as the
// package colors. On error the current colors are left untouched. It must run
// on the UI goroutine; live reloads arrive as a message for that reason.
func ApplyTheme(cfg config.ThemeConfig) error {
	preset := DefaultPreset
	if cfg.Preset != "" {
		p, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset %q (available: %v)", cfg.Preset, PresetNames())
		}
		preset = p
	}

	colors := make(map[ColorToken]string, len(allTokens))
	for _, token := range allTokens {
		colors[token] = DefaultPreset.Colors[token]
		if c, ok := preset.Colors[token]; ok {
			colors[token] = c
		}
	}
	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token %q", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color %q for %s", value, key)
		}
		colors[token] = value
	}

	setColors(colors)
	lipgloss.SetHasDarkBackground(IsDark(cfg.Mode))
	return nil
}

// IsDark reports whether the UI should use dark-background rendering for the
// configured mode. An empty mode asks the terminal.
func IsDark(mode string) bool {
	switch mode {
	case "dark":
		return true
	case "light":
		return false
	}
	return termenv.HasDarkBackground()
}
