package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Config{Title: "Delete"})

	require.Equal(t, FieldConfirm, m.Focused())
	require.Equal(t, "Yes", m.cfg.ConfirmLabel)
	require.Equal(t, "No", m.cfg.CancelLabel)
	require.Nil(t, m.Init())
}

func TestUpdate_Answers(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		confirmed bool
	}{
		{name: "y confirms", keys: []string{"y"}, confirmed: true},
		{name: "enter on confirm", keys: []string{"enter"}, confirmed: true},
		{name: "n cancels", keys: []string{"n"}},
		{name: "esc cancels", keys: []string{"esc"}},
		{name: "enter on cancel", keys: []string{"right", "enter"}},
		{name: "y after moving to cancel still confirms", keys: []string{"tab", "y"}, confirmed: true},
		{name: "toggle twice then enter", keys: []string{"right", "left", "enter"}, confirmed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Config{Title: "Delete", Payload: "wf_1"})

			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = m.Update(key(k))
			}

			require.NotNil(t, cmd)
			msg := cmd()
			if tt.confirmed {
				confirmed, ok := msg.(ConfirmedMsg)
				require.True(t, ok, "expected ConfirmedMsg, got %T", msg)
				require.Equal(t, "wf_1", confirmed.Payload)
				return
			}
			_, ok := msg.(CancelMsg)
			require.True(t, ok, "expected CancelMsg, got %T", msg)
		})
	}
}

func TestUpdate_NavigationDoesNotAnswer(t *testing.T) {
	m := New(Config{Title: "Delete"})

	m, cmd := m.Update(key("right"))

	require.Nil(t, cmd)
	require.Equal(t, FieldCancel, m.Focused())
}

func TestUpdate_WindowSize(t *testing.T) {
	m := New(Config{Title: "Delete"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Equal(t, 100, m.width)
	require.Equal(t, 40, m.height)
}

func TestView_ContainsMessageAndButtons(t *testing.T) {
	m := New(Config{
		Title:        "Delete Workflow",
		Message:      "Are you sure you want to delete this workflow? This action cannot be undone.",
		ConfirmLabel: "Delete",
		CancelLabel:  "Keep",
		Destructive:  true,
	})

	view := ansi.Strip(m.View())

	require.Contains(t, view, "Delete Workflow")
	require.Contains(t, view, "cannot be undone")
	require.Contains(t, view, "Delete (y)")
	require.Contains(t, view, "Keep (n)")
}

func TestOverlay_KeepsBackground(t *testing.T) {
	m := New(Config{Title: "Test Modal"})
	m.SetSize(80, 24)

	rows := make([]string, 24)
	for i := range rows {
		rows[i] = strings.Repeat(".", 80)
	}

	out := ansi.Strip(m.Overlay(strings.Join(rows, "\n")))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 24)
	require.Contains(t, out, "Test Modal")
	require.Equal(t, strings.Repeat(".", 80), lines[0])
	for i, line := range lines {
		require.LessOrEqual(t, len([]rune(line)), 80, "line %d too wide", i)
	}
}
