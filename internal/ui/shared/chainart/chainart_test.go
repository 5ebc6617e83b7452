package chainart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestBroken_Shape(t *testing.T) {
	art := ansi.Strip(Broken())
	lines := strings.Split(art, "\n")

	require.Len(t, lines, artHeight)
	require.Contains(t, art, "╔═══════╗")
	require.Contains(t, art, "╲   │   ╱")
	require.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[artHeight-1]))
}

func TestPadLines(t *testing.T) {
	padded := padLines([]string{"ab", "c"})

	require.Len(t, padded, artHeight)
	require.Equal(t, "  ", padded[0])
	require.Equal(t, "ab", padded[2])
	require.Equal(t, "c", padded[3])

	full := []string{"1", "2", "3", "4", "5", "6"}
	require.Equal(t, full, padLines(full))
}
