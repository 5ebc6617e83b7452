package table

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		name  string
		cols  []Column
		total int
		want  []int
	}{
		{
			name:  "all fixed",
			cols:  []Column{{Width: 5}, {Width: 20}, {Width: 10}},
			total: 100,
			want:  []int{5, 20, 10},
		},
		{
			name:  "all flex with remainder",
			cols:  []Column{{}, {}, {}},
			total: 100,
			want:  []int{33, 33, 32},
		},
		{
			name:  "mixed",
			cols:  []Column{{Width: 5}, {}, {Width: 8}, {}},
			total: 100,
			want:  []int{5, 42, 8, 42},
		},
		{
			name:  "min width",
			cols:  []Column{{MinWidth: 20}, {MinWidth: 20}},
			total: 30,
			want:  []int{20, 20},
		},
		{
			name:  "max width",
			cols:  []Column{{MaxWidth: 10}, {}},
			total: 51,
			want:  []int{10, 25},
		},
		{
			name:  "no room for flex",
			cols:  []Column{{Width: 40}, {}},
			total: 20,
			want:  []int{40, 2},
		},
		{
			name:  "empty",
			cols:  nil,
			total: 80,
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, columnWidths(tt.cols, tt.total))
		})
	}
}

func TestVisibleColumns(t *testing.T) {
	cols := []Column{
		{Key: "id"},
		{Key: "created", HideBelow: 100},
		{Key: "name"},
	}

	require.Len(t, visibleColumns(cols, 120), 3)

	narrow := visibleColumns(cols, 80)
	require.Len(t, narrow, 2)
	require.Equal(t, "id", narrow[0].Key)
	require.Equal(t, "name", narrow[1].Key)
}

func TestLayout_RenderPadsAndTruncates(t *testing.T) {
	layout := Fit([]Column{
		{Key: "id", Title: "ID", Width: 6},
		{Key: "name", Title: "Name"},
	}, 20)

	require.Equal(t, []int{6, 13}, layout.Widths)

	row := layout.Render(Row{"id": "wf_123456789", "name": "Quarterly"})
	require.Equal(t, 20, lipgloss.Width(row))
	require.Equal(t, "wf_... Quarterly    ", row)

	header := ansi.Strip(layout.Header())
	require.Equal(t, "ID     Name         ", header)
}
