// Package table lays out and renders fixed-header text tables.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/skillforge/internal/ui/styles"
)

// Column describes one table column.
type Column struct {
	Key   string
	Title string
	// Width fixes the column width. Zero makes the column flexible.
	Width    int
	MinWidth int
	MaxWidth int
	// HideBelow hides the column when the table is narrower than this.
	HideBelow int
}

// Row is one line of cells, keyed by column key.
type Row map[string]string

const separator = " "

// Layout is the result of fitting columns into a width.
type Layout struct {
	Columns []Column
	Widths  []int
}

// Fit picks the columns visible at totalWidth and sizes them.
func Fit(cols []Column, totalWidth int) Layout {
	visible := visibleColumns(cols, totalWidth)
	return Layout{Columns: visible, Widths: columnWidths(visible, totalWidth)}
}

// Header renders the column titles.
func (l Layout) Header() string {
	cells := make([]string, len(l.Columns))
	for i, col := range l.Columns {
		cells[i] = col.Title
	}
	return styles.TitleStyle.Render(l.join(cells))
}

// Render renders one row. Cells wider than their column are truncated.
func (l Layout) Render(row Row) string {
	cells := make([]string, len(l.Columns))
	for i, col := range l.Columns {
		cells[i] = row[col.Key]
	}
	return l.join(cells)
}

func (l Layout) join(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		w := l.Widths[i]
		cell = styles.TruncateString(cell, w)
		if pad := w - lipgloss.Width(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		parts[i] = cell
	}
	return strings.Join(parts, separator)
}
