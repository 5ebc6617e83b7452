package table

// minColumnWidth leaves room for a two-cell emoji or "..".
const minColumnWidth = 2

// columnWidths sizes cols to fill totalWidth, one separator cell between
// columns. Fixed columns get their Width. The rest is split evenly between
// flexible columns, earlier columns taking the remainder, then clamped to
// MinWidth/MaxWidth. No column is narrower than minColumnWidth.
func columnWidths(cols []Column, totalWidth int) []int {
	widths := make([]int, len(cols))
	if len(cols) == 0 {
		return widths
	}

	remaining := totalWidth - (len(cols) - 1)
	var flex []int
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			remaining -= col.Width
			continue
		}
		flex = append(flex, i)
	}

	if len(flex) > 0 {
		share, extra := 0, 0
		if remaining > 0 {
			share, extra = remaining/len(flex), remaining%len(flex)
		}
		for n, i := range flex {
			w := share
			if n < extra {
				w++
			}
			w = max(w, cols[i].MinWidth)
			if cols[i].MaxWidth > 0 {
				w = min(w, cols[i].MaxWidth)
			}
			widths[i] = w
		}
	}

	for i := range widths {
		widths[i] = max(widths[i], minColumnWidth)
	}
	return widths
}

// visibleColumns drops columns whose HideBelow exceeds totalWidth.
func visibleColumns(cols []Column, totalWidth int) []Column {
	out := make([]Column, 0, len(cols))
	for _, col := range cols {
		if col.HideBelow > 0 && totalWidth < col.HideBelow {
			continue
		}
		out = append(out, col)
	}
	return out
}
