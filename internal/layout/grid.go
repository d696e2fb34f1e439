package layout

import "strings"

// Grid is a row/column matrix of cell text. Rows may be ragged; rendering
// pads every row to the widest row seen.
type Grid [][]string

// Markdown renders the grid as a markdown-style table: one line per row,
// cells separated by " | ", and a separator line of dashes after the first
// (header) row. Rows and columns come out in index order, untouched.
func (g Grid) Markdown() string {
	if len(g) == 0 {
		return ""
	}

	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(" |")
		}
	}

	separator := make([]string, width)
	for i := range separator {
		separator[i] = "---"
	}

	for i, row := range g {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeRow(row)
		if i == 0 {
			sb.WriteString("\n")
			writeRow(separator)
		}
	}
	return sb.String()
}
