package ui

import (
	"strings"
	"unicode/utf8"
)

// Column describes one column of a Columns layout.
type Column struct {
	Format    Formatter
	AlignLeft bool
}

// Columns renders rows with each column padded to its widest cell. Widths are
// measured on the plain text so colored output stays aligned. Each row ends
// with a newline and is indented by indent.
func Columns(indent string, cols []Column, rows [][]string) string {
	widths := make([]int, len(cols))
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(indent)
		for i, col := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			if i > 0 {
				b.WriteString("  ")
			}
			last := i == len(cols)-1
			switch {
			case col.AlignLeft && last:
				b.WriteString(col.Format.Sprint(cell))
			case col.AlignLeft:
				b.WriteString(col.Format.Sprint(cell))
				b.WriteString(pad)
			default:
				b.WriteString(pad)
				b.WriteString(col.Format.Sprint(cell))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
