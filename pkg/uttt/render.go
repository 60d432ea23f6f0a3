package uttt

import (
	"strings"

	"github.com/muesli/termenv"
)

const _rowSeparator = "------+-------+------"

// Plain text board, rows top to bottom, local boards separated by lines
func (b *Board) String() string {
	return b.render(func(mark Mark, _ bool) string {
		return mark.String()
	})
}

// Colored board for terminals, crosses are red, circles are blue,
// cells of closed local boards are faint
func (b *Board) Render(out *termenv.Output) string {
	cross, circle := out.Color("1"), out.Color("4")

	return b.render(func(mark Mark, closed bool) string {
		style := out.String(mark.String())
		switch mark {
		case MarkX:
			style = style.Foreground(cross).Bold()
		case MarkO:
			style = style.Foreground(circle).Bold()
		}
		if closed {
			style = style.Faint()
		}
		return style.String()
	})
}

func (b *Board) render(cell func(mark Mark, closed bool) string) string {
	builder := strings.Builder{}

	for row := range 9 {
		if row > 0 && row%3 == 0 {
			builder.WriteString(_rowSeparator)
			builder.WriteByte('\n')
		}
		for col := range 9 {
			if col > 0 {
				if col%3 == 0 {
					builder.WriteString(" | ")
				} else {
					builder.WriteByte(' ')
				}
			}
			builder.WriteString(cell(b.Cell(row, col), b.boards[row/3][col/3].closed))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
