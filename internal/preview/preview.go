// Package preview renders a grid as colored terminal cells so an operator
// can see what the flaps will show without burning a rate-limit slot.
package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/veloboard/flapship/internal/board"
)

var (
	cellStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("252"))

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	// chipColors approximates the eight color chips in the terminal's
	// 256-color palette.
	chipColors = map[board.Code]lipgloss.Color{
		board.Red:    lipgloss.Color("196"),
		board.Orange: lipgloss.Color("208"),
		board.Yellow: lipgloss.Color("226"),
		board.Green:  lipgloss.Color("40"),
		board.Blue:   lipgloss.Color("33"),
		board.Violet: lipgloss.Color("129"),
		board.White:  lipgloss.Color("255"),
		board.Black:  lipgloss.Color("232"),
	}
)

// Render draws the grid inside a rounded frame, one terminal cell per flap.
// Color chips and the filled cell become colored blocks; everything else is
// drawn with its glyph on the board-dark background.
func Render(g board.Grid) string {
	var rows []string
	for _, row := range g {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(renderCell(c))
		}
		rows = append(rows, b.String())
	}
	return frameStyle.Render(strings.Join(rows, "\n"))
}

// Plain draws the grid as bare text, one line per row, with color chips and
// the filled cell shown as '#'. Used where ANSI styling is unwanted.
func Plain(g board.Grid) string {
	var rows []string
	for _, row := range g {
		var b strings.Builder
		for _, c := range row {
			if c >= board.Red && c <= board.Filled {
				b.WriteRune('#')
				continue
			}
			b.WriteRune(board.Glyph(c))
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

func renderCell(c board.Code) string {
	if color, ok := chipColors[c]; ok {
		return lipgloss.NewStyle().Background(color).Render(" ")
	}
	if c == board.Filled {
		return lipgloss.NewStyle().Background(chipColors[board.White]).Render(" ")
	}
	return cellStyle.Render(string(board.Glyph(c)))
}
