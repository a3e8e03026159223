package app

import (
	"time"

	"github.com/veloboard/flapship/internal/board"
	"github.com/veloboard/flapship/internal/domain"
)

// stampLayout is the timestamp row format, e.g. "30 AUG 14:05".
const stampLayout = "2 Jan 15:04"

// Compose turns resolved content into a candidate grid: an accent-flanked
// header when the content has a title, the body lines in order, and a
// right-aligned timestamp on the last row. Body lines that do not fit the
// remaining rows are dropped from the tail by Assemble.
func Compose(content domain.Content, now time.Time) board.Grid {
	rows := make([]board.Row, 0, board.Height)

	if content.Title != "" {
		accent, ok := board.ParseColor(content.Accent)
		if !ok {
			accent = board.White
		}
		rows = append(rows, board.Header(content.Title, accent))
	}

	for _, line := range content.Lines {
		if len(rows) >= board.Height-1 {
			break
		}
		rows = append(rows, board.FormatLine(line.Text, board.ParseAlignment(line.Align)))
	}

	for len(rows) < board.Height-1 {
		rows = append(rows, board.Row{})
	}
	rows = append(rows, board.FormatLine(now.Format(stampLayout), board.AlignRight))

	return board.Assemble(rows)
}
