package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloboard/flapship/internal/board"
)

func TestPlain(t *testing.T) {
	g := board.Assemble([]board.Row{
		board.Header("HI", board.Red),
		board.FormatLine("POGACAR", board.AlignLeft),
	})

	out := Plain(g)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, board.Height)
	for i, line := range lines {
		assert.Len(t, []rune(line), board.Width, "row %d", i)
	}

	assert.True(t, strings.HasPrefix(lines[0], "##"), "color chips render as #")
	assert.Contains(t, lines[0], "HI")
	assert.True(t, strings.HasPrefix(lines[1], "POGACAR"))
	assert.Equal(t, strings.Repeat(" ", board.Width), lines[5][:board.Width])
}

func TestRenderContainsGlyphs(t *testing.T) {
	g := board.Assemble([]board.Row{board.FormatLine("HELLO", board.AlignLeft)})

	out := Render(g)
	assert.Contains(t, out, "H")
	assert.Contains(t, out, "E")
	// One line per row plus the frame.
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), board.Height)
}
