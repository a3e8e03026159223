package board

// Height is the number of flap rows on the board.
const Height = 6

// Grid is one complete display update, exactly Height rows top to bottom.
// A Grid is the only unit ever sent to the board.
type Grid [Height]Row

// Assemble composes up to Height pre-formatted rows into a Grid. Missing
// rows become all-blank; extra rows are dropped from the tail. Row width is
// not re-checked here; Sanitize covers that downstream.
func Assemble(rows []Row) Grid {
	var g Grid
	copy(g[:], rows)
	return g
}

// Sanitize coerces arbitrary numeric input into a conformant Grid. It is
// total and idempotent: the first Height rows are considered (missing rows
// are all-blank), each row is truncated or right-padded to Width, and every
// entry outside [0,MaxCode] becomes Blank.
//
// This runs as the last gate before every dispatch, including on grids the
// caller already built through Assemble, so an upstream formatting bug can
// never put a malformed payload on the wire.
func Sanitize(candidate [][]int) Grid {
	var g Grid
	for i := 0; i < Height && i < len(candidate); i++ {
		for j := 0; j < Width && j < len(candidate[i]); j++ {
			if c := candidate[i][j]; c >= 0 && c <= int(MaxCode) {
				g[i][j] = Code(c)
			}
		}
	}
	return g
}

// Ints flattens the grid into the nested numeric shape used on the wire and
// by Sanitize.
func (g Grid) Ints() [][]int {
	out := make([][]int, Height)
	for i, row := range g {
		out[i] = make([]int, Width)
		for j, c := range row {
			out[i][j] = int(c)
		}
	}
	return out
}
