package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	// 18-wide interior, text length 2, pad 16 split 8/8.
	got := Header("HI", Red)

	want := Row{Red, Red}
	copy(want[10:], Encode("HI"))
	want[20], want[21] = Red, Red

	assert.Equal(t, want, got)
}

func TestHeaderTruncatesLongTitle(t *testing.T) {
	got := Header("GENERAL CLASSIFICATION TOP TEN", Green)

	assert.Equal(t, [2]Code{Green, Green}, [2]Code{got[0], got[1]})
	assert.Equal(t, [2]Code{Green, Green}, [2]Code{got[20], got[21]})
	// Interior holds the first 18 encoded codes.
	assert.Equal(t, Encode("GENERAL CLASSIFICATION TOP TEN")[:18], got[2:20])
}

func TestHeaderEmptyTitle(t *testing.T) {
	got := Header("", Blue)
	for i := 2; i < Width-2; i++ {
		assert.Equal(t, Blank, got[i])
	}
}
