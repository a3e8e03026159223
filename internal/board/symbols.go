package board

import "unicode"

// Code is one flap position on the board: an integer in [0,71].
// 0 is the blank flap. Codes 1-26 are letters, 27-36 digits (1..9 then 0,
// matching the physical flap order), 37-60 a punctuation subset with a few
// unassigned positions, 62 the degree mark, 63-70 the eight color chips and
// 71 the filled cell. Anything outside [0,71] is never valid on the wire.
type Code int

const (
	// Blank is the empty flap, also the substitute for every character
	// the board cannot display.
	Blank Code = 0

	// Degree is the degree mark, used for temperatures.
	Degree Code = 62

	// Color chips occupy the top of the code space.
	Red    Code = 63
	Orange Code = 64
	Yellow Code = 65
	Green  Code = 66
	Blue   Code = 67
	Violet Code = 68
	White  Code = 69
	Black  Code = 70

	// Filled is the fully tiled cell.
	Filled Code = 71

	// MaxCode is the highest code the board accepts.
	MaxCode Code = 71
)

// symbols maps displayable runes to their flap codes. Lookup happens after
// upper-casing, so only upper-case letters appear here.
var symbols = map[rune]Code{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8,
	'I': 9, 'J': 10, 'K': 11, 'L': 12, 'M': 13, 'N': 14, 'O': 15, 'P': 16,
	'Q': 17, 'R': 18, 'S': 19, 'T': 20, 'U': 21, 'V': 22, 'W': 23, 'X': 24,
	'Y': 25, 'Z': 26,
	'1': 27, '2': 28, '3': 29, '4': 30, '5': 31, '6': 32, '7': 33, '8': 34,
	'9': 35, '0': 36,
	'!': 37, '@': 38, '#': 39, '$': 40, '(': 41, ')': 42,
	'-': 44, '+': 46, '&': 47, '=': 48, ';': 49, ':': 50,
	'\'': 52, '"': 53, '%': 54, ',': 55, '.': 56,
	'/': 59, '?': 60,
	'°': Degree,
}

// colorNames maps the accent color vocabulary used in config files and spool
// messages to chip codes.
var colorNames = map[string]Code{
	"red":    Red,
	"orange": Orange,
	"yellow": Yellow,
	"green":  Green,
	"blue":   Blue,
	"violet": Violet,
	"white":  White,
	"black":  Black,
}

// Encode converts text into flap codes. Each rune is upper-cased before
// lookup; runes without a mapping (including space) become Blank. Encode
// never fails.
func Encode(text string) []Code {
	codes := make([]Code, 0, len(text))
	for _, r := range text {
		codes = append(codes, symbols[unicode.ToUpper(r)])
	}
	return codes
}

// ParseColor resolves an accent color name to its chip code.
// Unknown names report false.
func ParseColor(name string) (Code, bool) {
	c, ok := colorNames[name]
	return c, ok
}

// glyphs is the reverse of symbols, built once at startup.
var glyphs [MaxCode + 1]rune

func init() {
	for i := range glyphs {
		glyphs[i] = ' '
	}
	for r, c := range symbols {
		glyphs[c] = r
	}
}

// Glyph returns the display rune for a code, for local previews only.
// Codes with no character mapping (blank, colors, unassigned positions)
// come back as a space; the preview layer draws those its own way.
func Glyph(c Code) rune {
	if c < 0 || c > MaxCode {
		return ' '
	}
	return glyphs[c]
}
