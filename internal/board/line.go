package board

// Width is the number of flap columns per row.
const Width = 22

// Row is one display line, exactly Width codes left to right.
type Row [Width]Code

// Alignment controls how encoded text shorter than the row is padded.
// Overflow is always truncated at the tail regardless of alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ParseAlignment resolves the alignment vocabulary used in config files and
// spool messages. Unknown or empty values fall back to left.
func ParseAlignment(s string) Alignment {
	switch s {
	case "center", "centre":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// FormatLine encodes text and fits it into one full-width Row.
func FormatLine(text string, align Alignment) Row {
	var row Row
	fitWidth(row[:], Encode(text), align)
	return row
}

// fitWidth places codes into dst, truncating at the tail when codes is
// longer than dst and padding with blanks when shorter: left appends all
// padding, right prepends it, center splits floor/ceil so the extra blank
// of an odd pad lands on the right.
func fitWidth(dst []Code, codes []Code, align Alignment) {
	if len(codes) > len(dst) {
		codes = codes[:len(dst)]
	}

	pad := len(dst) - len(codes)
	lead := 0
	switch align {
	case AlignRight:
		lead = pad
	case AlignCenter:
		lead = pad / 2
	}

	for i := range dst {
		dst[i] = Blank
	}
	copy(dst[lead:], codes)
}
