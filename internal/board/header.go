package board

// accentMargin is the number of color flaps at each end of a header row.
const accentMargin = 2

// Header builds a title row flanked by accent color chips: two chips at each
// end, with the title centered in the remaining interior using the same
// truncate/pad rule as FormatLine.
func Header(text string, accent Code) Row {
	var row Row
	fitWidth(row[accentMargin:Width-accentMargin], Encode(text), AlignCenter)
	for i := 0; i < accentMargin; i++ {
		row[i] = accent
		row[Width-1-i] = accent
	}
	return row
}
