package parser

import "strings"

// LineColumn converts a byte offset into zero-based line and column numbers,
// as diagnostics consumers such as editors expect. Offsets past the end of
// the input map to the last position.
func LineColumn(input string, offset int) (line, column int) {
	if offset > len(input) {
		offset = len(input)
	}
	if offset < 0 {
		offset = 0
	}
	before := input[:offset]
	line = strings.Count(before, "\n")
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		column = offset - i - 1
	} else {
		column = offset
	}
	return line, column
}
