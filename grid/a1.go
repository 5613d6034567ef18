package grid

import "strconv"

// Addr converts zero-based row and column indices to an A1-style cell
// address, e.g. (2, 0) -> "A3".
func Addr(row, col int) string {
	return ColumnLabel(col) + strconv.Itoa(row+1)
}

// ColumnLabel converts a zero-based column index to its spreadsheet letter
// label: 0 -> "A", 25 -> "Z", 26 -> "AA". The encoding is base 26 with
// digits A-Z and no zero digit.
func ColumnLabel(col int) string {
	var buf []byte
	for col >= 0 {
		buf = append([]byte{byte('A' + col%26)}, buf...)
		col = col/26 - 1
	}
	return string(buf)
}

// ColumnIndex is the inverse of ColumnLabel. Input must be uppercase A-Z.
func ColumnIndex(label string) int {
	n := 0
	for i := 0; i < len(label); i++ {
		n = n*26 + int(label[i]-'A') + 1
	}
	return n - 1
}
