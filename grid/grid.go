// Package grid models the duty roster as it comes back from the spreadsheet
// service: ordered rows of loosely typed cell values. By convention row 0 is
// reserved, row 1 carries one date token per column, and every row from 2 on
// describes a person, with the full name in column 1 and one duty value per
// date column from 2 on. Column alignment is positional: column i means the
// same date in every row of one snapshot.
//
// grid holds the conversion rules shared by every consumer: cell
// stringification, header-date normalization, and A1 addressing. Indices are
// zero-based everywhere in code; only rendered text is one-based.
package grid

import (
	"strconv"
	"time"
)

const (
	// HeaderRow is the index of the date-header row.
	HeaderRow = 1
	// NameCol is the column holding a person's full name.
	NameCol = 1
	// FirstPersonRow is the first row describing a person.
	FirstPersonRow = 2
	// FirstDutyCol is the first column holding duty values.
	FirstDutyCol = 2
)

// Grid is one roster snapshot. Rows may be ragged; positions outside the
// grid compare equal to the empty string.
type Grid [][]any

// Value returns the raw cell value at (row, col), or nil when the position
// is outside the grid.
func (g Grid) Value(row, col int) any {
	if row < 0 || row >= len(g) {
		return nil
	}
	if col < 0 || col >= len(g[row]) {
		return nil
	}
	return g[row][col]
}

// Row returns the raw row at the given index, or nil when the grid is
// shorter than that.
func (g Grid) Row(row int) []any {
	if row < 0 || row >= len(g) {
		return nil
	}
	return g[row]
}

// Cell returns the stringified value at (row, col). Missing cells and nil
// values come back as "".
func (g Grid) Cell(row, col int) string {
	return CellString(g.Value(row, col))
}

// Name returns the full name recorded in the given person row.
func (g Grid) Name(row int) string {
	return g.Cell(row, NameCol)
}

// HeaderDate returns the normalized date of the given column, or NoDate.
func (g Grid) HeaderDate(col int) string {
	return NormalizeDate(g.Value(HeaderRow, col))
}

// CellString converts a raw cell value to its canonical string form. JSON
// decoding yields float64 for every number, so integers must not pick up a
// fractional tail here.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return ""
	}
}
