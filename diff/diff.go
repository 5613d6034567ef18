// Package diff compares two roster snapshots cell by cell and reports every
// position whose stringified value changed. It is the detection half of the
// watch loop; rendering and delivery live elsewhere.
package diff

import "github.com/St3r30X/any-bot/grid"

// Change records one cell whose value differs between two snapshots.
// Indices are zero-based.
type Change struct {
	Row int    `json:"row"`
	Col int    `json:"col"`
	Old string `json:"old"`
	New string `json:"new"`
}

// Diff returns the changes between prev and curr in ascending row-major
// order. The ordering is part of the contract: the composer groups changes
// by date in first-seen order, so callers rely on it being stable.
//
// Ragged and differently shaped grids are padded with empty strings up to
// the larger dimension, which makes an absent cell equivalent to an empty
// one. Pure function: no I/O, no retained state.
func Diff(prev, curr grid.Grid) []Change {
	var changes []Change
	rows := max(len(prev), len(curr))
	for r := 0; r < rows; r++ {
		cols := 0
		if r < len(prev) {
			cols = len(prev[r])
		}
		if r < len(curr) && len(curr[r]) > cols {
			cols = len(curr[r])
		}
		for c := 0; c < cols; c++ {
			before := prev.Cell(r, c)
			after := curr.Cell(r, c)
			if before != after {
				changes = append(changes, Change{Row: r, Col: c, Old: before, New: after})
			}
		}
	}
	return changes
}
