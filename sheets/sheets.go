// Package sheets provides access to the roster spreadsheet. The rest of
// the system sees only the Service interface: read the full range, write
// one cell. Implementations never retry; callers bound every call with a
// context and a transport timeout, and retry policy stays with them.
package sheets

import (
	"context"

	"github.com/St3r30X/any-bot/grid"
)

// Service reads the full roster range and writes single cells.
type Service interface {
	// Read fetches the entire roster range. A transport failure surfaces
	// as an error with no partial data.
	Read(ctx context.Context) (grid.Grid, error)

	// WriteCell stores value at the A1-style address as if the user typed
	// it into the sheet, so sheet-side formatting and locale rules still
	// apply.
	WriteCell(ctx context.Context, addr, value string) error
}
