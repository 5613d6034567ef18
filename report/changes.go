package report

import (
	"fmt"
	"strings"

	"github.com/St3r30X/any-bot/diff"
	"github.com/St3r30X/any-bot/grid"
)

// unknownDate labels the fallback bucket for changes whose column has no
// resolvable header date. Such changes are reported, not dropped.
const unknownDate = "unknown date"

// changesBanner opens every change notification.
const changesBanner = "Duty roster updated"

// Changes renders change notifications grouped by date.
type Changes struct {
	Dir Directory
}

// Compose renders the given changes against the grid they were detected
// in. Changes in the title and date-header rows are filtered out; only
// person-row edits are reportable. Returns "" when nothing reportable
// remains.
//
// Lines are grouped by the date resolved from the header row at each
// change's column, in first-seen date order. Within a date, lines keep the
// row-major order the diff engine produced.
func (c Changes) Compose(changes []diff.Change, g grid.Grid) string {
	var order []string
	blocks := make(map[string][]string)

	for _, ch := range changes {
		if ch.Row < grid.FirstPersonRow {
			continue
		}

		date := g.HeaderDate(ch.Col)
		if date == grid.NoDate {
			date = unknownDate
		}

		name := g.Name(ch.Row)
		if name == "" {
			name = fmt.Sprintf("row %d", ch.Row+1)
		}
		line := fmt.Sprintf("%s: %s → %s",
			withHandle(name, c.Dir.Handle(name)),
			displayValue(ch.Old), displayValue(ch.New))

		if _, seen := blocks[date]; !seen {
			order = append(order, date)
		}
		blocks[date] = append(blocks[date], line)
	}

	if len(order) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(changesBanner)
	for _, date := range order {
		b.WriteString("\n\n")
		b.WriteString(date)
		for _, line := range blocks[date] {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}
	return b.String()
}
