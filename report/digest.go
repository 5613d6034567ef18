package report

import (
	"strings"

	"github.com/St3r30X/any-bot/grid"
)

// DutyTokens is the classification vocabulary for duty cells. Matching is
// case-insensitive substring matching.
type DutyTokens struct {
	Day   []string
	Night []string
	Off   []string
}

// DefaultTokens covers the common roster vocabulary.
func DefaultTokens() DutyTokens {
	return DutyTokens{
		Day:   []string{"day"},
		Night: []string{"night"},
		Off:   []string{"off"},
	}
}

// Digest renders the day/night duty report for one date column.
type Digest struct {
	Dir    Directory
	Tokens DutyTokens
}

// Compose renders the duty report for date (canonical YYYY-MM-DD form).
// It returns "" when no header column normalizes to that date, and also
// when every entry in the column is empty, off, or a dash: an empty digest
// is a no-op, not an error.
//
// Duty text that matches neither vocabulary is kept in the day list with
// the raw value appended, so no entry is silently lost.
func (d Digest) Compose(g grid.Grid, date string) string {
	col := -1
	for c := grid.FirstDutyCol; c < len(g.Row(grid.HeaderRow)); c++ {
		if nd := g.HeaderDate(c); nd != grid.NoDate && nd == date {
			col = c
			break
		}
	}
	if col < 0 {
		return ""
	}

	var day, night []string
	for r := grid.FirstPersonRow; r < len(g); r++ {
		name := g.Name(r)
		if name == "" {
			continue
		}
		duty := strings.TrimSpace(g.Cell(r, col))
		if duty == "" || duty == "-" {
			continue
		}

		lower := strings.ToLower(duty)
		if containsAny(lower, d.Tokens.Off) {
			continue
		}

		entry := withHandle(shortName(name), d.Dir.Handle(name))
		switch {
		case containsAny(lower, d.Tokens.Day):
			day = append(day, entry)
		case containsAny(lower, d.Tokens.Night):
			night = append(night, entry)
		default:
			day = append(day, entry+" — "+duty)
		}
	}

	if len(day) == 0 && len(night) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Duty for ")
	b.WriteString(date)
	if len(day) > 0 {
		b.WriteString("\n\nDay:")
		for _, e := range day {
			b.WriteString("\n")
			b.WriteString(e)
		}
	}
	if len(night) > 0 {
		b.WriteString("\n\nNight:")
		for _, e := range night {
			b.WriteString("\n")
			b.WriteString(e)
		}
	}
	return b.String()
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(s, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}
