// Package report turns raw roster data into the texts the bot sends:
// grouped change notifications and the daily day/night digest. Composers
// here do no I/O; delivery belongs to the messenger.
package report

import (
	"strings"
	"unicode"
)

// Directory maps full names to display handles. It is loaded once from
// configuration and never mutated afterwards; an absent entry just means
// the person has no handle.
type Directory map[string]string

// Handle returns the display handle for a full name, or "".
func (d Directory) Handle(name string) string { return d[name] }

// emptyMark stands in for an empty cell value in rendered messages.
const emptyMark = "—"

// displayValue prepares a raw cell value for rendering: surrounding quote
// and guillemet characters are stripped, the text is collapsed to sentence
// case, and an empty result becomes the em-dash mark.
func displayValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'«»“”‘’`)
	if s == "" {
		return emptyMark
	}
	return sentenceCase(s)
}

func sentenceCase(s string) string {
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// shortName trims a full name down to its first two tokens for compact
// digest lines.
func shortName(full string) string {
	parts := strings.Fields(full)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, " ")
}

// withHandle appends the directory handle to a display name when one is
// known.
func withHandle(name, handle string) string {
	if handle == "" {
		return name
	}
	return name + " (@" + strings.TrimPrefix(handle, "@") + ")"
}
