package grid

import (
	"regexp"
	"time"
)

// NoDate is the sentinel returned for empty header cells. It must never be
// matched against a real target date.
const NoDate = "no date"

// serialEpoch is the day-zero of common spreadsheet date serialization.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const dayMillis = 86_400_000

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeDate converts any header cell representation to the canonical
// YYYY-MM-DD form. Text keeps its first ten characters (covers ISO
// timestamps), numbers are read as serial day counts from the 1899-12-30
// epoch, and native dates are formatted directly. Empty input yields NoDate.
func NormalizeDate(v any) string {
	switch x := v.(type) {
	case nil:
		return NoDate
	case string:
		if x == "" {
			return NoDate
		}
		if len(x) > 10 {
			return x[:10]
		}
		return x
	case time.Time:
		return x.Format("2006-01-02")
	case float64:
		return serialToDate(x)
	case int:
		return serialToDate(float64(x))
	case int64:
		return serialToDate(float64(x))
	default:
		return NoDate
	}
}

func serialToDate(days float64) string {
	ms := time.Duration(days*dayMillis) * time.Millisecond
	return serialEpoch.Add(ms).UTC().Format("2006-01-02")
}

// ValidDate reports whether s is a strict YYYY-MM-DD date token. Only the
// shape is checked here; a non-existent calendar date simply resolves to no
// roster column later.
func ValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// Tomorrow returns the canonical date string for the day after now.
func Tomorrow(now time.Time) string {
	return now.AddDate(0, 0, 1).Format("2006-01-02")
}
