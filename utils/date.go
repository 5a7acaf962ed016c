package utils

import (
	"fmt"
	"time"
)

// ParisTZ is the reference timezone for all scheduling dates.
var ParisTZ = time.FixedZone("CET", 1*60*60)

func ParisNow() time.Time {
	return time.Now().In(ParisTZ)
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	return t
}

// ParseClock parses a time-of-day string ("08:00" or "08:00:00")
// onto the given base date.
func ParseClock(baseDate time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		t, err = time.Parse("15:04:05", clock)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse clock time %q: %w", clock, err)
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), t.Hour(), t.Minute(), t.Second(), 0, baseDate.Location()), nil
}

// FormatClock renders a time-of-day as "HH:MM:SS", the shape MySQL
// stores in a TIME column. Strings in this shape compare
// lexicographically the same way the times do.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

