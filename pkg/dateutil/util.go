package dateutil

import (
	"fmt"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseClock parses a wall clock time formatted as 15:04 and returns it as an
// offset from the beginning of a day.
func ParseClock(s string) (time.Duration, error) {
	clock, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}

	return time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute, nil
}

// NextDaily returns the first time strictly after now at the given clock.
func NextDaily(now time.Time, clock time.Duration) time.Time {
	next := at(BeginningOfDay(now), clock)
	if !next.After(now) {
		next = at(BeginningOfDay(now).AddDate(0, 0, 1), clock)
	}

	return next
}

// NextWeekly returns the first time strictly after now on the given weekday at
// the given clock.
func NextWeekly(now time.Time, weekday time.Weekday, clock time.Duration) time.Time {
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	next := at(BeginningOfDay(now).AddDate(0, 0, days), clock)
	if !next.After(now) {
		next = at(BeginningOfDay(now).AddDate(0, 0, days+7), clock)
	}

	return next
}

// at keeps the wall clock across daylight saving changes.
func at(day time.Time, clock time.Duration) time.Time {
	hours := int(clock / time.Hour)
	minutes := int((clock % time.Hour) / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location())
}
