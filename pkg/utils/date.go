package utils

import (
	"fmt"
	"time"

	"dfo-news-digest/pkg/common"
)

// LoadLocation resolves the reference timezone, defaulting to UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

// ParseDay parses a YYYY-MM-DD key as midnight in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(common.DayLayout, day, loc)
}

// TruncateDay returns midnight of t's calendar day in loc.
func TruncateDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AddDays shifts a calendar day, staying on midnight across DST changes.
func AddDays(day time.Time, n int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, day.Location())
}

// DayKey formats t as a YYYY-MM-DD key in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(common.DayLayout)
}

// Today returns today's key in loc.
func Today(loc *time.Location) string {
	return DayKey(time.Now(), loc)
}
