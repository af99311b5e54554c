// Package calendar holds the Europe/Stockholm clock rules used across the
// site: day boundaries, the all-day convention and query timestamps.
package calendar

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// QueryLayout is the wall-clock layout the events table is filtered with.
const QueryLayout = "2006-01-02 15:04:05"

// DateLayout is the layout of a calendar day in query strings.
const DateLayout = "2006-01-02"

// AllDayLabel replaces the time of events that start at midnight.
const AllDayLabel = "Heldag"

// Location is the zone every event time is interpreted in.
var Location = mustLoad("Europe/Stockholm")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("load location %s: %v", name, err))
	}
	return loc
}

// Local converts t to Stockholm time.
func Local(t time.Time) time.Time {
	return t.In(Location)
}

// InLocal keeps the wall clock of t but places it in Stockholm. Columns
// without a time zone come back from drivers as UTC and must be read this way.
func InLocal(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), Location)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = Local(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}

// EndOfDay returns the last representable instant of the day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Today returns local midnight of now.
func Today(now time.Time) time.Time {
	return StartOfDay(now)
}

// AddDays moves t by n calendar days, keeping the wall clock across DST changes.
func AddDays(t time.Time, n int) time.Time {
	return Local(t).AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	a, b = Local(a), Local(b)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsAllDay reports whether t is exactly local midnight, which marks an
// event without a specific start time.
func IsAllDay(t time.Time) bool {
	t = Local(t)
	return t.Hour() == 0 && t.Minute() == 0
}

// SortKey is the instant used to order events. All-day events sort as if
// they started at noon.
func SortKey(t time.Time) time.Time {
	if IsAllDay(t) {
		return StartOfDay(t).Add(12 * time.Hour)
	}
	return t
}

// TimeLabel formats the start time for display.
func TimeLabel(t time.Time) string {
	if IsAllDay(t) {
		return AllDayLabel
	}
	return Local(t).Format("15:04")
}

// QueryFormat renders t as a Stockholm wall-clock string for filters on the
// timestamp column.
func QueryFormat(t time.Time) string {
	return Local(t).Format(QueryLayout)
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimestamp reads a timestamp as returned by the database. Values with
// an offset are converted to Stockholm time; values without are taken as
// Stockholm wall clock.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse timestamp: empty value")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Local(t), nil
	}
	// Postgres renders offsets as +01 without minutes.
	if t, err := time.Parse("2006-01-02T15:04:05.999999999Z07", s); err == nil {
		return Local(t), nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05.999999999Z07", s); err == nil {
		return Local(t), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: unsupported layout", s)
}

// ParseDate reads a YYYY-MM-DD day and returns its local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
