package calendar

import (
	"fmt"
	"time"
)

// Range is an inclusive span of whole local days.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange spans from the start of the first day to the end of the last.
func NewRange(first, last time.Time) Range {
	if last.Before(first) {
		first, last = last, first
	}
	return Range{Start: StartOfDay(first), End: EndOfDay(last)}
}

// Contains reports whether t lies within the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Named quick ranges offered by the date filters.
const (
	RangeToday    = "today"
	RangeWeekend  = "weekend"
	RangeWeek     = "week"
	RangeNextWeek = "next-week"
	RangeMonth    = "month"
)

// TodayRange covers the current day.
func TodayRange(now time.Time) Range {
	return NewRange(now, now)
}

// WeekendRange covers Friday through Sunday. From Friday to Sunday it is the
// current weekend, otherwise the coming one.
func WeekendRange(now time.Time) Range {
	today := Today(now)
	var friday time.Time
	switch today.Weekday() {
	case time.Friday:
		friday = today
	case time.Saturday:
		friday = AddDays(today, -1)
	case time.Sunday:
		friday = AddDays(today, -2)
	default:
		friday = AddDays(today, int(time.Friday-today.Weekday()))
	}
	return NewRange(friday, AddDays(friday, 2))
}

// WeekRange covers Monday through Sunday of the current week.
func WeekRange(now time.Time) Range {
	monday := mondayOf(now)
	return NewRange(monday, AddDays(monday, 6))
}

// NextWeekRange covers Monday through Sunday of the following week.
func NextWeekRange(now time.Time) Range {
	monday := AddDays(mondayOf(now), 7)
	return NewRange(monday, AddDays(monday, 6))
}

// MonthRange covers the current calendar month.
func MonthRange(now time.Time) Range {
	today := Today(now)
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, Location)
	return NewRange(first, first.AddDate(0, 1, -1))
}

// NamedRange resolves one of the quick range names.
func NamedRange(name string, now time.Time) (Range, error) {
	switch name {
	case RangeToday:
		return TodayRange(now), nil
	case RangeWeekend:
		return WeekendRange(now), nil
	case RangeWeek:
		return WeekRange(now), nil
	case RangeNextWeek:
		return NextWeekRange(now), nil
	case RangeMonth:
		return MonthRange(now), nil
	default:
		return Range{}, fmt.Errorf("unknown range %q", name)
	}
}

func mondayOf(now time.Time) time.Time {
	today := Today(now)
	offset := (int(today.Weekday()) + 6) % 7
	return AddDays(today, -offset)
}
