package entity

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the wire and storage format of a CalendarDay.
const DateLayout = "2006-01-02"

// CalendarDay is a local calendar date without a time or zone component.
// The zero value is not a valid day.
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCalendarDay parses a YYYY-MM-DD string.
func ParseCalendarDay(s string) (CalendarDay, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDay{}, fmt.Errorf("invalid calendar day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// MustParseCalendarDay is ParseCalendarDay for literals in tests and fixtures.
func MustParseCalendarDay(s string) CalendarDay {
	d, err := ParseCalendarDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) CalendarDay {
	y, m, d := t.Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

func (d CalendarDay) IsZero() bool {
	return d == CalendarDay{}
}

// Time returns midnight UTC of the day, the form handed to the database driver.
func (d CalendarDay) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDay) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d CalendarDay) AddDays(n int) CalendarDay {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to other (negative when other is earlier).
func (d CalendarDay) DaysUntil(other CalendarDay) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

func (d CalendarDay) Before(other CalendarDay) bool {
	return d.Compare(other) < 0
}

func (d CalendarDay) After(other CalendarDay) bool {
	return d.Compare(other) > 0
}

// Compare returns -1, 0 or +1.
func (d CalendarDay) Compare(other CalendarDay) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CalendarDay) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDay) UnmarshalText(b []byte) error {
	parsed, err := ParseCalendarDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalTOML accepts both quoted dates and TOML local dates.
func (d *CalendarDay) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		return d.UnmarshalText([]byte(val))
	case time.Time:
		*d = DayOf(val)
		return nil
	default:
		return fmt.Errorf("invalid calendar day %v: expected a date", v)
	}
}

// SortDays returns an ascending copy of days.
func SortDays(days []CalendarDay) []CalendarDay {
	sorted := make([]CalendarDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return sorted
}

// DayStrings formats days in the given order.
func DayStrings(days []CalendarDay) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}

// DayTimes converts days for array parameters (date[] columns).
func DayTimes(days []CalendarDay) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = d.Time()
	}
	return out
}

// DaysOf is the inverse of DayTimes.
func DaysOf(times []time.Time) []CalendarDay {
	out := make([]CalendarDay, len(times))
	for i, t := range times {
		out[i] = DayOf(t)
	}
	return out
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
