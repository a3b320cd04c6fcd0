package model

import (
	"fmt"
	"time"
)

// DateFormat is the canonical string form of a Date (ISO-8601 day).
const DateFormat = "2006-01-02"

// Date is a calendar day with no time-of-day or zone component.
// The zero value is not a valid date; use IsZero to detect it.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns a normalized Date for the given year, month and day.
// Out-of-range values are normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{year: y, month: m, day: d}
}

// Today returns the current date.
func Today() Date {
	return NewDate(time.Now().Date())
}

// ParseDate parses an ISO-8601 day string such as "2025-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want %q: %w", s, DateFormat, err)
	}
	return NewDate(t.Date()), nil
}

// MustParseDate is like ParseDate but panics on error. Intended for tests
// and compile-time-known constants.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date i days after d (before, for negative i).
func (d Date) AddDays(i int) Date { return NewDate(d.year, d.month, d.day+i) }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Format formats the date with an arbitrary time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// String returns the date in its canonical "2006-01-02" form.
func (d Date) String() string { return d.time().Format(DateFormat) }
