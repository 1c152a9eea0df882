// Package clock provides calendar dates and the injected source of "today".
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Date is a calendar date without a time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month and day.
// It fails when the triple does not name a real calendar day.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < 0 {
		return Date{}, fmt.Errorf("year %d out of range", year)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("no such date %04d-%02d-%02d", year, int(month), day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a "y-m-d" string. Parts are plain decimal numbers and
// need not be zero padded, so "2023-5-3" is accepted.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("parse date %q: want year-month-day", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("parse date %q: %w", s, err)
		}
		nums[i] = n
	}
	d, err := NewDate(nums[0], time.Month(nums[1]), nums[2])
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// DaysUntil returns the signed number of days from d to other.
// The result is positive when other is after d.
func (d Date) DaysUntil(other Date) int {
	return int((other.midnight().Unix() - d.midnight().Unix()) / secondsPerDay)
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DateProvider supplies the current date.
type DateProvider interface {
	Today() Date
}

// System reads the wall clock and converts it to a date in Location.
// A nil Location means UTC.
type System struct {
	Location *time.Location
}

// Today returns the current date in the provider's location.
func (s System) Today() Date {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(time.Now().In(loc))
}

// Fixed always reports the same date.
type Fixed Date

// Today returns the fixed date.
func (f Fixed) Today() Date {
	return Date(f)
}
