// Package dates holds the calendar arithmetic shared by the planner: canonical
// date keys, month normalisation and Monday-first weekday numbering.
//
// All functions work on local calendar dates. A key is built from the local
// year, month and day of a time value and never from its UTC representation,
// so a task added at 00:30 local time lands on the local day.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// KeyLayout is the layout of a canonical date key (YYYY-MM-DD).
const KeyLayout = "2006-01-02"

// ErrOutOfRange is returned for month indices outside 0..11.
var ErrOutOfRange = errors.New("out of range")

// Key returns the canonical date key for t in t's own location.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Today returns the key of the day containing now.
func Today(now time.Time) string {
	return Key(now)
}

// ParseKey parses a canonical date key into local midnight of that date.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// ValidKey reports whether key is a well-formed date key for a real date.
func ValidKey(key string) bool {
	_, err := ParseKey(key)
	return err == nil
}

// LocalDate returns local midnight for year, month and day. month is
// zero-based (0 = January). Values outside their normal range roll over the
// same way time.Date does: month 12 is January of the following year and day 0
// is the last day of the previous month.
func LocalDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.Local)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in the zero-based month of year.
func DaysInMonth(year, month int) int {
	return LocalDate(year, month+1, 0).Day()
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// YearMonth returns the year and zero-based month of t.
func YearMonth(t time.Time) (int, int) {
	return t.Year(), int(t.Month()) - 1
}

// ShiftMonth moves a zero-based (year, month) pair by delta months, rolling
// the year as needed.
func ShiftMonth(year, month, delta int) (int, int) {
	total := year*12 + month + delta
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, m
}

// ValidateMonth returns ErrOutOfRange unless 0 <= month <= 11.
func ValidateMonth(month int) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("month index %d: %w", month, ErrOutOfRange)
	}
	return nil
}

// MonthPrefix returns the "YYYY-MM-" prefix shared by every key in the month.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month+1)
}
