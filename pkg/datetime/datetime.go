// Package datetime provides standardized date and month handling across the
// application. All dates are stored and transmitted in UTC using ISO 8601
// formats: YYYY-MM-DD for dates and YYYY-MM for months.
package datetime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Standard formats used throughout the application.
const (
	// DateFormat is the standard date-only format (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// MonthFormat is the standard month format (YYYY-MM).
	MonthFormat = "2006-01"
)

// Date represents a date-only value (no time component).
// It serializes to/from JSON as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns today's date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// DateOf truncates a time to its date in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateFormat))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}

	// Try date-only format first
	t, err := time.Parse(DateFormat, s)
	if err == nil {
		d.Time = t
		return nil
	}

	// Fall back to RFC3339 (extract date portion)
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}

	return err
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateFormat)
}

// Month returns the calendar month the date falls in.
func (d Date) Month() Month {
	return Month{Year: d.Year(), Mon: d.Time.Month()}
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Equal reports whether d and other are the same date.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Month represents a calendar month (year + month), the unit of all temporal
// windowing in the application. It serializes to/from JSON as "YYYY-MM".
type Month struct {
	Year int
	Mon  time.Month
}

// NewMonth creates a Month from year and month.
func NewMonth(year int, month time.Month) Month {
	return Month{Year: year, Mon: month}
}

// CurrentMonth returns the month containing today (UTC).
func CurrentMonth() Month {
	now := time.Now().UTC()
	return Month{Year: now.Year(), Mon: now.Month()}
}

// MonthOf returns the month containing the given time.
func MonthOf(t time.Time) Month {
	u := t.UTC()
	return Month{Year: u.Year(), Mon: u.Month()}
}

// ParseMonth parses a month string in YYYY-MM format.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Mon: t.Month()}, nil
}

// String returns the month in YYYY-MM format.
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Mon))
}

// IsZero reports whether the month is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Mon == 0
}

// MarshalJSON implements json.Marshaler.
func (m Month) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Month) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Start returns the first day of the month.
func (m Month) Start() Date {
	return NewDate(m.Year, m.Mon, 1)
}

// End returns the last day of the month, calendar-aware (28/29/30/31).
func (m Month) End() Date {
	first := time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC)
	return Date{first.AddDate(0, 1, -1)}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.End().Day()
}

// Prev returns the previous calendar month.
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Month{Year: t.Year(), Mon: t.Month()}
}

// Next returns the next calendar month.
func (m Month) Next() Month {
	t := time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Month{Year: t.Year(), Mon: t.Month()}
}

// AddMonths returns the month n months after m (negative n goes back).
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Mon: t.Month()}
}

// Contains reports whether the date falls inside this month.
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Time.Month() == m.Mon
}

// ContainsOrBefore reports whether the date falls on or before the last day of
// this month. This is the cumulative "up to end of month" window used for
// progress tracking, bounded by the real month end rather than a sentinel day.
func (m Month) ContainsOrBefore(d Date) bool {
	return !d.After(m.End())
}

// Before reports whether m is strictly before other.
func (m Month) Before(other Month) bool {
	return m.Year < other.Year || (m.Year == other.Year && m.Mon < other.Mon)
}

// After reports whether m is strictly after other.
func (m Month) After(other Month) bool {
	return other.Before(m)
}

// Day returns the given day of this month, clamping to the last day when the
// month is shorter (a day-31 schedule lands on Feb 28/29).
func (m Month) Day(day int) Date {
	if last := m.Days(); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return NewDate(m.Year, m.Mon, day)
}

// Label returns a short human-readable label ("Jan 2025").
func (m Month) Label() string {
	return time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
