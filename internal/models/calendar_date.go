package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CalendarDateLayout is the wire and storage layout of a calendar date
const CalendarDateLayout = "2006-01-02"

// CalendarDate is a date without a time component. It never shifts across
// time zones: "2025-12-01" stays "2025-12-01" whatever the server zone.
type CalendarDate struct {
	year  int
	month time.Month
	day   int
}

// NewCalendarDate builds a date from its parts
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return CalendarDate{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseCalendarDate parses a YYYY-MM-DD string
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(CalendarDateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return CalendarDate{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// IsZero reports whether the date is unset
func (d CalendarDate) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Time returns midnight UTC of the date
func (d CalendarDate) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is strictly earlier than other
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Time().Before(other.Time())
}

func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalJSON implements json.Marshaler
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = CalendarDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = CalendarDate{}
		return nil
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements the driver.Valuer interface
func (d CalendarDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements the sql.Scanner interface
func (d *CalendarDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = CalendarDate{}
		return nil
	case time.Time:
		*d = CalendarDate{year: v.Year(), month: v.Month(), day: v.Day()}
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into CalendarDate", src)
	}
}

func (d *CalendarDate) scanString(s string) error {
	if len(s) > len(CalendarDateLayout) {
		s = s[:len(CalendarDateLayout)]
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
