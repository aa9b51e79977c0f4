package cashflow

import (
	"time"
)

// =============================================================================
// DATE - Calendar day abstraction (projections are day-granular)
// =============================================================================

// Date is a calendar day pinned to midnight UTC. The year/month/day components
// are always taken literally from the source data, never shifted through a
// timezone, so two Dates built from the same calendar day compare equal no
// matter where the input came from. The zero value means "no date".
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day in local time.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// dateLayouts are tried in order when parsing non-ISO strings.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// ParseDate normalizes a date-like string to a Date. The boolean reports
// whether the input was parseable; empty or malformed input returns false,
// which callers must treat as "never due". YYYY-MM-DD strings are read as
// literal calendar components; other layouts are truncated to their day.
func ParseDate(s string) (Date, bool) {
	if s == "" {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return NewDate(t.Year(), t.Month(), t.Day()), true
	}
	return Date{}, false
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }
func (d Date) IsZero() bool           { return d.Time.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EpochDay returns the number of whole days since the Unix epoch. Because
// Dates are midnight-pinned, differences of EpochDay values are exact day
// counts with no DST drift.
func (d Date) EpochDay() int {
	return int(d.Time.Unix() / 86400)
}

func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts any string ParseDate understands; null and empty
// strings produce the zero Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, ok := ParseDate(s)
	if !ok {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}

// =============================================================================
// MONTH HELPERS
// =============================================================================

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndOfMonth returns the last calendar day of the month.
func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, DaysInMonth(year, month))
}

// LastBusinessDay returns the last Monday-Friday day of the month, stepping
// backward from the last calendar day over weekends. No holiday calendar.
func LastBusinessDay(year int, month time.Month) Date {
	d := EndOfMonth(year, month)
	for d.IsWeekend() {
		d = d.AddDays(-1)
	}
	return d
}
