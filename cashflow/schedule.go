/*
schedule.go - Recurrence rules for incomes and expenses

PURPOSE:
  Decides whether a payment is due on a given calendar day for a given
  frequency rule and anchor date. This is the one place in the engine with
  real date arithmetic: month-end clamping, business-day stepping, and
  exact-day matching all live here.

FREQUENCIES:
  weekly          Every 7 days from the anchor
  bi-weekly       Every 14 days from the anchor
  monthly         Same day-of-month as the anchor, clamped to shorter months
                  (anchor on the 31st falls on Feb 29 in a leap year)
  15th-and-last   The 15th and the last business day of every month
  one-time        Exactly the anchor day, never repeats

FAILURE POLICY:
  A missing or unparseable anchor, or an unknown frequency, means "never
  due" - not an error. A half-filled form row is the normal case here, and
  one bad row must not take down the whole projection.

SEE ALSO:
  - date.go: Date normalization and month helpers
  - projection.go: Walks the horizon asking IsDue per item per day
*/
package cashflow

// Frequency identifies how often a scheduled payment recurs.
type Frequency string

const (
	Weekly           Frequency = "weekly"
	BiWeekly         Frequency = "bi-weekly"
	Monthly          Frequency = "monthly"
	FifteenthAndLast Frequency = "15th-and-last"
	OneTime          Frequency = "one-time"
)

// ParseFrequency maps a raw string to a known Frequency. Unknown values
// return false; callers treat them as never-due.
func ParseFrequency(s string) (Frequency, bool) {
	switch Frequency(s) {
	case Weekly, BiWeekly, Monthly, FifteenthAndLast, OneTime:
		return Frequency(s), true
	}
	return "", false
}

// IsDue reports whether a payment with the given anchor date and frequency
// falls due on current. The anchor is a raw string from user data; if it
// does not normalize to a date the answer is always false.
func IsDue(current Date, anchor string, freq Frequency) bool {
	start, ok := ParseDate(anchor)
	if !ok {
		return false
	}
	return DueOn(current, start, freq)
}

// DueOn is IsDue with an already-normalized anchor.
func DueOn(current, start Date, freq Frequency) bool {
	if current.Before(start) {
		return false
	}

	// Whole days since the anchor; exact because Dates are midnight-pinned.
	daysDiff := current.EpochDay() - start.EpochDay()

	switch freq {
	case Weekly:
		return daysDiff%7 == 0

	case BiWeekly:
		return daysDiff%14 == 0

	case Monthly:
		// Same day-of-month as the anchor, clamped so an anchor on the 29th,
		// 30th, or 31st still fires in shorter months.
		target := start.Day()
		if last := DaysInMonth(current.Year(), current.Month()); target > last {
			target = last
		}
		return current.Day() == target

	case FifteenthAndLast:
		// An anchor after the 15th skips the remainder of its own month;
		// the schedule starts from the following month's 15th.
		if start.Day() > 15 && current.Year() == start.Year() && current.Month() == start.Month() {
			return false
		}
		if current.Day() == 15 {
			return true
		}
		return current.Equal(LastBusinessDay(current.Year(), current.Month()))

	case OneTime:
		return daysDiff == 0

	default:
		return false
	}
}
