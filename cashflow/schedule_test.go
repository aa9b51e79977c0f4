package cashflow_test

import (
	"testing"
	"time"

	"github.com/warp/cashflow-engine/cashflow"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) cashflow.Date {
	return cashflow.NewDate(year, month, day)
}

// =============================================================================
// WEEKLY / BI-WEEKLY
// =============================================================================

func TestWeekly_DueEverySevenDays(t *testing.T) {
	// GIVEN: A weekly schedule anchored on Monday 2024-01-01
	// WHEN: Checking each day of the following weeks
	// THEN: Due exactly on the anchor and every 7 days after

	anchor := date(2024, time.January, 1)

	due := []cashflow.Date{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
		date(2024, time.February, 5),
	}
	for _, d := range due {
		if !cashflow.DueOn(d, anchor, cashflow.Weekly) {
			t.Errorf("expected due on %s", d)
		}
	}

	notDue := []cashflow.Date{
		date(2024, time.January, 2),
		date(2024, time.January, 7),
		date(2024, time.January, 14),
	}
	for _, d := range notDue {
		if cashflow.DueOn(d, anchor, cashflow.Weekly) {
			t.Errorf("expected not due on %s", d)
		}
	}
}

func TestWeekly_NotDueBeforeAnchor(t *testing.T) {
	anchor := date(2024, time.January, 8)
	// Exactly 7 days before the anchor would match the modulus arithmetic,
	// but nothing fires before the schedule starts.
	if cashflow.DueOn(date(2024, time.January, 1), anchor, cashflow.Weekly) {
		t.Error("schedule must not fire before its anchor")
	}
}

func TestBiWeekly_DueEveryFourteenDays(t *testing.T) {
	anchor := date(2024, time.January, 5)

	if !cashflow.DueOn(date(2024, time.January, 5), anchor, cashflow.BiWeekly) {
		t.Error("expected due on the anchor itself")
	}
	if !cashflow.DueOn(date(2024, time.January, 19), anchor, cashflow.BiWeekly) {
		t.Error("expected due 14 days after anchor")
	}
	if !cashflow.DueOn(date(2024, time.February, 2), anchor, cashflow.BiWeekly) {
		t.Error("expected due 28 days after anchor")
	}
	if cashflow.DueOn(date(2024, time.January, 12), anchor, cashflow.BiWeekly) {
		t.Error("bi-weekly must not fire on the 7-day midpoint")
	}
}

// =============================================================================
// MONTHLY - Same day-of-month with month-end clamping
// =============================================================================

func TestMonthly_SameDayEachMonth(t *testing.T) {
	anchor := date(2024, time.January, 10)

	if !cashflow.DueOn(date(2024, time.January, 10), anchor, cashflow.Monthly) {
		t.Error("expected due on the anchor itself")
	}
	if !cashflow.DueOn(date(2024, time.February, 10), anchor, cashflow.Monthly) {
		t.Error("expected due on the 10th of the next month")
	}
	if !cashflow.DueOn(date(2024, time.March, 10), anchor, cashflow.Monthly) {
		t.Error("expected due on the 10th two months out")
	}
	if cashflow.DueOn(date(2024, time.February, 9), anchor, cashflow.Monthly) {
		t.Error("must not fire the day before the target")
	}
	if cashflow.DueOn(date(2024, time.February, 11), anchor, cashflow.Monthly) {
		t.Error("must not fire the day after the target")
	}
}

func TestMonthly_ClampsToShorterMonths(t *testing.T) {
	// GIVEN: A monthly schedule anchored on Jan 31
	// WHEN: February has only 29 days (2024 is a leap year)
	// THEN: It fires on Feb 29, and back on the 31st in March

	anchor := date(2024, time.January, 31)

	if !cashflow.DueOn(date(2024, time.February, 29), anchor, cashflow.Monthly) {
		t.Error("expected Jan 31 anchor to clamp to Feb 29 in a leap year")
	}
	if cashflow.DueOn(date(2024, time.February, 28), anchor, cashflow.Monthly) {
		t.Error("must not fire on Feb 28 when Feb 29 exists")
	}
	if !cashflow.DueOn(date(2024, time.March, 31), anchor, cashflow.Monthly) {
		t.Error("expected the schedule to return to the 31st in March")
	}
	if !cashflow.DueOn(date(2024, time.April, 30), anchor, cashflow.Monthly) {
		t.Error("expected Jan 31 anchor to clamp to Apr 30")
	}
}

func TestMonthly_ClampInNonLeapYear(t *testing.T) {
	anchor := date(2023, time.January, 31)
	if !cashflow.DueOn(date(2023, time.February, 28), anchor, cashflow.Monthly) {
		t.Error("expected Jan 31 anchor to clamp to Feb 28 in a non-leap year")
	}
}

func TestMonthly_ThirtiethAnchorClampsInFebruary(t *testing.T) {
	anchor := date(2024, time.January, 30)
	if !cashflow.DueOn(date(2024, time.February, 29), anchor, cashflow.Monthly) {
		t.Error("expected Jan 30 anchor to clamp to Feb 29")
	}
	if !cashflow.DueOn(date(2024, time.March, 30), anchor, cashflow.Monthly) {
		t.Error("expected Jan 30 anchor to fire on Mar 30")
	}
}

// =============================================================================
// 15TH AND LAST BUSINESS DAY
// =============================================================================

func TestFifteenthAndLast_FiresTwicePerMonth(t *testing.T) {
	// GIVEN: A 15th-and-last schedule anchored on 2024-01-01
	// THEN: Jan fires on the 15th and the 31st (a Wednesday);
	//       Feb fires on the 15th and the 29th (a Thursday)

	anchor := date(2024, time.January, 1)

	due := []cashflow.Date{
		date(2024, time.January, 15),
		date(2024, time.January, 31),
		date(2024, time.February, 15),
		date(2024, time.February, 29),
	}
	for _, d := range due {
		if !cashflow.DueOn(d, anchor, cashflow.FifteenthAndLast) {
			t.Errorf("expected due on %s", d)
		}
	}

	notDue := []cashflow.Date{
		date(2024, time.January, 14),
		date(2024, time.January, 16),
		date(2024, time.January, 30),
		date(2024, time.February, 28),
	}
	for _, d := range notDue {
		if cashflow.DueOn(d, anchor, cashflow.FifteenthAndLast) {
			t.Errorf("expected not due on %s", d)
		}
	}
}

func TestFifteenthAndLast_SkipsWeekendMonthEnd(t *testing.T) {
	// March 2024 ends on a Sunday; the last business day is Friday the 29th.
	anchor := date(2024, time.January, 1)

	if !cashflow.DueOn(date(2024, time.March, 29), anchor, cashflow.FifteenthAndLast) {
		t.Error("expected due on Friday Mar 29, the last business day")
	}
	if cashflow.DueOn(date(2024, time.March, 31), anchor, cashflow.FifteenthAndLast) {
		t.Error("must not fire on Sunday Mar 31")
	}
	if cashflow.DueOn(date(2024, time.March, 30), anchor, cashflow.FifteenthAndLast) {
		t.Error("must not fire on Saturday Mar 30")
	}
}

func TestFifteenthAndLast_LateAnchorSkipsItsOwnMonth(t *testing.T) {
	// GIVEN: An anchor after the 15th (2024-01-20)
	// THEN: Nothing fires for the rest of January, including the month-end;
	//       the schedule starts on Feb 15

	anchor := date(2024, time.January, 20)

	if cashflow.DueOn(date(2024, time.January, 31), anchor, cashflow.FifteenthAndLast) {
		t.Error("anchor after the 15th must skip its own month-end")
	}
	if !cashflow.DueOn(date(2024, time.February, 15), anchor, cashflow.FifteenthAndLast) {
		t.Error("expected the schedule to start on the following 15th")
	}
	if !cashflow.DueOn(date(2024, time.February, 29), anchor, cashflow.FifteenthAndLast) {
		t.Error("expected the following month-end to fire")
	}
}

// =============================================================================
// ONE-TIME
// =============================================================================

func TestOneTime_FiresExactlyOnce(t *testing.T) {
	anchor := date(2024, time.June, 15)

	if !cashflow.DueOn(date(2024, time.June, 15), anchor, cashflow.OneTime) {
		t.Error("expected due on the anchor day")
	}
	if cashflow.DueOn(date(2024, time.June, 16), anchor, cashflow.OneTime) {
		t.Error("one-time must not fire the day after")
	}
	if cashflow.DueOn(date(2024, time.June, 14), anchor, cashflow.OneTime) {
		t.Error("one-time must not fire the day before")
	}
}

// =============================================================================
// FAILURE POLICY - Bad input means "never due"
// =============================================================================

func TestIsDue_MalformedAnchorNeverDue(t *testing.T) {
	today := date(2024, time.March, 1)

	if cashflow.IsDue(today, "", cashflow.Weekly) {
		t.Error("empty anchor must never be due")
	}
	if cashflow.IsDue(today, "not-a-date", cashflow.Weekly) {
		t.Error("unparseable anchor must never be due")
	}
}

func TestDueOn_UnknownFrequencyNeverDue(t *testing.T) {
	anchor := date(2024, time.January, 1)
	if cashflow.DueOn(anchor, anchor, cashflow.Frequency("quarterly")) {
		t.Error("unknown frequency must never be due")
	}
}

func TestParseFrequency(t *testing.T) {
	for _, s := range []string{"weekly", "bi-weekly", "monthly", "15th-and-last", "one-time"} {
		if _, ok := cashflow.ParseFrequency(s); !ok {
			t.Errorf("expected %q to parse", s)
		}
	}
	if _, ok := cashflow.ParseFrequency("daily"); ok {
		t.Error("expected unknown frequency to be rejected")
	}
}
