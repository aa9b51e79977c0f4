/*
projection.go - Day-by-day balance projection

PURPOSE:
  Walks a horizon of N consecutive calendar days starting at "today" and
  produces one LedgerDay per day: summed due income, summed due expenses,
  the net change, and the running balance.

KEY INSIGHT:
  The projection is a pure fold. Each day's totals depend only on the item
  collections and the calendar; each day's running balance depends only on
  the previous day's. Identical inputs (including the injected today)
  always produce an identical ledger, so callers may memoize freely.

WHAT COUNTS ON A DAY:
  Income:             active incomes whose schedule fires that day
  Expenses:           active recurring expenses whose schedule fires
                    + active credit cards whose pay/due date is that day
                    + active one-time expenses dated that day

FAILURE POLICY:
  None of this returns errors. Missing anchors, unknown frequencies, and
  zero amounts all contribute zero; a negative horizon yields an empty
  ledger. The engine must keep producing a full ledger even when single
  rows are incomplete.

SEE ALSO:
  - schedule.go: The per-day due predicate
  - types.go: Item and LedgerDay shapes
*/
package cashflow

import (
	"github.com/shopspring/decimal"
)

// ProjectionInput carries everything the projection reads. Today is
// injected for testability and defaults to the current calendar day.
type ProjectionInput struct {
	StartingBalance   decimal.Decimal
	Incomes           []Income
	CreditCards       []CreditCard
	RecurringExpenses []RecurringExpense
	OneTimeExpenses   []OneTimeExpense
	Days              int
	Today             Date
}

// Project computes the day-by-day ledger. The result has exactly
// max(Days, 0) entries, one per consecutive calendar day starting at Today,
// with no gaps and no duplicates.
func Project(in ProjectionInput) []LedgerDay {
	today := in.Today
	if today.IsZero() {
		today = Today()
	}

	if in.Days <= 0 {
		return []LedgerDay{}
	}

	ledger := make([]LedgerDay, 0, in.Days)
	balance := in.StartingBalance

	for i := 0; i < in.Days; i++ {
		current := today.AddDays(i)

		income := decimal.Zero
		for _, item := range in.Incomes {
			if !item.IsActive() {
				continue
			}
			if IsDue(current, item.NextPayDate, item.Frequency) {
				income = income.Add(item.Amount)
			}
		}

		expenses := decimal.Zero
		for _, item := range in.RecurringExpenses {
			if !item.IsActive() {
				continue
			}
			if IsDue(current, item.NextDueDate, item.Frequency) {
				expenses = expenses.Add(item.Amount)
			}
		}
		for _, card := range in.CreditCards {
			if !card.IsActive() {
				continue
			}
			// Single trigger: pay date wins over due date, unparseable means never.
			trigger, ok := ParseDate(card.TriggerDate())
			if ok && current.EpochDay() == trigger.EpochDay() {
				expenses = expenses.Add(card.Balance)
			}
		}
		for _, item := range in.OneTimeExpenses {
			if !item.IsActive() {
				continue
			}
			date, ok := ParseDate(item.Date)
			if ok && current.EpochDay() == date.EpochDay() {
				expenses = expenses.Add(item.Amount)
			}
		}

		net := income.Sub(expenses)
		balance = balance.Add(net)

		ledger = append(ledger, LedgerDay{
			Date:           current,
			Income:         income,
			Expenses:       expenses,
			NetChange:      net,
			RunningBalance: balance,
		})
	}

	return ledger
}

// ProjectPlan projects a stored plan over its own horizon.
func ProjectPlan(p Plan, today Date) []LedgerDay {
	days := p.ProjectionDays
	if days == 0 {
		days = DefaultProjectionDays
	}
	return Project(ProjectionInput{
		StartingBalance:   p.StartingBalance,
		Incomes:           p.Incomes,
		CreditCards:       p.CreditCards,
		RecurringExpenses: p.RecurringExpenses,
		OneTimeExpenses:   p.OneTimeExpenses,
		Days:              days,
		Today:             today,
	})
}

// FinalBalance returns the closing balance and date of a ledger, or the
// starting balance at today when the ledger is empty.
func FinalBalance(ledger []LedgerDay, startingBalance decimal.Decimal, today Date) (decimal.Decimal, Date) {
	if len(ledger) == 0 {
		if today.IsZero() {
			today = Today()
		}
		return startingBalance, today
	}
	last := ledger[len(ledger)-1]
	return last.RunningBalance, last.Date
}

// TransactionDays filters a ledger down to days with nonzero activity.
func TransactionDays(ledger []LedgerDay) []LedgerDay {
	out := make([]LedgerDay, 0, len(ledger))
	for _, day := range ledger {
		if day.HasActivity() {
			out = append(out, day)
		}
	}
	return out
}
