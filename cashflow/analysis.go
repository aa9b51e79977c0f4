/*
analysis.go - Aggregate breakdowns for reporting

PURPOSE:
  Summarizes a plan over the projection horizon: which sources the income
  comes from, which categories the money goes to, and the headline metrics
  (totals, net cash flow, savings rate) shown on the insights dashboard.

ESTIMATION NOTE:
  The breakdown deliberately estimates recurring totals by occurrence count
  (horizon / interval, minimum one occurrence) instead of replaying the
  day-by-day schedule. It feeds proportional charts, where a cheap estimate
  reads better than month-end-exact numbers. The ledger from projection.go
  stays the source of truth for balances.

SEE ALSO:
  - projection.go: The exact day-by-day ledger
  - types.go: Item shapes
*/
package cashflow

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// FLOW BREAKDOWN
// =============================================================================

// Breakdown groups projected flow by source and category.
type Breakdown struct {
	IncomeBySource     map[string]decimal.Decimal `json:"incomeBySource"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	CreditCardExpenses map[string]decimal.Decimal `json:"creditCardExpenses"`
	OneTimeByName      map[string]decimal.Decimal `json:"oneTimeExpensesByName"`
	TotalIncome        decimal.Decimal            `json:"totalIncome"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
}

// occurrenceInterval estimates the recurrence interval in days.
func occurrenceInterval(freq Frequency) int {
	switch freq {
	case Weekly:
		return 7
	case BiWeekly:
		return 14
	case FifteenthAndLast:
		return 15
	default:
		return 30
	}
}

// occurrences estimates how many times a schedule fires over the horizon;
// everything fires at least once.
func occurrences(days int, freq Frequency) decimal.Decimal {
	n := days / occurrenceInterval(freq)
	if n < 1 {
		n = 1
	}
	return decimal.NewFromInt(int64(n))
}

// FlowBreakdown aggregates a plan's flow over the given horizon. Inactive
// and unnamed items are skipped; credit cards count their full balance;
// one-time expenses count only when they fall inside the horizon starting
// at today.
func FlowBreakdown(p Plan, days int, today Date) Breakdown {
	if today.IsZero() {
		today = Today()
	}
	b := Breakdown{
		IncomeBySource:     map[string]decimal.Decimal{},
		ExpensesByCategory: map[string]decimal.Decimal{},
		CreditCardExpenses: map[string]decimal.Decimal{},
		OneTimeByName:      map[string]decimal.Decimal{},
		TotalIncome:        decimal.Zero,
		TotalExpenses:      decimal.Zero,
	}

	for _, inc := range p.Incomes {
		if !inc.IsActive() || inc.Name == "" || inc.Amount.IsZero() {
			continue
		}
		total := inc.Amount.Mul(occurrences(days, inc.Frequency))
		b.IncomeBySource[inc.Name] = total
		b.TotalIncome = b.TotalIncome.Add(total)
	}

	for _, exp := range p.RecurringExpenses {
		if !exp.IsActive() || exp.Name == "" || exp.Category == "" || exp.Amount.IsZero() {
			continue
		}
		total := exp.Amount.Mul(occurrences(days, exp.Frequency))
		b.ExpensesByCategory[exp.Category] = b.ExpensesByCategory[exp.Category].Add(total)
		b.TotalExpenses = b.TotalExpenses.Add(total)
	}

	for _, card := range p.CreditCards {
		if !card.IsActive() || card.Name == "" || card.Balance.IsZero() {
			continue
		}
		b.CreditCardExpenses[card.Name] = card.Balance
		b.TotalExpenses = b.TotalExpenses.Add(card.Balance)
	}

	end := today.AddDays(days)
	for _, exp := range p.OneTimeExpenses {
		if !exp.IsActive() || exp.Name == "" || exp.Amount.IsZero() {
			continue
		}
		date, ok := ParseDate(exp.Date)
		if !ok || date.Before(today) || date.After(end) {
			continue
		}
		b.OneTimeByName[exp.Name] = exp.Amount
		b.TotalExpenses = b.TotalExpenses.Add(exp.Amount)
	}

	return b
}

// =============================================================================
// HEADLINE METRICS
// =============================================================================

// Metrics are the dashboard numbers derived from a breakdown.
type Metrics struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetCashFlow   decimal.Decimal `json:"netCashFlow"`
	SavingsRate   decimal.Decimal `json:"savingsRate"`
}

var hundred = decimal.NewFromInt(100)

// ComputeMetrics derives totals, net cash flow, and the savings rate
// (net flow as a percent of income, one decimal place, zero when there is
// no income).
func ComputeMetrics(b Breakdown) Metrics {
	net := b.TotalIncome.Sub(b.TotalExpenses)
	rate := decimal.Zero
	if b.TotalIncome.IsPositive() {
		rate = net.Div(b.TotalIncome).Mul(hundred).Round(1)
	}
	return Metrics{
		TotalIncome:   b.TotalIncome,
		TotalExpenses: b.TotalExpenses,
		NetCashFlow:   net,
		SavingsRate:   rate,
	}
}
