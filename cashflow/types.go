/*
Package cashflow is the core budgeting engine.

PURPOSE:
  This package contains the pure computation at the heart of the app: given
  a starting balance and collections of incomes, credit-card obligations,
  recurring expenses, and one-time expenses, project the daily account
  balance over a horizon of N days. Everything else in the repo (storage,
  HTTP API, CSV codecs) is plumbing around this package.

KEY CONCEPTS IN THIS FILE (types.go):
  - Income / CreditCard / RecurringExpense / OneTimeExpense: user-entered
    money items, deliberately sparse (missing dates and zero amounts are
    the normal case, not errors)
  - Plan: the aggregate a user edits and a store persists
  - LedgerDay: one projected day of the output ledger

DESIGN PRINCIPLES:
  1. Purity: the engine never touches the clock or any store; "today" is an
     injected parameter with a default
  2. Precision: decimal.Decimal for all money, so the running-balance
     recurrence reproduces exactly
  3. Robustness: malformed rows contribute zero instead of failing the
     whole projection

SEE ALSO:
  - date.go: Date normalization
  - schedule.go: Recurrence rules
  - projection.go: The day-by-day ledger walk
  - analysis.go: Aggregate breakdowns over the same inputs
*/
package cashflow

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY ITEMS
// =============================================================================

// Income is a recurring or one-time money inflow. NextPayDate anchors the
// schedule; an empty anchor means the income never fires.
type Income struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   Frequency       `json:"frequency"`
	NextPayDate string          `json:"nextPayDate"`
	Active      *bool           `json:"isActive,omitempty"`
}

// CreditCard is a single-trigger obligation: the full balance posts as an
// expense on PayDate when set, otherwise on DueDate. It does not recur.
type CreditCard struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	DueDate string          `json:"dueDate"`
	PayDate string          `json:"payDate"`
	Active  *bool           `json:"isActive,omitempty"`
}

// RecurringExpense is a scheduled outflow. Category is a free-form label
// used only for reporting; it never affects the calculation.
type RecurringExpense struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Frequency   Frequency       `json:"frequency"`
	NextDueDate string          `json:"nextDueDate"`
	Active      *bool           `json:"isActive,omitempty"`
}

// OneTimeExpense fires on its exact date and never again.
type OneTimeExpense struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Active   *bool           `json:"isActive,omitempty"`
}

// Items default to active; only an explicit false pauses them. Paused items
// stay in storage but contribute zero to every projection and breakdown.
func (i Income) IsActive() bool           { return i.Active == nil || *i.Active }
func (c CreditCard) IsActive() bool       { return c.Active == nil || *c.Active }
func (e RecurringExpense) IsActive() bool { return e.Active == nil || *e.Active }
func (e OneTimeExpense) IsActive() bool   { return e.Active == nil || *e.Active }

// TriggerDate returns the raw date the card's balance posts on.
func (c CreditCard) TriggerDate() string {
	if c.PayDate != "" {
		return c.PayDate
	}
	return c.DueDate
}

// ParseAmount converts a raw string to a decimal amount, treating anything
// unparseable as zero. Used by codecs so one bad cell cannot abort an import.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// PLAN - The aggregate a user edits
// =============================================================================

// Projection horizon bounds. The engine itself accepts any horizon; these
// are enforced at the API edge where user input arrives.
const (
	MinProjectionDays     = 15
	MaxProjectionDays     = 90
	DefaultProjectionDays = 90
)

// Plan bundles everything the projection needs plus the horizon setting.
type Plan struct {
	StartingBalance   decimal.Decimal    `json:"startingBalance"`
	ProjectionDays    int                `json:"projectionDays"`
	Incomes           []Income           `json:"incomes"`
	CreditCards       []CreditCard       `json:"creditCards"`
	RecurringExpenses []RecurringExpense `json:"recurringExpenses"`
	OneTimeExpenses   []OneTimeExpense   `json:"oneTimeExpenses"`
}

// NewPlan returns an empty plan with the default horizon.
func NewPlan() Plan {
	return Plan{ProjectionDays: DefaultProjectionDays}
}

// Clone returns a deep copy so stores can hand out plans without aliasing
// their internal state.
func (p Plan) Clone() Plan {
	out := p
	out.Incomes = append([]Income(nil), p.Incomes...)
	out.CreditCards = append([]CreditCard(nil), p.CreditCards...)
	out.RecurringExpenses = append([]RecurringExpense(nil), p.RecurringExpenses...)
	out.OneTimeExpenses = append([]OneTimeExpense(nil), p.OneTimeExpenses...)
	return out
}

// ClampDays folds an arbitrary horizon into the supported range.
func ClampDays(days int) int {
	if days < MinProjectionDays {
		return MinProjectionDays
	}
	if days > MaxProjectionDays {
		return MaxProjectionDays
	}
	return days
}

// =============================================================================
// LEDGER DAY - One projected day of output
// =============================================================================

// LedgerDay is one row of the projection: the day's inflow, outflow, net
// change, and the running balance after applying it.
type LedgerDay struct {
	Date           Date            `json:"date"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	NetChange      decimal.Decimal `json:"netChange"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// HasActivity reports whether anything happened on this day. Used by the
// "transaction days only" view.
func (d LedgerDay) HasActivity() bool {
	return d.Income.IsPositive() || d.Expenses.IsPositive()
}
