/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNTS:
  Domain money is decimal.Decimal; DTOs carry float64 so clients see plain
  JSON numbers. The conversion happens only at this boundary.

SEE ALSO:
  - handlers.go: Uses these types
  - cashflow/types.go: The domain model behind them
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/cashflow-engine/cashflow"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// PlanDTO is the full plan in API responses.
type PlanDTO struct {
	ID                string                `json:"id"`
	StartingBalance   float64               `json:"starting_balance"`
	ProjectionDays    int                   `json:"projection_days"`
	Incomes           []IncomeDTO           `json:"incomes"`
	CreditCards       []CreditCardDTO       `json:"credit_cards"`
	RecurringExpenses []RecurringExpenseDTO `json:"recurring_expenses"`
	OneTimeExpenses   []OneTimeExpenseDTO   `json:"one_time_expenses"`
}

// SettingsRequest updates the plan-level knobs. Both fields are optional;
// an omitted field keeps the stored value.
type SettingsRequest struct {
	StartingBalance *float64 `json:"starting_balance"`
	ProjectionDays  int      `json:"projection_days"`
}

// IncomeDTO represents an income source. IsActive is a pointer on the way
// in so an omitted flag reads as active; responses always populate it.
type IncomeDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Frequency   string  `json:"frequency"`
	NextPayDate string  `json:"next_pay_date"`
	IsActive    *bool   `json:"is_active"`
}

// CreditCardDTO represents a credit-card obligation.
type CreditCardDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	DueDate  string  `json:"due_date"`
	PayDate  string  `json:"pay_date,omitempty"`
	IsActive *bool   `json:"is_active"`
}

// RecurringExpenseDTO represents a scheduled expense.
type RecurringExpenseDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Frequency   string  `json:"frequency"`
	NextDueDate string  `json:"next_due_date"`
	IsActive    *bool   `json:"is_active"`
}

// OneTimeExpenseDTO represents a single-date expense.
type OneTimeExpenseDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	IsActive *bool   `json:"is_active"`
}

// LedgerDayDTO is one projected day.
type LedgerDayDTO struct {
	Date           string  `json:"date"`
	Income         float64 `json:"income"`
	Expenses       float64 `json:"expenses"`
	NetChange      float64 `json:"net_change"`
	RunningBalance float64 `json:"running_balance"`
}

// ProjectionDTO wraps the ledger with its headline numbers.
type ProjectionDTO struct {
	PlanID          string         `json:"plan_id"`
	Days            int            `json:"days"`
	StartingBalance float64        `json:"starting_balance"`
	FinalBalance    float64        `json:"final_balance"`
	FinalDate       string         `json:"final_date"`
	Ledger          []LedgerDayDTO `json:"ledger"`
}

// BreakdownDTO groups projected flow by source and category.
type BreakdownDTO struct {
	IncomeBySource     map[string]float64 `json:"income_by_source"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	CreditCardExpenses map[string]float64 `json:"credit_card_expenses"`
	OneTimeByName      map[string]float64 `json:"one_time_expenses_by_name"`
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
}

// MetricsDTO carries the dashboard numbers.
type MetricsDTO struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetCashFlow   float64 `json:"net_cash_flow"`
	SavingsRate   float64 `json:"savings_rate"`
}

// ScenarioDTO describes a loadable demo plan.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest loads a demo plan into a plan ID.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
	PlanID     string `json:"plan_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func amt(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toPlanDTO(id string, p cashflow.Plan) PlanDTO {
	dto := PlanDTO{
		ID:                id,
		StartingBalance:   amt(p.StartingBalance),
		ProjectionDays:    p.ProjectionDays,
		Incomes:           make([]IncomeDTO, len(p.Incomes)),
		CreditCards:       make([]CreditCardDTO, len(p.CreditCards)),
		RecurringExpenses: make([]RecurringExpenseDTO, len(p.RecurringExpenses)),
		OneTimeExpenses:   make([]OneTimeExpenseDTO, len(p.OneTimeExpenses)),
	}
	for i, item := range p.Incomes {
		dto.Incomes[i] = toIncomeDTO(item)
	}
	for i, card := range p.CreditCards {
		dto.CreditCards[i] = toCreditCardDTO(card)
	}
	for i, item := range p.RecurringExpenses {
		dto.RecurringExpenses[i] = toRecurringExpenseDTO(item)
	}
	for i, item := range p.OneTimeExpenses {
		dto.OneTimeExpenses[i] = toOneTimeExpenseDTO(item)
	}
	return dto
}

func toIncomeDTO(item cashflow.Income) IncomeDTO {
	return IncomeDTO{
		ID:          item.ID,
		Name:        item.Name,
		Amount:      amt(item.Amount),
		Frequency:   string(item.Frequency),
		NextPayDate: item.NextPayDate,
		IsActive:    boolPtr(item.IsActive()),
	}
}

func toCreditCardDTO(card cashflow.CreditCard) CreditCardDTO {
	return CreditCardDTO{
		ID:       card.ID,
		Name:     card.Name,
		Balance:  amt(card.Balance),
		DueDate:  card.DueDate,
		PayDate:  card.PayDate,
		IsActive: boolPtr(card.IsActive()),
	}
}

func toRecurringExpenseDTO(item cashflow.RecurringExpense) RecurringExpenseDTO {
	return RecurringExpenseDTO{
		ID:          item.ID,
		Name:        item.Name,
		Amount:      amt(item.Amount),
		Category:    item.Category,
		Frequency:   string(item.Frequency),
		NextDueDate: item.NextDueDate,
		IsActive:    boolPtr(item.IsActive()),
	}
}

func toOneTimeExpenseDTO(item cashflow.OneTimeExpense) OneTimeExpenseDTO {
	return OneTimeExpenseDTO{
		ID:       item.ID,
		Name:     item.Name,
		Amount:   amt(item.Amount),
		Category: item.Category,
		Date:     item.Date,
		IsActive: boolPtr(item.IsActive()),
	}
}

func toLedgerDTO(ledger []cashflow.LedgerDay) []LedgerDayDTO {
	dtos := make([]LedgerDayDTO, len(ledger))
	for i, day := range ledger {
		dtos[i] = LedgerDayDTO{
			Date:           day.Date.String(),
			Income:         amt(day.Income),
			Expenses:       amt(day.Expenses),
			NetChange:      amt(day.NetChange),
			RunningBalance: amt(day.RunningBalance),
		}
	}
	return dtos
}

func toBreakdownDTO(b cashflow.Breakdown) BreakdownDTO {
	return BreakdownDTO{
		IncomeBySource:     amtMap(b.IncomeBySource),
		ExpensesByCategory: amtMap(b.ExpensesByCategory),
		CreditCardExpenses: amtMap(b.CreditCardExpenses),
		OneTimeByName:      amtMap(b.OneTimeByName),
		TotalIncome:        amt(b.TotalIncome),
		TotalExpenses:      amt(b.TotalExpenses),
	}
}

func amtMap(in map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = amt(v)
	}
	return out
}

// activePtr converts an explicit flag to the domain's nil-means-active
// pointer form.
func activePtr(isActive bool) *bool {
	if isActive {
		return nil
	}
	b := false
	return &b
}

// activeFromRequest maps the request's optional flag to the domain form.
// An omitted flag means active; only an explicit false pauses the item.
func activeFromRequest(flag *bool) *bool {
	if flag == nil {
		return nil
	}
	return activePtr(*flag)
}

func boolPtr(b bool) *bool { return &b }
