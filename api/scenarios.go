/*
scenarios.go - Demo plan loaders for testing and demonstrations

PURPOSE:
  Provides pre-built plans that populate a plan ID with realistic data for
  demos and manual testing of the projection and insights pages.

AVAILABLE SCENARIOS:
  steady-paycheck:  Bi-weekly salary, rent, groceries, one credit card
  freelancer:       15th-and-last retainer, irregular one-time costs
  tight-month:      Low balance, expenses stacked ahead of the paycheck

HOW SCENARIOS WORK:
  Anchor dates are generated relative to "today" so the demo data always
  falls inside the projection window, no matter when it is loaded.

USAGE VIA API:
  POST /api/scenarios/load
  {"scenario_id": "steady-paycheck", "plan_id": "demo"}

SEE ALSO:
  - handlers.go: Shared helpers
  - server.go: Route wiring
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/warp/cashflow-engine/cashflow"
)

var scenarios = []ScenarioDTO{
	{
		ID:          "steady-paycheck",
		Name:        "Steady Paycheck",
		Description: "Bi-weekly salary with rent, groceries, and one credit card",
	},
	{
		ID:          "freelancer",
		Name:        "Freelancer",
		Description: "Retainer paid on the 15th and last business day, lumpy expenses",
	},
	{
		ID:          "tight-month",
		Name:        "Tight Month",
		Description: "Low starting balance with expenses due before the next paycheck",
	},
}

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario populates a plan ID with a demo plan, replacing whatever
// was stored there.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.PlanID == "" {
		req.PlanID = "demo"
	}

	today := h.Today()
	var plan cashflow.Plan
	switch req.ScenarioID {
	case "steady-paycheck":
		plan = steadyPaycheckPlan(today)
	case "freelancer":
		plan = freelancerPlan(today)
	case "tight-month":
		plan = tightMonthPlan(today)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}

	if err := h.Store.SavePlan(r.Context(), req.PlanID, plan); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanDTO(req.PlanID, plan))
}

// =============================================================================
// SCENARIO BUILDERS
// =============================================================================

func steadyPaycheckPlan(today cashflow.Date) cashflow.Plan {
	return cashflow.Plan{
		StartingBalance: decimal.NewFromInt(2500),
		ProjectionDays:  60,
		Incomes: []cashflow.Income{
			{ID: "inc-salary", Name: "Salary", Amount: decimal.NewFromInt(2100),
				Frequency: cashflow.BiWeekly, NextPayDate: today.AddDays(3).String()},
		},
		CreditCards: []cashflow.CreditCard{
			{ID: "cc-visa", Name: "Visa", Balance: decimal.NewFromInt(850),
				DueDate: today.AddDays(12).String()},
		},
		RecurringExpenses: []cashflow.RecurringExpense{
			{ID: "exp-rent", Name: "Rent", Amount: decimal.NewFromInt(1400), Category: "Housing",
				Frequency: cashflow.Monthly, NextDueDate: today.AddDays(5).String()},
			{ID: "exp-groceries", Name: "Groceries", Amount: decimal.NewFromInt(120), Category: "Food",
				Frequency: cashflow.Weekly, NextDueDate: today.AddDays(1).String()},
			{ID: "exp-gym", Name: "Gym", Amount: decimal.NewFromInt(45), Category: "Health",
				Frequency: cashflow.Monthly, NextDueDate: today.AddDays(9).String()},
		},
		OneTimeExpenses: []cashflow.OneTimeExpense{
			{ID: "ote-tires", Name: "New tires", Amount: decimal.NewFromInt(400), Category: "Auto",
				Date: today.AddDays(20).String()},
		},
	}
}

func freelancerPlan(today cashflow.Date) cashflow.Plan {
	return cashflow.Plan{
		StartingBalance: decimal.NewFromInt(5200),
		ProjectionDays:  90,
		Incomes: []cashflow.Income{
			{ID: "inc-retainer", Name: "Retainer", Amount: decimal.NewFromInt(1800),
				Frequency: cashflow.FifteenthAndLast, NextPayDate: today.String()},
			{ID: "inc-contract", Name: "Contract payout", Amount: decimal.NewFromInt(3000),
				Frequency: cashflow.OneTime, NextPayDate: today.AddDays(25).String()},
		},
		RecurringExpenses: []cashflow.RecurringExpense{
			{ID: "exp-studio", Name: "Studio", Amount: decimal.NewFromInt(900), Category: "Workspace",
				Frequency: cashflow.Monthly, NextDueDate: today.AddDays(7).String()},
			{ID: "exp-saas", Name: "Software subscriptions", Amount: decimal.NewFromInt(85), Category: "Tools",
				Frequency: cashflow.Monthly, NextDueDate: today.AddDays(2).String()},
		},
		OneTimeExpenses: []cashflow.OneTimeExpense{
			{ID: "ote-tax", Name: "Quarterly estimated tax", Amount: decimal.NewFromInt(2400), Category: "Taxes",
				Date: today.AddDays(40).String()},
			{ID: "ote-laptop", Name: "Laptop", Amount: decimal.NewFromInt(1600), Category: "Equipment",
				Date: today.AddDays(60).String()},
		},
	}
}

func tightMonthPlan(today cashflow.Date) cashflow.Plan {
	inactive := false
	return cashflow.Plan{
		StartingBalance: decimal.NewFromInt(180),
		ProjectionDays:  30,
		Incomes: []cashflow.Income{
			{ID: "inc-wages", Name: "Wages", Amount: decimal.NewFromInt(950),
				Frequency: cashflow.BiWeekly, NextPayDate: today.AddDays(9).String()},
		},
		CreditCards: []cashflow.CreditCard{
			{ID: "cc-store", Name: "Store card", Balance: decimal.NewFromInt(320),
				DueDate: today.AddDays(6).String(), PayDate: today.AddDays(11).String()},
		},
		RecurringExpenses: []cashflow.RecurringExpense{
			{ID: "exp-rent", Name: "Rent", Amount: decimal.NewFromInt(700), Category: "Housing",
				Frequency: cashflow.Monthly, NextDueDate: today.AddDays(4).String()},
			{ID: "exp-phone", Name: "Phone", Amount: decimal.NewFromInt(60), Category: "Utilities",
				Frequency: cashflow.Monthly, NextDueDate: today.AddDays(15).String()},
			// Paused subscription: shows up in the plan but not the math.
			{ID: "exp-stream", Name: "Streaming", Amount: decimal.NewFromInt(18), Category: "Entertainment",
				Frequency: cashflow.Monthly, NextDueDate: today.AddDays(8).String(), Active: &inactive},
		},
	}
}
