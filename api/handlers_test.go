package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/cashflow-engine/api"
	"github.com/warp/cashflow-engine/cashflow"
	"github.com/warp/cashflow-engine/cashflow/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// testToday pins the projection clock so ledger dates are stable.
var testToday = cashflow.NewDate(2024, time.March, 1)

func newTestAPI(t *testing.T) (http.Handler, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	h := api.NewHandler(mem)
	h.Today = func() cashflow.Date { return testToday }
	return api.NewRouter(h), mem
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// =============================================================================
// PLAN LIFECYCLE
// =============================================================================

func TestGetPlan_UnknownIDReturnsEmptyDefault(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "GET", "/api/plans/fresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	assert.Equal(t, "fresh", plan.ID)
	assert.Equal(t, cashflow.DefaultProjectionDays, plan.ProjectionDays)
	assert.Empty(t, plan.Incomes)
	assert.Empty(t, plan.CreditCards)
}

func TestUpdateSettings_ClampsHorizon(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "PUT", "/api/plans/p1/settings",
		`{"starting_balance": 2500.50, "projection_days": 365}`)
	require.Equal(t, http.StatusOK, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	assert.Equal(t, 2500.50, plan.StartingBalance)
	assert.Equal(t, cashflow.MaxProjectionDays, plan.ProjectionDays)
}

func TestUpdateSettings_OmittedFieldsKeepStoredValues(t *testing.T) {
	router, mem := newTestAPI(t)

	p := cashflow.NewPlan()
	p.StartingBalance = decimal.NewFromInt(1200)
	p.ProjectionDays = 30
	mem.SavePlan(context.Background(), "p1", p)

	// Only the horizon: the balance must survive.
	rec := doJSON(t, router, "PUT", "/api/plans/p1/settings", `{"projection_days": 45}`)
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decodeBody[api.PlanDTO](t, rec)
	assert.Equal(t, 1200.0, plan.StartingBalance)
	assert.Equal(t, 45, plan.ProjectionDays)

	// Only the balance: the horizon must survive.
	rec = doJSON(t, router, "PUT", "/api/plans/p1/settings", `{"starting_balance": 800}`)
	require.Equal(t, http.StatusOK, rec.Code)
	plan = decodeBody[api.PlanDTO](t, rec)
	assert.Equal(t, 800.0, plan.StartingBalance)
	assert.Equal(t, 45, plan.ProjectionDays)

	// An explicit zero balance is a real update, not an omission.
	rec = doJSON(t, router, "PUT", "/api/plans/p1/settings", `{"starting_balance": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	plan = decodeBody[api.PlanDTO](t, rec)
	assert.Equal(t, 0.0, plan.StartingBalance)
}

func TestDeletePlan(t *testing.T) {
	router, mem := newTestAPI(t)
	mem.SavePlan(context.Background(), "p1", cashflow.NewPlan())

	rec := doJSON(t, router, "DELETE", "/api/plans/p1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	p, _ := mem.GetPlan(context.Background(), "p1")
	assert.Nil(t, p)
}

func TestListPlans(t *testing.T) {
	router, mem := newTestAPI(t)
	mem.SavePlan(context.Background(), "b", cashflow.NewPlan())
	mem.SavePlan(context.Background(), "a", cashflow.NewPlan())

	rec := doJSON(t, router, "GET", "/api/plans", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string][]string](t, rec)
	assert.Equal(t, []string{"a", "b"}, body["plans"])
}

// =============================================================================
// ITEM CRUD
// =============================================================================

func TestCreateIncome(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/plans/p1/incomes",
		`{"name": "Paycheck", "amount": 2000, "frequency": "bi-weekly", "next_pay_date": "2024-03-04"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	require.Len(t, plan.Incomes, 1)
	assert.Equal(t, "Paycheck", plan.Incomes[0].Name)
	assert.True(t, strings.HasPrefix(plan.Incomes[0].ID, "inc-"), "got ID %q", plan.Incomes[0].ID)
	require.NotNil(t, plan.Incomes[0].IsActive)
	assert.True(t, *plan.Incomes[0].IsActive, "omitted is_active must default to active")
}

func TestCreateIncome_OmittedActiveCountsInProjection(t *testing.T) {
	// A created item with no is_active flag must contribute to the ledger.
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/plans/p1/incomes",
		`{"name": "Paycheck", "amount": 500, "frequency": "weekly", "next_pay_date": "`+testToday.String()+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "GET", "/api/plans/p1/projection?days=15", "")
	require.Equal(t, http.StatusOK, rec.Code)

	proj := decodeBody[api.ProjectionDTO](t, rec)
	assert.Equal(t, 500.0, proj.Ledger[0].Income)
	assert.Equal(t, 1500.0, proj.FinalBalance, "three weekly paychecks over 15 days")
}

func TestCreateIncome_ExplicitFalseStaysPaused(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/plans/p1/incomes",
		`{"name": "Paycheck", "amount": 500, "frequency": "weekly", "next_pay_date": "`+testToday.String()+`", "is_active": false}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	require.NotNil(t, plan.Incomes[0].IsActive)
	assert.False(t, *plan.Incomes[0].IsActive)

	rec = doJSON(t, router, "GET", "/api/plans/p1/projection?days=15", "")
	proj := decodeBody[api.ProjectionDTO](t, rec)
	assert.Equal(t, 0.0, proj.FinalBalance, "paused income contributes nothing")
}

func TestCreateItems_OmittedActiveDefaultsToActive(t *testing.T) {
	// The default-active contract holds for every item kind.
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/plans/p1/credit-cards",
		`{"name": "Visa", "balance": 300, "due_date": "2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	plan := decodeBody[api.PlanDTO](t, rec)
	require.NotNil(t, plan.CreditCards[0].IsActive)
	assert.True(t, *plan.CreditCards[0].IsActive)

	rec = doJSON(t, router, "POST", "/api/plans/p1/recurring-expenses",
		`{"name": "Rent", "amount": 1500, "category": "Housing", "frequency": "monthly", "next_due_date": "2024-03-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	plan = decodeBody[api.PlanDTO](t, rec)
	require.NotNil(t, plan.RecurringExpenses[0].IsActive)
	assert.True(t, *plan.RecurringExpenses[0].IsActive)

	rec = doJSON(t, router, "POST", "/api/plans/p1/one-time-expenses",
		`{"name": "Car repair", "amount": 400, "date": "2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	plan = decodeBody[api.PlanDTO](t, rec)
	require.NotNil(t, plan.OneTimeExpenses[0].IsActive)
	assert.True(t, *plan.OneTimeExpenses[0].IsActive)
}

func TestUpdateIncome_OmittedActiveDefaultsToActive(t *testing.T) {
	// Updating a paused item without the flag reactivates it; pausing is
	// always an explicit act.
	router, mem := newTestAPI(t)

	paused := false
	p := cashflow.NewPlan()
	p.Incomes = []cashflow.Income{{ID: "inc-1", Name: "Paycheck", Amount: decimal.NewFromInt(100),
		Frequency: cashflow.Weekly, NextPayDate: "2024-03-04", Active: &paused}}
	mem.SavePlan(context.Background(), "p1", p)

	rec := doJSON(t, router, "PUT", "/api/plans/p1/incomes/inc-1",
		`{"name": "Paycheck", "amount": 150, "frequency": "weekly", "next_pay_date": "2024-03-04"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	require.NotNil(t, plan.Incomes[0].IsActive)
	assert.True(t, *plan.Incomes[0].IsActive)
}

func TestCreateIncome_RejectsNumericName(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/plans/p1/incomes",
		`{"name": "1234", "amount": 100, "frequency": "weekly", "next_pay_date": "2024-03-04"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateIncome_RejectsUnknownFrequency(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/plans/p1/incomes",
		`{"name": "Paycheck", "amount": 100, "frequency": "hourly", "next_pay_date": "2024-03-04"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateIncome_UnknownItemIs404(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "PUT", "/api/plans/p1/incomes/ghost",
		`{"name": "Paycheck", "amount": 100, "frequency": "weekly", "next_pay_date": "2024-03-04"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleIncome_FlipsActive(t *testing.T) {
	router, mem := newTestAPI(t)

	p := cashflow.NewPlan()
	p.Incomes = []cashflow.Income{{ID: "inc-1", Name: "Paycheck", Amount: decimal.NewFromInt(100), Frequency: cashflow.Weekly, NextPayDate: "2024-03-04"}}
	mem.SavePlan(context.Background(), "p1", p)

	rec := doJSON(t, router, "POST", "/api/plans/p1/incomes/inc-1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decodeBody[api.PlanDTO](t, rec)
	require.NotNil(t, plan.Incomes[0].IsActive)
	assert.False(t, *plan.Incomes[0].IsActive)

	rec = doJSON(t, router, "POST", "/api/plans/p1/incomes/inc-1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	plan = decodeBody[api.PlanDTO](t, rec)
	require.NotNil(t, plan.Incomes[0].IsActive)
	assert.True(t, *plan.Incomes[0].IsActive)
}

func TestDeleteIncome(t *testing.T) {
	router, mem := newTestAPI(t)

	p := cashflow.NewPlan()
	p.Incomes = []cashflow.Income{
		{ID: "inc-1", Name: "Keep", Amount: decimal.NewFromInt(100), Frequency: cashflow.Weekly, NextPayDate: "2024-03-04"},
		{ID: "inc-2", Name: "Drop", Amount: decimal.NewFromInt(100), Frequency: cashflow.Weekly, NextPayDate: "2024-03-04"},
	}
	mem.SavePlan(context.Background(), "p1", p)

	rec := doJSON(t, router, "DELETE", "/api/plans/p1/incomes/inc-2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	require.Len(t, plan.Incomes, 1)
	assert.Equal(t, "Keep", plan.Incomes[0].Name)
}

func TestCreateRecurringExpense_RejectsPaySchedules(t *testing.T) {
	router, _ := newTestAPI(t)

	for _, freq := range []string{"15th-and-last", "one-time"} {
		rec := doJSON(t, router, "POST", "/api/plans/p1/recurring-expenses",
			`{"name": "Rent", "amount": 1500, "category": "Housing", "frequency": "`+freq+`", "next_due_date": "2024-03-01"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "frequency %s must be rejected", freq)
	}
}

func TestCreateOneTimeExpense_DefaultsCategory(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/plans/p1/one-time-expenses",
		`{"name": "Car repair", "amount": 400, "date": "2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	require.Len(t, plan.OneTimeExpenses, 1)
	assert.Equal(t, "Other", plan.OneTimeExpenses[0].Category)
}

// =============================================================================
// PROJECTION & INSIGHTS
// =============================================================================

func seedProjectionPlan(t *testing.T, mem *store.Memory) {
	t.Helper()
	p := cashflow.NewPlan()
	p.StartingBalance = decimal.NewFromInt(1000)
	p.ProjectionDays = 30
	p.Incomes = []cashflow.Income{
		{ID: "inc-1", Name: "Paycheck", Amount: decimal.NewFromInt(500), Frequency: cashflow.Weekly, NextPayDate: testToday.String()},
	}
	p.RecurringExpenses = []cashflow.RecurringExpense{
		{ID: "exp-1", Name: "Groceries", Amount: decimal.NewFromInt(200), Category: "Food", Frequency: cashflow.Weekly, NextDueDate: testToday.String()},
	}
	require.NoError(t, mem.SavePlan(context.Background(), "p1", p))
}

func TestGetProjection(t *testing.T) {
	router, mem := newTestAPI(t)
	seedProjectionPlan(t, mem)

	rec := doJSON(t, router, "GET", "/api/plans/p1/projection?days=15", "")
	require.Equal(t, http.StatusOK, rec.Code)

	proj := decodeBody[api.ProjectionDTO](t, rec)
	assert.Equal(t, "p1", proj.PlanID)
	assert.Equal(t, 15, proj.Days)
	require.Len(t, proj.Ledger, 15)

	assert.Equal(t, testToday.String(), proj.Ledger[0].Date)
	assert.Equal(t, 500.0, proj.Ledger[0].Income)
	assert.Equal(t, 200.0, proj.Ledger[0].Expenses)
	assert.Equal(t, 1300.0, proj.Ledger[0].RunningBalance)

	// Three weekly hits over 15 days: +300 each.
	assert.Equal(t, 1900.0, proj.FinalBalance)
	assert.Equal(t, testToday.AddDays(14).String(), proj.FinalDate)
}

func TestGetProjection_TransactionsOnly(t *testing.T) {
	router, mem := newTestAPI(t)
	seedProjectionPlan(t, mem)

	rec := doJSON(t, router, "GET", "/api/plans/p1/projection?days=15&transactions_only=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	proj := decodeBody[api.ProjectionDTO](t, rec)
	assert.Equal(t, 15, proj.Days)
	require.Len(t, proj.Ledger, 3, "only the three paycheck days have activity")
}

func TestGetProjection_BadDaysParamFallsBack(t *testing.T) {
	router, mem := newTestAPI(t)
	seedProjectionPlan(t, mem)

	rec := doJSON(t, router, "GET", "/api/plans/p1/projection?days=soon", "")
	require.Equal(t, http.StatusOK, rec.Code)

	proj := decodeBody[api.ProjectionDTO](t, rec)
	assert.Equal(t, 30, proj.Days, "falls back to the plan's stored horizon")
}

func TestExportProjection_CSVDownload(t *testing.T) {
	router, mem := newTestAPI(t)
	seedProjectionPlan(t, mem)

	rec := doJSON(t, router, "GET", "/api/plans/p1/projection/export?days=15", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cashflow-projection-2024-03-01.csv")

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 16, "header plus one row per day")
	assert.Equal(t, "Date,Income,Expenses,Net Change,Running Balance", lines[0])
}

func TestGetMetrics(t *testing.T) {
	router, mem := newTestAPI(t)
	seedProjectionPlan(t, mem)

	rec := doJSON(t, router, "GET", "/api/plans/p1/metrics?days=30", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Weekly over 30 days estimates 4 occurrences for both sides.
	m := decodeBody[api.MetricsDTO](t, rec)
	assert.Equal(t, 2000.0, m.TotalIncome)
	assert.Equal(t, 800.0, m.TotalExpenses)
	assert.Equal(t, 1200.0, m.NetCashFlow)
	assert.Equal(t, 60.0, m.SavingsRate)
}

func TestGetBreakdown(t *testing.T) {
	router, mem := newTestAPI(t)
	seedProjectionPlan(t, mem)

	rec := doJSON(t, router, "GET", "/api/plans/p1/breakdown?days=30", "")
	require.Equal(t, http.StatusOK, rec.Code)

	b := decodeBody[api.BreakdownDTO](t, rec)
	assert.Equal(t, 2000.0, b.IncomeBySource["Paycheck"])
	assert.Equal(t, 800.0, b.ExpensesByCategory["Food"])
}

// =============================================================================
// CSV INTERCHANGE
// =============================================================================

func TestExportThenImportPlan(t *testing.T) {
	router, mem := newTestAPI(t)
	seedProjectionPlan(t, mem)

	rec := doJSON(t, router, "GET", "/api/plans/p1/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	csvBody := rec.Body.String()
	assert.Contains(t, csvBody, "[INCOME_SOURCES]")

	rec = doJSON(t, router, "POST", "/api/plans/copy/import", csvBody)
	require.Equal(t, http.StatusOK, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	assert.Equal(t, "copy", plan.ID)
	assert.Equal(t, 1000.0, plan.StartingBalance)
	require.Len(t, plan.Incomes, 1)
	assert.Equal(t, "Paycheck", plan.Incomes[0].Name)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestListScenarios(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "GET", "/api/scenarios", "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := decodeBody[[]api.ScenarioDTO](t, rec)
	require.Len(t, list, 3)
}

func TestLoadScenario(t *testing.T) {
	router, mem := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/scenarios/load",
		`{"scenario_id": "steady-paycheck"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	plan := decodeBody[api.PlanDTO](t, rec)
	assert.Equal(t, "demo", plan.ID, "plan_id defaults to demo")
	assert.NotEmpty(t, plan.Incomes)

	stored, err := mem.GetPlan(context.Background(), "demo")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestLoadScenario_Unknown404(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/scenarios/load",
		`{"scenario_id": "imaginary", "plan_id": "demo"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
