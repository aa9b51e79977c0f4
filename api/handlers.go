/*
handlers.go - HTTP API handlers for the cashflow engine

PURPOSE:
  Exposes the budgeting engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Plans:
    GET    /api/plans                       List plan IDs
    GET    /api/plans/{planID}              Full plan
    DELETE /api/plans/{planID}              Delete plan
    PUT    /api/plans/{planID}/settings     Starting balance + horizon

  Items (same verbs for credit-cards, recurring-expenses, one-time-expenses):
    POST   /api/plans/{planID}/incomes              Create
    PUT    /api/plans/{planID}/incomes/{itemID}     Update
    DELETE /api/plans/{planID}/incomes/{itemID}     Remove
    POST   /api/plans/{planID}/incomes/{itemID}/toggle  Pause/resume

  Projection and insights:
    GET    /api/plans/{planID}/projection           Ledger JSON
    GET    /api/plans/{planID}/projection/export    Ledger CSV
    GET    /api/plans/{planID}/breakdown            Flow breakdown
    GET    /api/plans/{planID}/metrics              Dashboard metrics

  Interchange:
    GET    /api/plans/{planID}/export       Sectioned inputs CSV
    POST   /api/plans/{planID}/import       Replace plan from CSV body

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Load plan, call engine, save plan
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown plan or item
  - 500: Storage failures

  The engine itself never errors: malformed item data projects as zero
  contribution, so a plan with half-filled rows still renders.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scenarios.go: Demo plan loaders
*/
package api

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/cashflow-engine/cashflow"
	"github.com/warp/cashflow-engine/export"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store cashflow.Store

	// Today is injected so tests can pin the projection start day.
	Today func() cashflow.Date
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store cashflow.Store) *Handler {
	return &Handler{
		Store: store,
		Today: cashflow.Today,
	}
}

// loadPlan fetches a plan, falling back to an empty default for unknown
// IDs. A new user's plan exists the moment they ask for it.
func (h *Handler) loadPlan(r *http.Request) (string, cashflow.Plan, error) {
	id := chi.URLParam(r, "planID")
	p, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		return id, cashflow.Plan{}, err
	}
	if p == nil {
		return id, cashflow.NewPlan(), nil
	}
	return id, *p, nil
}

// mutatePlan runs a load-modify-save cycle and writes the updated plan.
// The mutation returns the HTTP status for the success response.
func (h *Handler) mutatePlan(w http.ResponseWriter, r *http.Request, mutate func(p *cashflow.Plan) (int, error)) {
	id, plan, err := h.loadPlan(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}

	status, err := mutate(&plan)
	if err != nil {
		writeError(w, status, err.Error(), nil)
		return
	}

	if err := h.Store.SavePlan(r.Context(), id, plan); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, status, toPlanDTO(id, plan))
}

// =============================================================================
// PLAN HANDLERS
// =============================================================================

// ListPlans returns all stored plan IDs.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Store.ListPlans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": ids})
}

// GetPlan returns the full plan, defaulting to an empty one.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, plan, err := h.loadPlan(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanDTO(id, plan))
}

// DeletePlan removes a plan entirely.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "planID")
	if err := h.Store.DeletePlan(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSettings sets the starting balance and projection horizon.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		if req.StartingBalance != nil {
			p.StartingBalance = decimal.NewFromFloat(*req.StartingBalance)
		}
		if req.ProjectionDays != 0 {
			p.ProjectionDays = cashflow.ClampDays(req.ProjectionDays)
		}
		return http.StatusOK, nil
	})
}

// =============================================================================
// INCOME HANDLERS
// =============================================================================

// CreateIncome adds an income source to the plan.
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req IncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	item, err := incomeFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if item.ID == "" {
		item.ID = newItemID("inc")
	}

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		p.Incomes = append(p.Incomes, item)
		return http.StatusCreated, nil
	})
}

// UpdateIncome replaces an income source in place.
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	var req IncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	item, err := incomeFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item.ID = chi.URLParam(r, "itemID")

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.Incomes {
			if p.Incomes[i].ID == item.ID {
				p.Incomes[i] = item
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("income %s not found", item.ID)
	})
}

// DeleteIncome removes an income source.
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.Incomes {
			if p.Incomes[i].ID == itemID {
				p.Incomes = append(p.Incomes[:i], p.Incomes[i+1:]...)
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("income %s not found", itemID)
	})
}

// ToggleIncome pauses or resumes an income source.
func (h *Handler) ToggleIncome(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.Incomes {
			if p.Incomes[i].ID == itemID {
				p.Incomes[i].Active = activePtr(!p.Incomes[i].IsActive())
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("income %s not found", itemID)
	})
}

func incomeFromDTO(req IncomeDTO) (cashflow.Income, error) {
	if !cashflow.ValidName(req.Name) {
		return cashflow.Income{}, fmt.Errorf("name must not be purely numeric")
	}
	freq, ok := cashflow.ParseFrequency(req.Frequency)
	if !ok {
		return cashflow.Income{}, fmt.Errorf("unknown frequency %q", req.Frequency)
	}
	return cashflow.Income{
		ID:          req.ID,
		Name:        req.Name,
		Amount:      decimal.NewFromFloat(req.Amount),
		Frequency:   freq,
		NextPayDate: req.NextPayDate,
		Active:      activeFromRequest(req.IsActive),
	}, nil
}

// =============================================================================
// CREDIT CARD HANDLERS
// =============================================================================

// CreateCreditCard adds a credit-card obligation.
func (h *Handler) CreateCreditCard(w http.ResponseWriter, r *http.Request) {
	var req CreditCardDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	card, err := creditCardFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if card.ID == "" {
		card.ID = newItemID("cc")
	}

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		p.CreditCards = append(p.CreditCards, card)
		return http.StatusCreated, nil
	})
}

// UpdateCreditCard replaces a credit card in place.
func (h *Handler) UpdateCreditCard(w http.ResponseWriter, r *http.Request) {
	var req CreditCardDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	card, err := creditCardFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	card.ID = chi.URLParam(r, "itemID")

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.CreditCards {
			if p.CreditCards[i].ID == card.ID {
				p.CreditCards[i] = card
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("credit card %s not found", card.ID)
	})
}

// DeleteCreditCard removes a credit card.
func (h *Handler) DeleteCreditCard(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.CreditCards {
			if p.CreditCards[i].ID == itemID {
				p.CreditCards = append(p.CreditCards[:i], p.CreditCards[i+1:]...)
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("credit card %s not found", itemID)
	})
}

// ToggleCreditCard pauses or resumes a credit card.
func (h *Handler) ToggleCreditCard(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.CreditCards {
			if p.CreditCards[i].ID == itemID {
				p.CreditCards[i].Active = activePtr(!p.CreditCards[i].IsActive())
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("credit card %s not found", itemID)
	})
}

func creditCardFromDTO(req CreditCardDTO) (cashflow.CreditCard, error) {
	if !cashflow.ValidName(req.Name) {
		return cashflow.CreditCard{}, fmt.Errorf("name must not be purely numeric")
	}
	return cashflow.CreditCard{
		ID:      req.ID,
		Name:    req.Name,
		Balance: decimal.NewFromFloat(req.Balance),
		DueDate: req.DueDate,
		PayDate: req.PayDate,
		Active:  activeFromRequest(req.IsActive),
	}, nil
}

// =============================================================================
// RECURRING EXPENSE HANDLERS
// =============================================================================

// CreateRecurringExpense adds a scheduled expense.
func (h *Handler) CreateRecurringExpense(w http.ResponseWriter, r *http.Request) {
	var req RecurringExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	item, err := recurringExpenseFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if item.ID == "" {
		item.ID = newItemID("exp")
	}

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		p.RecurringExpenses = append(p.RecurringExpenses, item)
		return http.StatusCreated, nil
	})
}

// UpdateRecurringExpense replaces a scheduled expense in place.
func (h *Handler) UpdateRecurringExpense(w http.ResponseWriter, r *http.Request) {
	var req RecurringExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	item, err := recurringExpenseFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item.ID = chi.URLParam(r, "itemID")

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.RecurringExpenses {
			if p.RecurringExpenses[i].ID == item.ID {
				p.RecurringExpenses[i] = item
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("recurring expense %s not found", item.ID)
	})
}

// DeleteRecurringExpense removes a scheduled expense.
func (h *Handler) DeleteRecurringExpense(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.RecurringExpenses {
			if p.RecurringExpenses[i].ID == itemID {
				p.RecurringExpenses = append(p.RecurringExpenses[:i], p.RecurringExpenses[i+1:]...)
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("recurring expense %s not found", itemID)
	})
}

// ToggleRecurringExpense pauses or resumes a scheduled expense.
func (h *Handler) ToggleRecurringExpense(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.RecurringExpenses {
			if p.RecurringExpenses[i].ID == itemID {
				p.RecurringExpenses[i].Active = activePtr(!p.RecurringExpenses[i].IsActive())
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("recurring expense %s not found", itemID)
	})
}

func recurringExpenseFromDTO(req RecurringExpenseDTO) (cashflow.RecurringExpense, error) {
	if !cashflow.ValidName(req.Name) {
		return cashflow.RecurringExpense{}, fmt.Errorf("name must not be purely numeric")
	}
	freq, ok := cashflow.ParseFrequency(req.Frequency)
	if !ok {
		return cashflow.RecurringExpense{}, fmt.Errorf("unknown frequency %q", req.Frequency)
	}
	// Fifteenth-and-last is an income pay schedule, not an expense one.
	if freq == cashflow.FifteenthAndLast || freq == cashflow.OneTime {
		return cashflow.RecurringExpense{}, fmt.Errorf("frequency %q not supported for recurring expenses", req.Frequency)
	}
	return cashflow.RecurringExpense{
		ID:          req.ID,
		Name:        req.Name,
		Amount:      decimal.NewFromFloat(req.Amount),
		Category:    categoryOrOther(req.Category),
		Frequency:   freq,
		NextDueDate: req.NextDueDate,
		Active:      activeFromRequest(req.IsActive),
	}, nil
}

// =============================================================================
// ONE-TIME EXPENSE HANDLERS
// =============================================================================

// CreateOneTimeExpense adds a single-date expense.
func (h *Handler) CreateOneTimeExpense(w http.ResponseWriter, r *http.Request) {
	var req OneTimeExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	item, err := oneTimeExpenseFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if item.ID == "" {
		item.ID = newItemID("ote")
	}

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		p.OneTimeExpenses = append(p.OneTimeExpenses, item)
		return http.StatusCreated, nil
	})
}

// UpdateOneTimeExpense replaces a single-date expense in place.
func (h *Handler) UpdateOneTimeExpense(w http.ResponseWriter, r *http.Request) {
	var req OneTimeExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	item, err := oneTimeExpenseFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item.ID = chi.URLParam(r, "itemID")

	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.OneTimeExpenses {
			if p.OneTimeExpenses[i].ID == item.ID {
				p.OneTimeExpenses[i] = item
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("one-time expense %s not found", item.ID)
	})
}

// DeleteOneTimeExpense removes a single-date expense.
func (h *Handler) DeleteOneTimeExpense(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.OneTimeExpenses {
			if p.OneTimeExpenses[i].ID == itemID {
				p.OneTimeExpenses = append(p.OneTimeExpenses[:i], p.OneTimeExpenses[i+1:]...)
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("one-time expense %s not found", itemID)
	})
}

// ToggleOneTimeExpense pauses or resumes a single-date expense.
func (h *Handler) ToggleOneTimeExpense(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutatePlan(w, r, func(p *cashflow.Plan) (int, error) {
		for i := range p.OneTimeExpenses {
			if p.OneTimeExpenses[i].ID == itemID {
				p.OneTimeExpenses[i].Active = activePtr(!p.OneTimeExpenses[i].IsActive())
				return http.StatusOK, nil
			}
		}
		return http.StatusNotFound, fmt.Errorf("one-time expense %s not found", itemID)
	})
}

func oneTimeExpenseFromDTO(req OneTimeExpenseDTO) (cashflow.OneTimeExpense, error) {
	if !cashflow.ValidName(req.Name) {
		return cashflow.OneTimeExpense{}, fmt.Errorf("name must not be purely numeric")
	}
	return cashflow.OneTimeExpense{
		ID:       req.ID,
		Name:     req.Name,
		Amount:   decimal.NewFromFloat(req.Amount),
		Category: categoryOrOther(req.Category),
		Date:     req.Date,
		Active:   activeFromRequest(req.IsActive),
	}, nil
}

// =============================================================================
// PROJECTION & INSIGHTS
// =============================================================================

// GetProjection returns the day-by-day ledger for the plan.
// Query params: days (15-90, default plan setting), transactions_only.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	id, plan, err := h.loadPlan(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}

	days := h.horizonFor(plan, r)
	today := h.Today()

	ledger := cashflow.Project(cashflow.ProjectionInput{
		StartingBalance:   plan.StartingBalance,
		Incomes:           plan.Incomes,
		CreditCards:       plan.CreditCards,
		RecurringExpenses: plan.RecurringExpenses,
		OneTimeExpenses:   plan.OneTimeExpenses,
		Days:              days,
		Today:             today,
	})

	finalBalance, finalDate := cashflow.FinalBalance(ledger, plan.StartingBalance, today)

	view := ledger
	if r.URL.Query().Get("transactions_only") == "1" || r.URL.Query().Get("transactions_only") == "true" {
		view = cashflow.TransactionDays(ledger)
	}

	writeJSON(w, http.StatusOK, ProjectionDTO{
		PlanID:          id,
		Days:            days,
		StartingBalance: amt(plan.StartingBalance),
		FinalBalance:    amt(finalBalance),
		FinalDate:       finalDate.String(),
		Ledger:          toLedgerDTO(view),
	})
}

// ExportProjection streams the ledger as a CSV download.
func (h *Handler) ExportProjection(w http.ResponseWriter, r *http.Request) {
	_, plan, err := h.loadPlan(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}

	today := h.Today()
	plan.ProjectionDays = h.horizonFor(plan, r)
	ledger := cashflow.ProjectPlan(plan, today)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="cashflow-projection-%s.csv"`, today.String()))
	if err := export.WriteProjection(w, ledger); err != nil {
		// Headers are gone at this point; log-and-give-up is all we can do.
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetBreakdown returns the flow breakdown for the insights page.
func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	_, plan, err := h.loadPlan(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}
	days := h.horizonFor(plan, r)
	writeJSON(w, http.StatusOK, toBreakdownDTO(cashflow.FlowBreakdown(plan, days, h.Today())))
}

// GetMetrics returns the dashboard metrics.
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	_, plan, err := h.loadPlan(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}
	days := h.horizonFor(plan, r)
	m := cashflow.ComputeMetrics(cashflow.FlowBreakdown(plan, days, h.Today()))
	writeJSON(w, http.StatusOK, MetricsDTO{
		TotalIncome:   amt(m.TotalIncome),
		TotalExpenses: amt(m.TotalExpenses),
		NetCashFlow:   amt(m.NetCashFlow),
		SavingsRate:   amt(m.SavingsRate),
	})
}

// horizonFor resolves the projection horizon: explicit query param first,
// then the plan's stored setting, then the default.
func (h *Handler) horizonFor(plan cashflow.Plan, r *http.Request) int {
	if raw := r.URL.Query().Get("days"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil {
			return cashflow.ClampDays(days)
		}
	}
	if plan.ProjectionDays > 0 {
		return cashflow.ClampDays(plan.ProjectionDays)
	}
	return cashflow.DefaultProjectionDays
}

// =============================================================================
// CSV INTERCHANGE
// =============================================================================

// ExportPlan streams the full plan as a sectioned CSV download.
func (h *Handler) ExportPlan(w http.ResponseWriter, r *http.Request) {
	_, plan, err := h.loadPlan(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="cashflow-input-data-%s.csv"`, h.Today().String()))
	if err := export.WritePlan(w, plan); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ImportPlan replaces the plan from a CSV body.
func (h *Handler) ImportPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "planID")

	plan, err := export.ReadPlan(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid CSV", err)
		return
	}

	if err := h.Store.SavePlan(r.Context(), id, plan); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanDTO(id, plan))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func categoryOrOther(category string) string {
	if category == "" {
		return "Other"
	}
	return category
}

// newItemID returns a short random ID like "inc-9f3a2b01".
func newItemID(prefix string) string {
	b := make([]byte, 4)
	rand.Read(b)
	return fmt.Sprintf("%s-%x", prefix, b)
}
