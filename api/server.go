/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/plans/*      Plan, item, projection, insights, and CSV endpoints
  /api/scenarios/*  Demo plan loaders

SECURITY NOTE:
  No authentication middleware. Plan IDs are opaque keys supplied by the
  caller; an auth layer in front of this service owns mapping users to
  plan IDs.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/plans", h.ListPlans)

		r.Route("/plans/{planID}", func(r chi.Router) {
			r.Get("/", h.GetPlan)
			r.Delete("/", h.DeletePlan)
			r.Put("/settings", h.UpdateSettings)

			r.Get("/projection", h.GetProjection)
			r.Get("/projection/export", h.ExportProjection)
			r.Get("/breakdown", h.GetBreakdown)
			r.Get("/metrics", h.GetMetrics)

			r.Get("/export", h.ExportPlan)
			r.Post("/import", h.ImportPlan)

			r.Route("/incomes", func(r chi.Router) {
				r.Post("/", h.CreateIncome)
				r.Put("/{itemID}", h.UpdateIncome)
				r.Delete("/{itemID}", h.DeleteIncome)
				r.Post("/{itemID}/toggle", h.ToggleIncome)
			})

			r.Route("/credit-cards", func(r chi.Router) {
				r.Post("/", h.CreateCreditCard)
				r.Put("/{itemID}", h.UpdateCreditCard)
				r.Delete("/{itemID}", h.DeleteCreditCard)
				r.Post("/{itemID}/toggle", h.ToggleCreditCard)
			})

			r.Route("/recurring-expenses", func(r chi.Router) {
				r.Post("/", h.CreateRecurringExpense)
				r.Put("/{itemID}", h.UpdateRecurringExpense)
				r.Delete("/{itemID}", h.DeleteRecurringExpense)
				r.Post("/{itemID}/toggle", h.ToggleRecurringExpense)
			})

			r.Route("/one-time-expenses", func(r chi.Router) {
				r.Post("/", h.CreateOneTimeExpense)
				r.Put("/{itemID}", h.UpdateOneTimeExpense)
				r.Delete("/{itemID}", h.DeleteOneTimeExpense)
				r.Post("/{itemID}/toggle", h.ToggleOneTimeExpense)
			})
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	// Landing page for anyone hitting the root in a browser.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Cashflow Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Cashflow Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/plans">/api/plans</a> - List plans</li>
<li>/api/plans/{id}/projection - Daily balance projection</li>
<li>/api/plans/{id}/breakdown - Income/expense breakdown</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
