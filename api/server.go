/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/tenants/*        Tenant management
  /api/contracts/*      Contracts plus their computed financials
  /api/receipts/*       Receipt soft delete
  /api/reports/*        Batch reports

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
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
		// Tenant routes
		r.Route("/tenants", func(r chi.Router) {
			r.Get("/", h.ListTenants)
			r.Post("/", h.CreateTenant)
			r.Get("/{id}", h.GetTenant)
		})

		// Contract routes
		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", h.ListContracts)
			r.Post("/", h.CreateContract)
			r.Get("/{id}", h.GetContract)

			// Computed financials
			r.Get("/{id}/periods", h.GetPeriods)
			r.Get("/{id}/payments", h.GetPayments)
			r.Get("/{id}/statement", h.GetStatement)
			r.Get("/{id}/summary", h.GetSummary)
			r.Get("/{id}/outstanding", h.GetOutstanding)
			r.Get("/{id}/unpaid-range", h.GetUnpaidRange)
			r.Post("/{id}/distribution-preview", h.PreviewDistribution)
			r.Get("/{id}/settlement-preview", h.PreviewSettlement)

			// Modifications and receipts
			r.Get("/{id}/modifications", h.ListModifications)
			r.Post("/{id}/modifications", h.CreateModification)
			r.Get("/{id}/receipts", h.ListReceipts)
			r.Post("/{id}/receipts", h.CreateReceipt)
		})

		// Receipt routes
		r.Route("/receipts", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteReceipt)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/tenants", h.TenantsReport)
		})
	})

	return r
}
