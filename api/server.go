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
  /api/employees/*   Rotation config, schedules, employee requests
  /api/requests/*    Manager approval queue and decisions
  /api/holidays/*    Calendar management
  /api/scenarios/*   Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

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
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Manager-Id"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees/{id}", func(r chi.Router) {
			r.Get("/schedule", h.GetSchedule)
			r.Get("/work-days", h.GetWorkDays)
			r.Post("/work-days", h.SetWorkDays)
			r.Get("/next-off-days", h.NextOffDays)
			r.Post("/half-days", h.ApplyHalfDay)
			r.Get("/half-days/suggestions", h.SuggestCompensationDates)
			r.Post("/changes", h.ProposeChange)
		})

		// Manager approval routes
		r.Route("/requests", func(r chi.Router) {
			r.Get("/half-days/pending", h.PendingHalfDays)
			r.Post("/half-days/{id}/decision", h.DecideHalfDay)
			r.Get("/changes/pending", h.PendingChanges)
			r.Post("/changes/{id}/decision", h.DecideChange)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Get("/validate", h.ValidateHolidays)
			r.Post("/substitutes", h.GenerateSubstitutes)
			r.Post("/defaults", h.SeedDefaultHolidays)
			r.Delete("/{id}", h.DeactivateHoliday)
		})

		// Demo scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
