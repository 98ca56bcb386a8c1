/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/calculations/*   The three calculation modes
  /api/jurisdictions/*  Province/territory rule listings
  /api/frequencies      Pay frequency contract table
  /api/users/*          Per-user history and timesheet storage

SECURITY NOTE:
  No authentication middleware. User IDs are opaque identifiers the
  client supplies; authentication is outside this service's boundary.

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
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/calculations", func(r chi.Router) {
			r.Post("/hourly", h.CalculateHourly)
			r.Post("/salary", h.CalculateSalary)
			r.Post("/timesheet", h.CalculateTimesheet)
		})

		r.Route("/jurisdictions", func(r chi.Router) {
			r.Get("/", h.ListJurisdictions)
			r.Get("/{code}", h.GetJurisdiction)
		})

		r.Get("/frequencies", h.ListFrequencies)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/calculations", h.ListCalculations)
			r.Get("/timesheet", h.ListTimesheet)
			r.Post("/timesheet", h.SaveTimesheet)
			r.Delete("/timesheet/{entryID}", h.DeleteTimesheetEntry)
		})
	})

	return r
}
