/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. zerolog:    Structured request logging
  4. CORS:       Cross-origin requests for the frontend

AUTHORIZATION:
  /api/auth/login is the only public endpoint. Everything else sits behind
  RequireAuth, and each route group behind one Require(action, resource)
  capability check. Handlers never inspect roles themselves.

SEE ALSO:
  - handlers.go: Handler implementations
  - auth/middleware.go: RequireAuth and Require
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ubce/backoffice/auth"
)

// NewRouter creates a router with all routes and capability gates configured.
func NewRouter(h *Handler, log zerolog.Logger, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/login", h.Login)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(h.Auth))

			r.Get("/auth/me", h.Me)

			// User administration
			r.Route("/users", func(r chi.Router) {
				r.Use(auth.Require(auth.ActionManage, auth.ResourceUsers))
				r.Get("/", h.ListUsers)
				r.Post("/", h.CreateUser)
				r.Put("/{id}/role", h.ChangeUserRole)
			})

			// Dashboard
			r.With(auth.Require(auth.ActionView, auth.ResourceDashboard)).
				Get("/dashboard", h.Dashboard)

			// Divisions and works
			r.Route("/divisions", func(r chi.Router) {
				r.With(auth.Require(auth.ActionView, auth.ResourceWorks)).Get("/", h.ListDivisions)
				r.With(auth.Require(auth.ActionEdit, auth.ResourceWorks)).Post("/", h.CreateDivision)
			})
			r.Route("/works", func(r chi.Router) {
				r.With(auth.Require(auth.ActionView, auth.ResourceWorks)).Get("/", h.ListWorks)
				r.With(auth.Require(auth.ActionView, auth.ResourceWorks)).Get("/{id}", h.GetWork)
				r.With(auth.Require(auth.ActionEdit, auth.ResourceWorks)).Post("/", h.CreateWork)
				r.With(auth.Require(auth.ActionEdit, auth.ResourceWorks)).Put("/{id}", h.UpdateWork)
				r.With(auth.Require(auth.ActionDelete, auth.ResourceWorks)).Delete("/{id}", h.DeleteWork)
			})

			// Quotation registry
			r.Route("/quotations", func(r chi.Router) {
				r.With(auth.Require(auth.ActionView, auth.ResourceQuotations)).Get("/", h.ListQuotations)
				r.With(auth.Require(auth.ActionEdit, auth.ResourceQuotations)).Post("/", h.RegisterQuotation)
			})

			// Org
			r.Route("/employees", func(r chi.Router) {
				r.Use(auth.Require(auth.ActionView, auth.ResourceEmployees))
				r.Get("/", h.ListEmployees)
				r.With(auth.Require(auth.ActionEdit, auth.ResourceEmployees)).Post("/", h.CreateEmployee)
			})
			r.Route("/hierarchy", func(r chi.Router) {
				r.Use(auth.Require(auth.ActionView, auth.ResourceHierarchy))
				r.Get("/", h.Hierarchy)
				r.With(auth.Require(auth.ActionEdit, auth.ResourceHierarchy)).Post("/", h.AssignPosition)
			})

			// Third-party contractors and the payment ledger
			r.Route("/thirdparty", func(r chi.Router) {
				r.Use(auth.Require(auth.ActionView, auth.ResourceContractors))

				r.Get("/summary", h.GlobalSummary)

				r.Route("/contractors", func(r chi.Router) {
					r.Get("/", h.ListContractors)
					r.Get("/{id}", h.GetContractor)
					r.Get("/{id}/works", h.ListWorkOrders)
					r.With(auth.Require(auth.ActionEdit, auth.ResourceContractors)).Post("/", h.CreateContractor)
					r.With(auth.Require(auth.ActionEdit, auth.ResourceContractors)).Post("/{id}/works", h.CreateWorkOrder)
					r.With(auth.Require(auth.ActionEdit, auth.ResourceContractors)).Put("/{id}", h.UpdateContractor)
					r.With(auth.Require(auth.ActionDelete, auth.ResourceContractors)).Delete("/{id}", h.DeleteContractor)
				})

				r.Route("/works", func(r chi.Router) {
					r.Get("/{id}/ledger", h.GetLedger)
					r.With(auth.Require(auth.ActionEdit, auth.ResourceContractors)).Put("/{id}", h.UpdateWorkOrder)
					r.With(auth.Require(auth.ActionDelete, auth.ResourceContractors)).Delete("/{id}", h.DeleteWorkOrder)
					r.With(auth.Require(auth.ActionEdit, auth.ResourcePayments)).Post("/{id}/payments", h.RecordPayment)
				})
			})
		})
	})

	return r
}

// requestLogger emits one structured log line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
