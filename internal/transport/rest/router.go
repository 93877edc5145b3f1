package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/oceanix/incident-platform/internal/auth"
	"github.com/oceanix/incident-platform/internal/authz"
	"github.com/oceanix/incident-platform/internal/incident"
	"github.com/oceanix/incident-platform/internal/transport/middleware"
	"github.com/oceanix/incident-platform/internal/user"
)

// RegisterAllRoutes wires the HTTP surface. Every protected route goes
// through the pipeline stages in order: authenticate, tenant enforcement,
// then the operation's permission gate. Requirements come from the static
// operation registry, declared here at registration time.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, pipeline *authz.Pipeline, authHandler *auth.Handler, userHandler *user.Handler, incidentHandler *incident.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		// Protected routes: identity and tenant are resolved once per
		// request, the permission gate varies per operation.
		r.Group(func(pr chi.Router) {
			pr.Use(pipeline.Authenticate)
			pr.Use(pipeline.RequireTenant)

			if userHandler != nil {
				pr.With(pipeline.Authorize(authz.RequirementFor(authz.OpCurrentUser))).
					Get("/users/me", userHandler.GetCurrentUser)
				pr.With(pipeline.Authorize(authz.RequirementFor(authz.OpDeleteUser))).
					Delete("/users/{id}", userHandler.DeleteUser)
			}

			if incidentHandler != nil {
				pr.Route("/incidents", func(ir chi.Router) {
					ir.With(pipeline.Authorize(authz.RequirementFor(authz.OpListIncidents))).
						Get("/", incidentHandler.ListIncidents)
					ir.With(pipeline.Authorize(authz.RequirementFor(authz.OpCreateIncident))).
						Post("/", incidentHandler.CreateIncident)
					ir.With(pipeline.Authorize(authz.RequirementFor(authz.OpGetIncident))).
						Get("/{id}", incidentHandler.GetIncident)
					ir.With(pipeline.Authorize(authz.RequirementFor(authz.OpResolveIncident))).
						Patch("/{id}/resolve", incidentHandler.ResolveIncident)
				})
			}
		})
	})
}
