// Package httpapi provides HTTP routing, middleware, and handlers
// for the passvault service.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/passvault/internal/logging"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// passvault API.
//
// Routes:
//
//	GET  /api/health                → liveness probe
//	POST /api/auth/register         → authHandler.Register
//	POST /api/auth/login            → authHandler.Login
//	POST /api/auth/forgot-password  → authHandler.ForgotPassword
//	POST /api/auth/reset-password   → authHandler.ResetPassword
//	     /api/vault/...             → vaultHandler (bearer-token protected)
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs incoming requests
//  2. RequireAuth(jwtSecret)     — bearer-token auth, vault group only
func NewRouter(
	authHandler *AuthHandler,
	vaultHandler *VaultHandler,
	jwtSecret []byte,
	logger logging.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HealthCheck)

		// Public endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		// Protected group: requires a valid bearer token
		r.Route("/vault", func(r chi.Router) {
			r.Use(RequireAuth(jwtSecret))
			r.Get("/", vaultHandler.List)
			r.Post("/", vaultHandler.Create)
			r.Get("/{id}", vaultHandler.FindByID)
			r.Patch("/{id}", vaultHandler.Update)
			r.Delete("/{id}", vaultHandler.Delete)
		})
	})

	return r
}

// HealthCheck reports service liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
