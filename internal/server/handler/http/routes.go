package http

import (
	_ "embed"
	"net/http"

	"github.com/atinyakov/formulaone/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

//go:embed openapi.json
var openAPIDoc []byte

// NewRouter constructs the HTTP handler serving the FormulaOne API.
//
// Routes:
//
//	POST   /auth/register      → authHandler.Register
//	POST   /auth/login         → authHandler.Login
//	GET    /api/me             → authHandler.Me          (bearer)
//	GET    /api/teams          → teamHandler.List        (bearer)
//	POST   /api/teams          → teamHandler.Create      (bearer)
//	GET    /api/teams/{id}     → teamHandler.Get         (bearer)
//	PATCH  /api/teams/{id}     → teamHandler.Patch       (bearer)
//	DELETE /api/teams/{id}     → teamHandler.Delete      (bearer)
//	GET    /healthz, /swagger/doc.json
//
// Middleware chain (applied in order):
//  1. RequestID, Recoverer
//  2. WithRequestLogging(logger)
//  3. AllowContentType("application/json"), rejects non-JSON bodies
//  4. BearerAuth(validator) on /api only
func NewRouter(
	authHandler *AuthHandler,
	teamHandler *TeamHandler,
	validator middleware.TokenValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openAPIDoc)
	})

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected group: requires a valid bearer token
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.BearerAuth(validator, logger))

		r.Get("/me", authHandler.Me)
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/", teamHandler.Create)
			r.Get("/{id}", teamHandler.Get)
			r.Patch("/{id}", teamHandler.Patch)
			r.Delete("/{id}", teamHandler.Delete)
		})
	})

	return r
}
