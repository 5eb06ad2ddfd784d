package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/upb/retrieval-gateway/app"
	"github.com/upb/retrieval-gateway/handlers"
	"github.com/upb/retrieval-gateway/middleware"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "https://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-User", "X-Tenant", "X-Role"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// Liveness probe (unauthenticated)
	r.Get("/healthz", handlers.HealthCheck(deps))

	// Authenticated surface: every route below resolves a principal first.
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.ResolvePrincipal)
		r.Get("/whoami", handlers.WhoamiHandler(deps))
		r.Post("/ingest", handlers.IngestHandler(deps))
		r.Post("/query", handlers.QueryHandler(deps))
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
