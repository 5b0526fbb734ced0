package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lookingup/lookingup-api/internal/service/auth"
)

// SetupRoutes configures all API routes. The root and health endpoints are
// open; everything else sits behind API key authentication and the per-key
// rate limiter.
func SetupRoutes(h *Handlers, authSvc *auth.Service, limiter *RateLimiter, health *HealthChecker, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", APIKeyHeader},
		MaxAge:         300,
	}))

	// Service identity header
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Server-Identity", "lookingup-api-v"+Version)
			next.ServeHTTP(w, req)
		})
	})

	// Open endpoints
	r.Get("/", h.Root)
	if health != nil {
		r.Get("/health", health.Handle)
	}

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(RequireAPIKey(authSvc))
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Post("/verify", h.Verify)
		r.Post("/verify/bulk", h.VerifyBulk)
		r.Post("/find", h.Find)
		r.Get("/usage", h.Usage)
	})

	return r
}
