package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/krysmro/todo-service/internal/auth"
	"github.com/krysmro/todo-service/internal/todo"
	todorepo "github.com/krysmro/todo-service/internal/todo/repo"
)

// RegisterRoutes mounts the HTTP surface. The login endpoint and health and
// metrics are anonymous; everything under /api/v1/Todos requires a bearer
// token and never reaches a handler without one.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, tokens *auth.TokenService, verifier auth.CredentialVerifier, loginLimiter *LoginLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(logger))
	r.Use(RecoveryMiddleware(logger))
	r.Use(SecurityHeadersMiddleware())
	r.Use(MetricsMiddleware())

	r.Get("/health", HealthHandler(db, logger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	authHandler := auth.NewHandler(verifier, tokens, logger)
	todoHandler := todo.NewHandler(todo.NewService(todorepo.NewTodoRepo(db)), logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(loginLimiter.Middleware(logger)).Post("/Authentication/token", authHandler.Token)

		r.Route("/Todos", func(r chi.Router) {
			r.Use(auth.RequireToken(tokens, logger))

			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Route("/{todoID}", func(r chi.Router) {
				r.Get("/", todoHandler.Get)
				r.Put("/", todoHandler.UpdateTask)
				r.Delete("/", todoHandler.Delete)
				r.Put("/Complete", todoHandler.Complete)
			})
		})
	})

	return r
}

// HealthHandler reports liveness of the storage connection.
func HealthHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			logger.Warnw("health check failed", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
