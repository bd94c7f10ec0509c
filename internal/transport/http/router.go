package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"facet/internal/platform/metrics"
	"facet/internal/platform/middleware"
)

// RouterDeps carries everything the HTTP layer is wired with.
type RouterDeps struct {
	Profiles ProfileService
	Auth     middleware.JWTValidator
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	// AdminKeyHash guards the action queue endpoint; when empty the
	// endpoint responds 404.
	AdminKeyHash   string
	RequestTimeout time.Duration

	// HealthChecks are probed by /healthz, keyed by dependency name.
	HealthChecks map[string]func(context.Context) error
}

// NewRouter assembles the route tree and the shared middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.DeviceInfo)
	r.Use(middleware.OptionalAuth(deps.Auth, deps.Logger))

	handler := NewProfileHandler(deps.Profiles)

	r.Route("/profile", func(r chi.Router) {
		r.With(middleware.ContentTypeJSON).Get("/{userID}", handler.handleGetProfile)
		r.With(middleware.ContentTypeJSON).Get("/{userID}/visibility/{property}", handler.handleGetVisibility)
		r.With(middleware.ContentTypeJSON, middleware.RequireAdminKey(deps.AdminKeyHash, deps.Logger)).
			Post("/actions/queue", handler.handleQueueAction)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(deps.HealthChecks))

	return r
}

// healthHandler probes each dependency and reports per-dependency status.
// Any failing probe turns the overall response into 503.
func healthHandler(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		report := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				report["status"] = "degraded"
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		respondJSON(w, status, report)
	}
}
