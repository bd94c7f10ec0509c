package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the profile service.
type Metrics struct {
	// ProfileAssemblies counts assembled profiles by visitor kind
	// ("anonymous" or "authenticated").
	ProfileAssemblies *prometheus.CounterVec

	// AssembleLatency tracks full profile assembly duration including
	// action resolution.
	AssembleLatency prometheus.Histogram

	// VisibilityChecks counts visibility decisions by outcome
	// ("visible", "hidden", "error").
	VisibilityChecks *prometheus.CounterVec

	// ActionResolutions counts per-identifier resolution outcomes
	// ("registered", "skipped", "conflict", "lookup_failure").
	ActionResolutions *prometheus.CounterVec

	// HTTPLatency tracks request duration by route and status class.
	HTTPLatency *prometheus.HistogramVec

	// AuditPublishFailures counts audit events that could not be persisted
	// or relayed.
	AuditPublishFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ProfileAssemblies: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "facet_profile_assemblies_total",
			Help: "Total number of assembled profile parameter sets by visitor kind",
		}, []string{"visitor"}),

		AssembleLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "facet_profile_assemble_duration_seconds",
			Help:    "Duration of full profile assembly including action resolution",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		VisibilityChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "facet_visibility_checks_total",
			Help: "Total property visibility decisions by outcome",
		}, []string{"outcome"}),

		ActionResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "facet_action_resolutions_total",
			Help: "Total action identifier resolutions by outcome",
		}, []string{"outcome"}),

		HTTPLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facet_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status class",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route", "status"}),

		AuditPublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "facet_audit_publish_failures_total",
			Help: "Total audit events that failed to persist or relay",
		}),
	}
}

// IncrementAssembly records one assembled profile for the given visitor kind.
func (m *Metrics) IncrementAssembly(visitor string) {
	if m != nil && m.ProfileAssemblies != nil {
		m.ProfileAssemblies.WithLabelValues(visitor).Inc()
	}
}

// ObserveAssembleLatency records the total assembly duration.
func (m *Metrics) ObserveAssembleLatency(d time.Duration) {
	if m != nil && m.AssembleLatency != nil {
		m.AssembleLatency.Observe(d.Seconds())
	}
}

// IncrementVisibilityCheck records one visibility decision.
func (m *Metrics) IncrementVisibilityCheck(outcome string) {
	if m != nil && m.VisibilityChecks != nil {
		m.VisibilityChecks.WithLabelValues(outcome).Inc()
	}
}

// IncrementActionResolution records one action identifier outcome.
func (m *Metrics) IncrementActionResolution(outcome string) {
	if m != nil && m.ActionResolutions != nil {
		m.ActionResolutions.WithLabelValues(outcome).Inc()
	}
}

// ObserveHTTPLatency records one served request.
func (m *Metrics) ObserveHTTPLatency(route, status string, d time.Duration) {
	if m != nil && m.HTTPLatency != nil {
		m.HTTPLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// IncrementAuditPublishFailure records one failed audit publish.
func (m *Metrics) IncrementAuditPublishFailure() {
	if m != nil && m.AuditPublishFailures != nil {
		m.AuditPublishFailures.Inc()
	}
}
