// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	HTTPDuration  *prometheus.HistogramVec
	PolicyDenials *prometheus.CounterVec
	Created       *prometheus.CounterVec
	StatusChanges *prometheus.CounterVec
}

// New registers all collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern, method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),

		PolicyDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_policy_denials_total",
			Help: "Authorization denials by operation and reason",
		}, []string{"operation", "reason"}),

		Created: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_entities_created_total",
			Help: "Entities created by kind",
		}, []string{"entity"}), // entity: "user", "company", "job", "application"

		StatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_status_changes_total",
			Help: "Lifecycle status changes by entity and target status",
		}, []string{"entity", "status"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route, method, status string, d time.Duration) {
	if m != nil {
		m.HTTPDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementDenial(operation, reason string) {
	if m != nil {
		m.PolicyDenials.WithLabelValues(operation, reason).Inc()
	}
}

func (m *Metrics) IncrementCreated(entity string) {
	if m != nil {
		m.Created.WithLabelValues(entity).Inc()
	}
}

func (m *Metrics) IncrementStatusChange(entity, status string) {
	if m != nil {
		m.StatusChanges.WithLabelValues(entity, status).Inc()
	}
}
