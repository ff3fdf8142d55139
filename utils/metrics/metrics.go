package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// JobTransitions counts job lifecycle events by event and outcome
	JobTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "job_transitions_total", Help: "Job lifecycle events by event and outcome."},
		[]string{"event", "outcome"},
	)
	// JobRollbacks counts in-memory reverts after a failed write
	JobRollbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "job_rollbacks_total", Help: "Optimistic updates reverted after a persistence failure."},
		[]string{"operation"},
	)
	// QuotesComputed counts pricing calculations by pricing mode
	QuotesComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quotes_computed_total", Help: "Quotes computed by pricing mode."},
		[]string{"mode"},
	)
	// ExternalCalls counts collaborator calls (ai, weather, sms, email) by outcome
	ExternalCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "external_calls_total", Help: "Calls to external collaborators by service and outcome."},
		[]string{"service", "outcome"},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(JobTransitions)
		Registry.MustRegister(JobRollbacks)
		Registry.MustRegister(QuotesComputed)
		Registry.MustRegister(ExternalCalls)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler exposes Registry in the Prometheus text format
func Handler() http.Handler {
	RegisterDefault()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
