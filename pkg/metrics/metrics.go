package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegistryMetrics records registry mutations, audit writes, eligibility
// rejections and HTTP traffic. A nil *RegistryMetrics is a valid no-op.
type RegistryMetrics struct {
	mutations     *prometheus.CounterVec
	auditEntries  *prometheus.CounterVec
	ineligible    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// NewRegistryMetrics registers the registry metrics on the provided registerer.
func NewRegistryMetrics(reg prometheus.Registerer) *RegistryMetrics {
	if reg == nil {
		return &RegistryMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_mutations_total",
		Help: "Committed registry mutations by entity and operation.",
	}, []string{"entity", "operation"})
	auditEntries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_audit_entries_total",
		Help: "Audit entries written by table and operation.",
	}, []string{"table", "operation"})
	ineligible := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_role_ineligible_total",
		Help: "Role assignments rejected by the eligibility check.",
	}, []string{"role"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	httpDurations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(mutations, auditEntries, ineligible, httpRequests, httpDurations)
	return &RegistryMetrics{
		mutations:     mutations,
		auditEntries:  auditEntries,
		ineligible:    ineligible,
		httpRequests:  httpRequests,
		httpDurations: httpDurations,
	}
}

// NewRegistry returns a registry with the Go and process collectors attached.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}

// Handler exposes the registry in the Prometheus text format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *RegistryMetrics) IncMutation(entity, operation string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(entity), normalizeLabel(operation)).Inc()
}

func (m *RegistryMetrics) IncAuditEntry(table, operation string) {
	if m == nil || m.auditEntries == nil {
		return
	}
	m.auditEntries.WithLabelValues(normalizeLabel(table), normalizeLabel(operation)).Inc()
}

func (m *RegistryMetrics) IncIneligible(role string) {
	if m == nil || m.ineligible == nil {
		return
	}
	m.ineligible.WithLabelValues(normalizeLabel(role)).Inc()
}

// ObserveRequest records one finished HTTP request.
func (m *RegistryMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.httpRequests == nil {
		return
	}
	route = normalizeLabel(route)
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDurations.WithLabelValues(method, route).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
