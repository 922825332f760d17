package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backend call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeStatus    = "status_error"
	OutcomeMalformed = "malformed"
	OutcomeNetwork   = "network_error"
)

// PortalMetrics exposes counters/histograms for backend calls and user notices.
type PortalMetrics struct {
	backendCalls   *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	notices        *prometheus.CounterVec
}

func NewPortalMetrics(reg prometheus.Registerer) *PortalMetrics {
	m := &PortalMetrics{
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total requests issued to the hospital backend",
		}, []string{"operation", "outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latency of hospital backend requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "ui",
			Name:      "notices_total",
			Help:      "Notices surfaced to users",
		}, []string{"delivery"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.backendCalls, m.backendLatency, m.notices)
	return m
}

func (m *PortalMetrics) ObserveBackendCall(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.backendCalls.WithLabelValues(operation, outcome).Inc()
	m.backendLatency.WithLabelValues(operation).Observe(seconds)
}

// ObserveNotice counts a notice by how it reached the browser ("trigger" or "flash").
func (m *PortalMetrics) ObserveNotice(delivery string) {
	if m == nil {
		return
	}
	m.notices.WithLabelValues(delivery).Inc()
}
