package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes.
const (
	ResultCreated     = "created"
	ResultOverwritten = "overwritten"
	ResultConflict    = "conflict"
	ResultInvalid     = "invalid"
	ResultError       = "error"
)

// Metrics holds the process collectors. A nil *Metrics is a no-op.
type Metrics struct {
	gatherer prometheus.Gatherer

	submissions     *prometheus.CounterVec
	markedRecords   *prometheus.CounterVec
	overrides       prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers every collector on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendx",
			Name:      "attendance_submissions_total",
			Help:      "Slot submissions by outcome.",
		}, []string{"result"}),
		markedRecords: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendx",
			Name:      "attendance_records_total",
			Help:      "Stored attendance records by status.",
		}, []string{"status"}),
		overrides: f.NewCounter(prometheus.CounterOpts{
			Namespace: "attendx",
			Name:      "attendance_overrides_total",
			Help:      "Administrative status overrides.",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendx",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "attendx",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// NewDefault registers on a fresh registry with the Go and process collectors.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Submission counts one slot submission outcome.
func (m *Metrics) Submission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}

// Records counts stored records by status.
func (m *Metrics) Records(present, absent int) {
	if m == nil {
		return
	}
	m.markedRecords.WithLabelValues("present").Add(float64(present))
	m.markedRecords.WithLabelValues("absent").Add(float64(absent))
}

// Override counts one administrative override.
func (m *Metrics) Override() {
	if m == nil {
		return
	}
	m.overrides.Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
