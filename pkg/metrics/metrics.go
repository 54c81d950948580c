package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors exposed by the service.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec

	dbPoolOpen  prometheus.Gauge
	dbPoolInUse prometheus.Gauge
	dbPoolIdle  prometheus.Gauge

	calendarRequestsTotal *prometheus.CounterVec
}

// New registers and returns the service collectors. Label "service" carries the
// configured service name so several instances can share one Prometheus.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Number of handled HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Number of failed database queries.",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbPoolOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the database pool.",
			ConstLabels: constLabels,
		}),
		dbPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: constLabels,
		}),
		dbPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the database pool.",
			ConstLabels: constLabels,
		}),
		calendarRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_requests_total",
			Help:        "Outbound Google Calendar calls by operation and outcome.",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
	}
}

// ObserveHTTPRequest records one handled HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery records one database query.
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats records the current connection pool state.
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.dbPoolOpen.Set(float64(open))
	m.dbPoolInUse.Set(float64(inUse))
	m.dbPoolIdle.Set(float64(idle))
}

// ObserveCalendarRequest records one outbound calendar call.
func (m *Metrics) ObserveCalendarRequest(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.calendarRequestsTotal.WithLabelValues(operation, outcome).Inc()
}
