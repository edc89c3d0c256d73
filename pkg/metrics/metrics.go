package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBTxRetries        *prometheus.CounterVec

	// Допуск бронирований
	AdmissionVerdicts *prometheus.CounterVec
	CommitConflicts   *prometheus.CounterVec
	EventsPublished   *prometheus.CounterVec
}

// New создаёт и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создаёт метрики и регистрирует их в переданном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		DBTxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}, []string{"isolation"}),

		AdmissionVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "admission_verdicts_total",
			Help:        "Admission verdicts by reservation style, reason and phase",
			ConstLabels: constLabels,
		}, []string{"style", "reason", "phase"}),

		CommitConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "admission_commit_conflicts_total",
			Help:        "Commits where the advisory verdict admitted but the fresh re-check rejected",
			ConstLabels: constLabels,
		}, []string{"style", "reason"}),

		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_published_total",
			Help:        "Domain events published to the broker",
			ConstLabels: constLabels,
		}, []string{"topic", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTxRetries,
		m.AdmissionVerdicts,
		m.CommitConflicts,
		m.EventsPublished,
	)

	return m
}

// ObserveVerdict учитывает вердикт допуска
// reason: код отказа или ADMITTED
func (m *Metrics) ObserveVerdict(style, reason, phase string) {
	if m == nil {
		return
	}
	m.AdmissionVerdicts.WithLabelValues(style, reason, phase).Inc()
}

// ObserveCommitConflict учитывает расхождение вердиктов advisory и commit
func (m *Metrics) ObserveCommitConflict(style, reason string) {
	if m == nil {
		return
	}
	m.CommitConflicts.WithLabelValues(style, reason).Inc()
}

// ObserveEvent учитывает результат публикации события
func (m *Metrics) ObserveEvent(topic string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.EventsPublished.WithLabelValues(topic, result).Inc()
}
