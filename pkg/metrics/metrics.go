package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках
// в компоненты передаётся nil и запись просто пропускается
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBConnectionsOpen *prometheus.GaugeVec

	// Бизнес-метрики движка бронирований
	ViolationsTotal   *prometheus.CounterVec
	ConflictsTotal    *prometheus.CounterVec
	TransitionsTotal  *prometheus.CounterVec
	LifecycleTickTime *prometheus.HistogramVec
	ReservationsTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBConnectionsOpen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		ViolationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_violations_total",
			Help: "Candidate reservation violations by kind",
		}, []string{"service", "kind"}),

		ConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Candidate reservations rejected because of overlaps, by pricing type",
		}, []string{"service", "pricing_type"}),

		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_status_transitions_total",
			Help: "Automatic reservation status transitions",
		}, []string{"service", "to_status", "applied"}),

		LifecycleTickTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reservation_lifecycle_tick_seconds",
			Help:    "Duration of one lifecycle re-evaluation cycle",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),

		ReservationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Created reservations by pricing type",
		}, []string{"service", "pricing_type"}),
	}
}

// ServiceName имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает метрики запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(m.serviceName, operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnectionsOpen.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.DBConnectionsOpen.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.DBConnectionsOpen.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// RecordViolation учитывает нарушение при проверке кандидата
func (m *Metrics) RecordViolation(kind string) {
	if m == nil {
		return
	}
	m.ViolationsTotal.WithLabelValues(m.serviceName, kind).Inc()
}

// RecordConflict учитывает пересечение с существующими бронированиями
func (m *Metrics) RecordConflict(pricingType string) {
	if m == nil {
		return
	}
	m.ConflictsTotal.WithLabelValues(m.serviceName, pricingType).Inc()
}

// RecordTransition учитывает автоматический переход статуса
func (m *Metrics) RecordTransition(toStatus string, applied bool) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(m.serviceName, toStatus, strconv.FormatBool(applied)).Inc()
}

// ObserveTick записывает длительность цикла пересчёта статусов
func (m *Metrics) ObserveTick(duration time.Duration) {
	if m == nil {
		return
	}
	m.LifecycleTickTime.WithLabelValues(m.serviceName).Observe(duration.Seconds())
}

// RecordReservationCreated учитывает созданное бронирование
func (m *Metrics) RecordReservationCreated(pricingType string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(m.serviceName, pricingType).Inc()
}
