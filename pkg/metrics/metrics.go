package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы вычисления слотов
const (
	SlotOutcomeOK             = "ok"              // есть хотя бы один доступный слот
	SlotOutcomeNoAvailability = "no_availability" // слоты есть, но все заняты
	SlotOutcomeBlocked        = "blocked"         // закрыто/нет часов работы/праздник
	SlotOutcomeError          = "error"           // ошибка чтения данных
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	SlotQueriesTotal   *prometheus.CounterVec
	AutoCancelledTotal *prometheus.CounterVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в reg
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		HTTPRequestsInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		}, []string{"service"}),
		SlotQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_slot_queries_total",
			Help: "Slot computations by outcome",
		}, []string{"service", "outcome"}),
		AutoCancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_auto_cancelled_total",
			Help: "Pending appointments cancelled by the auto-cancel worker",
		}, []string{"service", "reason"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Database query errors",
		}, []string{"service", "operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SlotQueriesTotal,
		m.AutoCancelledTotal,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
	)

	return m
}

// ServiceName возвращает имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// RecordSlotQuery учитывает результат вычисления слотов
func (m *Metrics) RecordSlotQuery(outcome string) {
	m.SlotQueriesTotal.WithLabelValues(m.serviceName, outcome).Inc()
}

// RecordAutoCancel учитывает автоматическую отмену записи
func (m *Metrics) RecordAutoCancel(reason string) {
	m.AutoCancelledTotal.WithLabelValues(m.serviceName, reason).Inc()
}

// ObserveDBQuery учитывает время и ошибку выполнения запроса
func (m *Metrics) ObserveDBQuery(operation string, started time.Time, err error) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(time.Since(started).Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}
