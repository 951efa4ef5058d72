// Package metrics содержит prometheus-коллекторы сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	// HTTP метрики
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Метрики базы данных
	DBQueryDuration   *prometheus.HistogramVec
	DBErrorsTotal     *prometheus.CounterVec
	DBConnectionsOpen *prometheus.GaugeVec
	DBConnectionsIdle *prometheus.GaugeVec
	DBConnectionsUsed *prometheus.GaugeVec

	// Метрики интеграционных клиентов (wallet, geo, asset store)
	IntegrationRequestsTotal   *prometheus.CounterVec
	IntegrationRequestDuration *prometheus.HistogramVec

	// Бизнес-метрики бронирования
	BookingsCommittedTotal *prometheus.CounterVec
	BookingsFailedTotal    *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		DBErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_errors_total",
			Help:        "Total number of database errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnectionsUsed: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		IntegrationRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "integration_requests_total",
			Help:        "Total number of requests to external services",
			ConstLabels: constLabels,
		}, []string{"target", "status"}),

		IntegrationRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "integration_request_duration_seconds",
			Help:        "External service request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"target"}),

		BookingsCommittedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "ads_bookings_committed_total",
			Help:        "Total number of committed ad bookings",
			ConstLabels: constLabels,
		}, []string{"ad_position", "office_level"}),

		BookingsFailedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "ads_bookings_failed_total",
			Help:        "Total number of failed ad booking attempts by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
	}
}
