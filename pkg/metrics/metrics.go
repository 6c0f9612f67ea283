package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Названия событий жизненного цикла бронирования
const (
	EventHoldCreated = "hold_created"
	EventConfirmed   = "confirmed"
	EventCancelled   = "cancelled"
	EventCheckedOut  = "checked_out"
	EventHoldExpired = "hold_expired"
)

// Metrics набор коллекторов Prometheus сервиса
// Методы записи безопасны для nil-получателя: при выключенных метриках
// потребители получают nil и ничего не пишут
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBOpenConns     prometheus.Gauge
	DBInUseConns    prometheus.Gauge
	DBIdleConns     prometheus.Gauge
	DBWaitCount     prometheus.Gauge

	BookingEvents *prometheus.CounterVec
	RevenueTotal  prometheus.Counter
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		BookingEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_booking_events_total",
			Help:        "Booking lifecycle events",
			ConstLabels: labels,
		}, []string{"event"}),
		RevenueTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "parking_revenue_total",
			Help:        "Sum of confirmed payments and settlement surcharges",
			ConstLabels: labels,
		}),
	}
}

// RecordBookingEvent увеличивает счётчик события бронирования
func (m *Metrics) RecordBookingEvent(event string) {
	if m == nil {
		return
	}
	m.BookingEvents.WithLabelValues(event).Inc()
}

// AddRevenue добавляет сумму к счётчику выручки (отрицательные значения игнорируются)
func (m *Metrics) AddRevenue(amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	m.RevenueTotal.Add(amount)
}
