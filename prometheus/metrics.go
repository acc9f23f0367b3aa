package prometheus

import (
	"pos-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Catalog metrics
	CatalogOperationsCounter prometheus.CounterVec

	// History metrics
	HistoryOperationsCounter prometheus.CounterVec

	// Payment metrics
	PaymentsRecordedCounter prometheus.Counter
	PaymentTotalHistogram   prometheus.Histogram

	// Cart metrics
	OrderValueGauge prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(appConfig *config.Config) {
	// Use metric prefix from configuration
	prefix := appConfig.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Catalog metrics
	CatalogOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"operation"},
	)

	// History metrics
	HistoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_history_operations_total",
			Help: "Total number of payment history operations",
		},
		[]string{"operation"},
	)

	// Payment metrics
	PaymentsRecordedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
	)

	PaymentTotalHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_payment_total",
			Help:    "Distribution of recorded payment totals",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// Cart metrics
	OrderValueGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_order_value",
			Help: "Current order value of the cart",
		},
	)
}

// RecordCatalogOperation increments the counter for catalog operations
func RecordCatalogOperation(operation string) {
	CatalogOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordHistoryOperation increments the counter for history operations
func RecordHistoryOperation(operation string) {
	HistoryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordPayment tracks a recorded payment and its total
func RecordPayment(total float64) {
	PaymentsRecordedCounter.Inc()
	PaymentTotalHistogram.Observe(total)
}

// UpdateOrderValue updates the gauge for the current cart order value
func UpdateOrderValue(value float64) {
	OrderValueGauge.Set(value)
}
