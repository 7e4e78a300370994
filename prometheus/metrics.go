package prometheus

import (
	"time"

	"imovel-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter      prometheus.Counter
	AuthErrorsCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Catalog operation metrics, labelled by entity and operation
	CatalogOperationsCounter prometheus.CounterVec

	// Optimistic writes that had to be rolled back
	RollbackCounter prometheus.CounterVec

	// Image storage metrics
	ImageUploadsCounter prometheus.Counter
	ImageDeletesCounter prometheus.Counter

	// Inquiry link metrics
	InquiryLinksCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"error_type"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	CatalogOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"entity", "operation"},
	)

	RollbackCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_optimistic_rollbacks_total",
			Help: "Total number of optimistic updates rolled back after a failed write",
		},
		[]string{"entity"},
	)

	ImageUploadsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_image_uploads_total",
			Help: "Total number of property images uploaded",
		},
	)

	ImageDeletesCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_image_deletes_total",
			Help: "Total number of property images deleted",
		},
	)

	InquiryLinksCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_inquiry_links_total",
			Help: "Total number of WhatsApp inquiry links generated",
		},
		[]string{"kind"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordCatalogOperation increments the counter for catalog operations
func RecordCatalogOperation(entity, operation string) {
	CatalogOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordRollback increments the rollback counter for an entity
func RecordRollback(entity string) {
	RollbackCounter.WithLabelValues(entity).Inc()
}

// RecordAuthError increments the counter for authentication errors
func RecordAuthError(errorType string) {
	AuthErrorsCounter.WithLabelValues(errorType).Inc()
}
