package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaar_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bazaar_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AdViewsTotal counts detail-page views recorded against ads.
	AdViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaar_ad_views_total",
		Help: "Total number of ad detail views recorded",
	})

	// AdsCreatedTotal counts ads created, labeled by category slug.
	AdsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaar_ads_created_total",
		Help: "Total number of ads created by category",
	}, []string{"category"})

	// MessagesSentTotal counts buyer messages accepted for delivery.
	MessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaar_messages_sent_total",
		Help: "Total number of ad messages accepted",
	})

	// AuthFailuresTotal counts failed authentication attempts by reason.
	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaar_auth_failures_total",
		Help: "Total number of failed authentication attempts by reason",
	}, []string{"reason"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
