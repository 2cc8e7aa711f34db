// Package metrics exposes Prometheus instrumentation for fitment queries, lookup caching and the HTTP API.
package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/orris-inc/fitment/internal/shared/errors"
)

var (
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitment_query_duration_seconds",
			Help:    "Duration of fitment read queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitment_query_errors_total",
			Help: "Total number of failed fitment read queries",
		},
		[]string{"query", "error_type"},
	)

	QueryRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitment_query_rows",
			Help:    "Rows returned by fitment read queries",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000},
		},
		[]string{"query"},
	)

	QueryTruncated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitment_query_truncated_total",
			Help: "Queries whose result reached the row cap",
		},
		[]string{"query"},
	)

	LookupCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitment_lookup_cache_hits_total",
			Help: "Lookup cache hits",
		},
		[]string{"lookup"},
	)

	LookupCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitment_lookup_cache_misses_total",
			Help: "Lookup cache misses",
		},
		[]string{"lookup"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitment_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitment_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitment_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// Error type labels.
const (
	ErrorTypeTimeout       = "timeout"
	ErrorTypeMissingObject = "missing_object"
	ErrorTypeOther         = "other"
)

// RecordQuery records the outcome of one read query.
func RecordQuery(name string, duration time.Duration, rows int, truncated bool, err error) {
	QueryDuration.WithLabelValues(name).Observe(duration.Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(name, classify(err)).Inc()
		return
	}
	QueryRows.WithLabelValues(name).Observe(float64(rows))
	if truncated {
		QueryTruncated.WithLabelValues(name).Inc()
	}
}

// RecordLookupCache records a cache hit or miss for a lookup list.
func RecordLookupCache(lookup string, hit bool) {
	if hit {
		LookupCacheHits.WithLabelValues(lookup).Inc()
	} else {
		LookupCacheMisses.WithLabelValues(lookup).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeTimeout
	}
	switch {
	case apperrors.IsMissingObjectError(err):
		return ErrorTypeMissingObject
	case strings.Contains(strings.ToLower(err.Error()), "resource exhausted"):
		return ErrorTypeTimeout
	default:
		return ErrorTypeOther
	}
}

// QueryRecorder adapts RecordQuery to the repository's observer hook.
type QueryRecorder struct{}

func (QueryRecorder) ObserveQuery(name string, duration time.Duration, rows int, truncated bool, err error) {
	RecordQuery(name, duration, rows, truncated, err)
}
