package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	apiRequestsTotal   *prometheus.CounterVec
	apiLatencySeconds  *prometheus.HistogramVec
	apiErrorsTotal     *prometheus.CounterVec
	rankingCacheHits   prometheus.Counter
	rankingCacheMisses prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tahfiz_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tahfiz_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tahfiz_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		rankingCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tahfiz_ranking_cache_hits_total",
			Help: "Monthly ranking reads served from the cache.",
		})

		rankingCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tahfiz_ranking_cache_misses_total",
			Help: "Monthly ranking reads computed from the database.",
		})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, rankingCacheHits, rankingCacheMisses)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for served requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// RankingCacheHits exposes the counter for cached ranking reads.
func RankingCacheHits() prometheus.Counter {
	RegisterMetrics()
	return rankingCacheHits
}

// RankingCacheMisses exposes the counter for ranking recomputations.
func RankingCacheMisses() prometheus.Counter {
	RegisterMetrics()
	return rankingCacheMisses
}
