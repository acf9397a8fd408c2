// Package metrics provides Prometheus metrics for monitoring the
// contribution service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Contribution fetch metrics
var (
	// fetchTotal records the total number of contribution fetches served.
	// Labels:
	//   - source: Where the result came from ("github", "mock")
	//   - reason: Fallback cause ("" for real data, otherwise "no_token",
	//     "transport", "unauthorized", "bad_status", "user_not_found", "bad_shape")
	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contribution_fetches_total",
			Help: "Total number of contribution fetches by source and fallback reason",
		},
		[]string{"source", "reason"},
	)

	// fetchDuration records how long one upstream fetch took.
	// Labels:
	//   - source: Where the result came from ("github", "mock")
	// Buckets cover a single GraphQL round trip: 10ms up to 30s.
	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contribution_fetch_duration_seconds",
			Help:    "Duration of contribution fetches in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	// cacheEventsTotal records cache behaviour of the contribution service.
	// Labels:
	//   - event: "hit", "miss", "coalesced", "purge"
	cacheEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contribution_cache_events_total",
			Help: "Total number of contribution cache events",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(fetchTotal)
	prometheus.MustRegister(fetchDuration)
	prometheus.MustRegister(cacheEventsTotal)
}

// RecordFetch records a completed contribution fetch.
// source is "github" or "mock"; reason is empty for real data.
func RecordFetch(source, reason string) {
	fetchTotal.WithLabelValues(source, reason).Inc()
}

// RecordFetchDuration records the duration of a contribution fetch.
func RecordFetchDuration(source string, durationSeconds float64) {
	fetchDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordCacheEvent records a cache event ("hit", "miss", "coalesced", "purge").
func RecordCacheEvent(event string) {
	cacheEventsTotal.WithLabelValues(event).Inc()
}
