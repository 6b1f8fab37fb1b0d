// Package metrics exposes Prometheus collectors for the scan pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	postingsKeptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_postings_kept_total",
			Help: "Postings that passed all filters, labeled by source and family.",
		},
		[]string{"source", "family"},
	)

	pagesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_pages_fetched_total",
			Help: "Result pages fetched from providers, labeled by source.",
		},
		[]string{"source"},
	)

	sourceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_source_errors_total",
			Help: "Provider calls that failed and were degraded to empty pages.",
		},
		[]string{"source"},
	)

	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_runs_total",
			Help: "Pipeline runs, labeled by outcome.",
		},
		[]string{"status"},
	)

	runDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobscout_run_duration_seconds",
			Help:    "Histogram of full pipeline run durations.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)
)

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePostingKept increments the kept-postings counter.
func ObservePostingKept(source, family string) {
	postingsKeptTotal.WithLabelValues(source, family).Inc()
}

// ObservePageFetched increments the fetched-pages counter.
func ObservePageFetched(source string) {
	pagesFetchedTotal.WithLabelValues(source).Inc()
}

// ObserveSourceError increments the degraded-call counter.
func ObserveSourceError(source string) {
	sourceErrorsTotal.WithLabelValues(source).Inc()
}

// ObserveRun records one pipeline run and its duration.
func ObserveRun(status string, duration time.Duration) {
	runsTotal.WithLabelValues(status).Inc()
	runDurationSeconds.Observe(duration.Seconds())
}
