package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flight search service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Store Metrics
	BulkFetchesTotal  prometheus.Counter
	BulkFetchDuration prometheus.Histogram

	// Search Metrics
	SearchesTotal       prometheus.CounterVec
	SearchDuration      prometheus.HistogramVec
	ItinerariesReturned prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightsearch_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightsearch_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightsearch_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		BulkFetchesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightsearch_bulk_fetches_total",
				Help: "Total batched flight-instance fetches",
			},
		),
		BulkFetchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flightsearch_bulk_fetch_duration_seconds",
				Help:    "Batched flight-instance fetch time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),

		SearchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightsearch_searches_total",
				Help: "Total searches by outcome (ok, empty, invalid, error)",
			},
			[]string{"outcome"},
		),
		SearchDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightsearch_search_duration_seconds",
				Help:    "End-to-end search execution time in seconds",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"max_hops"},
		),
		ItinerariesReturned: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flightsearch_itineraries_returned",
				Help:    "Number of itineraries returned per search",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),
	}
}
