package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scraper.
type Metrics struct {
	Registry          *prometheus.Registry
	RequestsTotal     prometheus.Counter
	FetchDuration     prometheus.Histogram
	ListingsFound     prometheus.Counter
	ProductsExtracted prometheus.Counter
	ListingsSkipped   prometheus.Counter
	RowsWritten       prometheus.Counter
	ErrorsTotal       *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_requests_total",
			Help: "Total HTTP requests issued by the scraper.",
		},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_fetch_duration_seconds",
			Help:    "HTTP request latency for page fetches.",
			Buckets: prometheus.DefBuckets,
		},
	)
	listingsFound := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_listings_found_total",
			Help: "Total listing containers matched in fetched pages.",
		},
	)
	productsExtracted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_products_extracted_total",
			Help: "Total product records extracted.",
		},
	)
	listingsSkipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_listings_skipped_total",
			Help: "Total listings dropped for missing fields.",
		},
	)
	rowsWritten := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_rows_written_total",
			Help: "Total data rows written to the output file.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "Total number of scraper errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, fetchDuration, listingsFound, productsExtracted, listingsSkipped, rowsWritten, errorsTotal)

	return &Metrics{
		Registry:          registry,
		RequestsTotal:     requests,
		FetchDuration:     fetchDuration,
		ListingsFound:     listingsFound,
		ProductsExtracted: productsExtracted,
		ListingsSkipped:   listingsSkipped,
		RowsWritten:       rowsWritten,
		ErrorsTotal:       errorsTotal,
	}
}

// IncRequest increments the requests total counter.
func (m *Metrics) IncRequest() {
	if m == nil {
		return
	}
	m.RequestsTotal.Inc()
}

// ObserveFetch records an HTTP request duration.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// AddListings increments the matched-listings counter.
func (m *Metrics) AddListings(n int) {
	if m == nil {
		return
	}
	m.ListingsFound.Add(float64(n))
}

// AddProducts increments the extracted-products counter.
func (m *Metrics) AddProducts(n int) {
	if m == nil {
		return
	}
	m.ProductsExtracted.Add(float64(n))
}

// AddSkipped increments the skipped-listings counter.
func (m *Metrics) AddSkipped(n int) {
	if m == nil {
		return
	}
	m.ListingsSkipped.Add(float64(n))
}

// AddRows increments the written-rows counter.
func (m *Metrics) AddRows(n int) {
	if m == nil {
		return
	}
	m.RowsWritten.Add(float64(n))
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
