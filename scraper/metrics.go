package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for discovery and fetching.
type Metrics struct {
	Registry          *prometheus.Registry
	PagesTotal        prometheus.Counter
	ListingsTotal     prometheus.Counter
	SkippedTotal      prometheus.Counter
	ErrorsTotal       *prometheus.CounterVec
	PageDuration      prometheus.Histogram
	DiscoveryDuration prometheus.Histogram
}

// NewMetrics registers all collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "otomoto_pages_fetched_total",
		Help: "Listing pages fetched successfully.",
	})
	listings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "otomoto_listings_extracted_total",
		Help: "Listing nodes turned into records.",
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "otomoto_listings_skipped_total",
		Help: "Listing nodes dropped because a required element was missing.",
	})
	errorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "otomoto_errors_total",
		Help: "Errors by kind.",
	}, []string{"kind"})
	pageDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "otomoto_page_fetch_duration_seconds",
		Help:    "Latency of listing page requests.",
		Buckets: prometheus.DefBuckets,
	})
	discoveryDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "otomoto_discovery_duration_seconds",
		Help:    "Wall time of brand catalog discovery.",
		Buckets: []float64{1, 2, 5, 10, 20, 30, 60},
	})

	registry.MustRegister(pages, listings, skipped, errorsTotal, pageDuration, discoveryDuration)

	return &Metrics{
		Registry:          registry,
		PagesTotal:        pages,
		ListingsTotal:     listings,
		SkippedTotal:      skipped,
		ErrorsTotal:       errorsTotal,
		PageDuration:      pageDuration,
		DiscoveryDuration: discoveryDuration,
	}
}

func (m *Metrics) IncPage() {
	if m == nil {
		return
	}
	m.PagesTotal.Inc()
}

func (m *Metrics) AddListings(n int) {
	if m == nil {
		return
	}
	m.ListingsTotal.Add(float64(n))
}

func (m *Metrics) IncSkipped() {
	if m == nil {
		return
	}
	m.SkippedTotal.Inc()
}

func (m *Metrics) IncError(kind Kind) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) ObservePage(d time.Duration) {
	if m == nil {
		return
	}
	m.PageDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveDiscovery(d time.Duration) {
	if m == nil {
		return
	}
	m.DiscoveryDuration.Observe(d.Seconds())
}
