package providers

import (
	"flixmap/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(cache string)
	IncCacheMisses(cache string)
	ObservePersistenceDuration(store string, duration time.Duration)
	IncResolutions(direction, source string)
	IncCrawlerOutcome(contentType, outcome string)
	SetCrawlerPosition(contentType string, id int)
	IncSkipSubmissions(outcome string)
	SetRecordsTotal(store string, count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration *prometheus.HistogramVec
	resolutions         *prometheus.CounterVec
	crawlerOutcomes     *prometheus.CounterVec
	crawlerPosition     *prometheus.GaugeVec
	skipSubmissions     *prometheus.CounterVec
	recordsTotal        *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

func (m *MetricsProvider) IncCacheMisses(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(store string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(store).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncResolutions(direction, source string) {
	m.resolutions.WithLabelValues(direction, source).Inc()
}

func (m *MetricsProvider) IncCrawlerOutcome(contentType, outcome string) {
	m.crawlerOutcomes.WithLabelValues(contentType, outcome).Inc()
}

func (m *MetricsProvider) SetCrawlerPosition(contentType string, id int) {
	m.crawlerPosition.WithLabelValues(contentType).Set(float64(id))
}

func (m *MetricsProvider) IncSkipSubmissions(outcome string) {
	m.skipSubmissions.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) SetRecordsTotal(store string, count int) {
	m.recordsTotal.WithLabelValues(store).Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}
	return newMetricsProvider(prometheus.DefaultRegisterer)
}

func newMetricsProvider(reg prometheus.Registerer) *MetricsProvider {
	factory := promauto.With(reg)
	return &MetricsProvider{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flixmap_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flixmap_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flixmap_cache_hits_total",
			Help: "Total number of cache hits",
		}, []string{"cache"}),

		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flixmap_cache_misses_total",
			Help: "Total number of cache misses",
		}, []string{"cache"}),

		persistenceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flixmap_persistence_duration_seconds",
			Help:    "Duration of snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"store"}),

		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flixmap_resolutions_total",
			Help: "Identity resolutions by direction and source",
		}, []string{"direction", "source"}),

		crawlerOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flixmap_crawler_outcomes_total",
			Help: "Crawler steps by content type and outcome",
		}, []string{"type", "outcome"}),

		crawlerPosition: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flixmap_crawler_position",
			Help: "Reference id the crawler is working on",
		}, []string{"type"}),

		skipSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flixmap_skip_submissions_total",
			Help: "Skip segment submissions by outcome",
		}, []string{"outcome"}),

		recordsTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flixmap_records_total",
			Help: "Records held per store",
		}, []string{"store"}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits(_ string)                                {}
func (n *noopMetrics) IncCacheMisses(_ string)                              {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncResolutions(_, _ string)                           {}
func (n *noopMetrics) IncCrawlerOutcome(_, _ string)                        {}
func (n *noopMetrics) SetCrawlerPosition(_ string, _ int)                   {}
func (n *noopMetrics) IncSkipSubmissions(_ string)                          {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                      {}
