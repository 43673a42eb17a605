package providers

import (
	"contestd/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncTicksTotal()
	ObserveTickDuration(duration time.Duration)
	IncSourceFailures(platform string)
	IncNotificationsTotal()
	SetContestsTracked(count int)
	SetGroupsEnabled(count int)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	ticksTotal          prometheus.Counter
	tickDuration        prometheus.Histogram
	sourceFailures      *prometheus.CounterVec
	notificationsTotal  prometheus.Counter
	contestsTracked     prometheus.Gauge
	groupsEnabled       prometheus.Gauge
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncTicksTotal() {
	m.ticksTotal.Inc()
}

func (m *MetricsProvider) ObserveTickDuration(duration time.Duration) {
	m.tickDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSourceFailures(platform string) {
	m.sourceFailures.WithLabelValues(platform).Inc()
}

func (m *MetricsProvider) IncNotificationsTotal() {
	m.notificationsTotal.Inc()
}

func (m *MetricsProvider) SetContestsTracked(count int) {
	m.contestsTracked.Set(float64(count))
}

func (m *MetricsProvider) SetGroupsEnabled(count int) {
	m.groupsEnabled.Set(float64(count))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
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

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contestd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contestd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contestd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contestd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		ticksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contestd_ticks_total",
			Help: "Total number of completed polling ticks",
		}),

		tickDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contestd_tick_duration_seconds",
			Help:    "Duration of a full poll-diff-notify tick in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		sourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contestd_source_failures_total",
			Help: "Total number of failed platform fetches",
		}, []string{"platform"}),

		notificationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contestd_notifications_total",
			Help: "Total number of reminders emitted to the sink",
		}),

		contestsTracked: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "contestd_contests_tracked",
			Help: "Number of contests currently in the registry",
		}),

		groupsEnabled: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "contestd_groups_enabled",
			Help: "Number of groups with reminders enabled",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contestd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncTicksTotal()                                   {}
func (n *noopMetrics) ObserveTickDuration(_ time.Duration)              {}
func (n *noopMetrics) IncSourceFailures(_ string)                       {}
func (n *noopMetrics) IncNotificationsTotal()                           {}
func (n *noopMetrics) SetContestsTracked(_ int)                         {}
func (n *noopMetrics) SetGroupsEnabled(_ int)                           {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
