package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector 指标收集器
type MetricsCollector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 业务指标
	reviewsTotal   prometheus.Counter
	togglesTotal   *prometheus.CounterVec
	parksImported  *prometheus.CounterVec
	importDuration prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
}

// NewMetricsCollector 在指定 Registerer 上注册指标
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	f := promauto.With(reg)
	return &MetricsCollector{
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		reviewsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "trail_reviews_total",
			Help: "Reviews accepted and folded into trail ratings",
		}),
		togglesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trail_toggles_total",
				Help: "Favorite and offline toggles by resulting state",
			},
			[]string{"kind", "state"},
		),
		parksImported: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nps_import_parks_total",
				Help: "Parks reconciled from the NPS API",
			},
			[]string{"result"},
		),
		importDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nps_import_duration_seconds",
			Help:    "Duration of NPS park imports",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		}),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Cache lookups by result",
			},
			[]string{"cache", "result"},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (m *MetricsCollector) RecordReview() {
	m.reviewsTotal.Inc()
}

// RecordToggle kind 为 favorite 或 offline
func (m *MetricsCollector) RecordToggle(kind, state string) {
	m.togglesTotal.WithLabelValues(kind, state).Inc()
}

// RecordImport 记录一次导入的结果
func (m *MetricsCollector) RecordImport(inserted, updated int, duration time.Duration) {
	m.parksImported.WithLabelValues("inserted").Add(float64(inserted))
	m.parksImported.WithLabelValues("updated").Add(float64(updated))
	m.importDuration.Observe(duration.Seconds())
}

// RecordCacheLookup hit 为 true 表示命中
func (m *MetricsCollector) RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

var (
	globalCollector *MetricsCollector
	once            sync.Once
)

// GetGlobalCollector 获取注册在默认 Registerer 上的全局收集器
func GetGlobalCollector() *MetricsCollector {
	once.Do(func() {
		globalCollector = NewMetricsCollector(prometheus.DefaultRegisterer)
	})
	return globalCollector
}
