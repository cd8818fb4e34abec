package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/parecer-api/internal/models"
)

// MetricsService owns the Prometheus registry and keeps a few atomic totals for the JSON summary.
// A nil *MetricsService is valid and records nothing.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheLookups    *prometheus.CounterVec
	aiDuration      *prometheus.HistogramVec
	aiTotal         *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
	aiCount              uint64
	aiFailureCount       uint64
	aiDurationTotal      uint64
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache writes",
		Buckets: prometheus.DefBuckets,
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result",
	}, []string{"result"})

	aiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parecer_generation_duration_seconds",
		Help:    "Latency of generative model calls",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"mode"})

	aiTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parecer_generations_total",
		Help: "Generative model calls by mode and outcome",
	}, []string{"mode", "outcome"})

	registry.MustRegister(
		requestDuration, requestTotal, cacheLatency, cacheWrite, cacheLookups, aiDuration, aiTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheLookups:    cacheLookups,
		aiDuration:      aiDuration,
		aiTotal:         aiTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
	atomic.AddUint64(&m.cacheMissCount, 1)
}

// ObserveCacheWrite tracks the duration of cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveAIGeneration records one generative model call. mode is "text" or "audio".
func (m *MetricsService) ObserveAIGeneration(mode string, ok bool, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
		atomic.AddUint64(&m.aiFailureCount, 1)
	}
	m.aiDuration.WithLabelValues(mode).Observe(duration.Seconds())
	m.aiTotal.WithLabelValues(mode, outcome).Inc()
	atomic.AddUint64(&m.aiCount, 1)
	atomic.AddUint64(&m.aiDurationTotal, uint64(duration.Nanoseconds()))
}

// Snapshot returns aggregated totals.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	snapshot := models.SystemMetrics{Goroutines: runtime.NumGoroutine(), GeneratedAt: time.Now().UTC()}
	if m == nil {
		return snapshot
	}
	snapshot.RequestsTotal = atomic.LoadUint64(&m.requestCount)
	snapshot.CacheHits = atomic.LoadUint64(&m.cacheHitCount)
	snapshot.CacheMisses = atomic.LoadUint64(&m.cacheMissCount)
	snapshot.AIGenerations = atomic.LoadUint64(&m.aiCount)
	snapshot.AIFailures = atomic.LoadUint64(&m.aiFailureCount)

	if lookups := snapshot.CacheHits + snapshot.CacheMisses; lookups > 0 {
		snapshot.CacheHitRatio = float64(snapshot.CacheHits) / float64(lookups)
	}
	if snapshot.RequestsTotal > 0 {
		snapshot.AverageRequestDurationMs = averageMs(atomic.LoadUint64(&m.requestDurationTotal), snapshot.RequestsTotal)
	}
	if snapshot.AIGenerations > 0 {
		snapshot.AverageAIDurationMs = averageMs(atomic.LoadUint64(&m.aiDurationTotal), snapshot.AIGenerations)
	}
	return snapshot
}

func averageMs(totalNanos, count uint64) float64 {
	return float64(totalNanos) / float64(count) / float64(time.Millisecond)
}
