// Package metrics exposes Prometheus collectors for the detection pipeline
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "decorlens"

// Metrics holds every collector the service records to
type Metrics struct {
	registry *prometheus.Registry

	visionRequestsTotal   *prometheus.CounterVec
	visionRequestDuration *prometheus.HistogramVec
	visionParseErrors     *prometheus.CounterVec

	itemsDetectedTotal  *prometheus.CounterVec
	matchesCreatedTotal prometheus.Counter

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	imageCacheTotal *prometheus.CounterVec

	boardsRepairedTotal prometheus.Counter
	wsConnections       prometheus.Gauge
}

// New creates the collectors and registers them on a private registry
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.visionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vision_requests_total",
			Help:      "Total number of vision model calls",
		},
		[]string{"operation", "status"}, // status: success, unavailable
	)
	m.visionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vision_request_duration_seconds",
			Help:      "Time taken by vision model calls",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9), // 250ms to ~64s
		},
		[]string{"operation"},
	)
	m.visionParseErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vision_parse_errors_total",
			Help:      "Model answers that were not valid JSON",
		},
		[]string{"operation"},
	)
	m.itemsDetectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_detected_total",
			Help:      "Detected items persisted",
		},
		[]string{"source"},
	)
	m.matchesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_matches_created_total",
		Help:      "Item/product matches synthesized and persisted",
	})
	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken for HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	m.imageCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_cache_lookups_total",
			Help:      "Image proxy cache lookups",
		},
		[]string{"result"}, // hit, miss
	)
	m.boardsRepairedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boards_repaired_total",
		Help:      "Boards whose detected_items_count was repaired by reconciliation",
	})
	m.wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_connections",
		Help:      "Open board progress websocket connections",
	})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.visionRequestsTotal, m.visionRequestDuration, m.visionParseErrors,
		m.itemsDetectedTotal, m.matchesCreatedTotal,
		m.httpRequestsTotal, m.httpRequestDuration,
		m.imageCacheTotal, m.boardsRepairedTotal, m.wsConnections,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// RecordVision records one model call; status is "success" or "unavailable"
func (m *Metrics) RecordVision(operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.visionRequestsTotal.WithLabelValues(operation, status).Inc()
	m.visionRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordVisionParseError counts a completed call whose text could not be parsed
func (m *Metrics) RecordVisionParseError(operation string) {
	if m == nil {
		return
	}
	m.visionParseErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordItemsDetected(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.itemsDetectedTotal.WithLabelValues(source).Add(float64(n))
}

func (m *Metrics) RecordMatchesCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.matchesCreatedTotal.Add(float64(n))
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) RecordImageCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.imageCacheTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordBoardsRepaired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.boardsRepairedTotal.Add(float64(n))
}

func (m *Metrics) WebSocketConnected() {
	if m != nil {
		m.wsConnections.Inc()
	}
}

func (m *Metrics) WebSocketDisconnected() {
	if m != nil {
		m.wsConnections.Dec()
	}
}
