package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the registrar workflow.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	registrarOps    *prometheus.CounterVec
	importRows      *prometheus.CounterVec
	backupSize      prometheus.Gauge

	requestCount         uint64
	requestDurationTotal uint64
}

// NewMetricsService registers the core collectors.
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

	registrarOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registrar_operations_total",
		Help: "Total registrar operations by kind and outcome",
	}, []string{"operation", "outcome"})

	importRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "CSV import rows by entity and result",
	}, []string{"entity", "result"})

	backupSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "backup_last_size_bytes",
		Help: "Size of the most recent backup archive",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, registrarOps, importRows, backupSize, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		registrarOps:    registrarOps,
		importRows:      importRows,
		backupSize:      backupSize,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordRegistrarOp counts an enroll/drop/grade attempt by outcome.
func (m *MetricsService) RecordRegistrarOp(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.registrarOps.WithLabelValues(operation, outcome).Inc()
}

// RecordImportRow counts one CSV row by entity and result.
func (m *MetricsService) RecordImportRow(entity, result string) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues(entity, result).Inc()
}

// SetBackupSize records the size of the latest backup archive.
func (m *MetricsService) SetBackupSize(bytes int64) {
	if m == nil {
		return
	}
	m.backupSize.Set(float64(bytes))
}

// RequestStats returns the running request count and mean latency.
func (m *MetricsService) RequestStats() (uint64, float64) {
	if m == nil {
		return 0, 0
	}
	requests := atomic.LoadUint64(&m.requestCount)
	total := atomic.LoadUint64(&m.requestDurationTotal)
	var avgMs float64
	if requests > 0 {
		avgMs = float64(total) / float64(requests) / float64(time.Millisecond)
	}
	return requests, avgMs
}
