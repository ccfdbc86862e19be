// Package metrics exposes Prometheus metrics for checks, scans and the task runner.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace is the namespace for all link checker metrics.
	Namespace = "link_checker"

	subsystemChecker = "checker"
	subsystemScan    = "scan"
	subsystemTasks   = "tasks"
	subsystemHTTP    = "http"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	// Checker metrics
	ChecksTotal   *prometheus.CounterVec
	CheckDuration prometheus.Histogram

	// Scan metrics
	ScansStarted     *prometheus.CounterVec
	ScansFinished    *prometheus.CounterVec
	BatchesProcessed prometheus.Counter
	BatchDuration    prometheus.Histogram
	LinksPending     prometheus.Gauge

	// Task runner metrics
	TasksExecuted *prometheus.CounterVec

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates and registers all metrics with reg. A nil reg creates a
// private registry, which keeps tests independent of each other.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	factory := promauto.With(reg)
	m := &Metrics{gatherer: reg}

	m.initCheckerMetrics(factory)
	m.initScanMetrics(factory)
	m.initTaskMetrics(factory)
	m.initHTTPMetrics(factory)

	return m
}

func (m *Metrics) initCheckerMetrics(factory promauto.Factory) {
	m.ChecksTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystemChecker,
			Name:      "checks_total",
			Help:      "Total number of URL checks by outcome",
		},
		[]string{"outcome"},
	)

	m.CheckDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: subsystemChecker,
			Name:      "check_duration_seconds",
			Help:      "Time spent on the initial probe of a URL",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
	)
}

func (m *Metrics) initScanMetrics(factory promauto.Factory) {
	m.ScansStarted = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystemScan,
			Name:      "started_total",
			Help:      "Total number of scans started",
		},
		[]string{"scan_type"},
	)

	m.ScansFinished = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystemScan,
			Name:      "finished_total",
			Help:      "Total number of scans reaching a terminal status",
		},
		[]string{"status"},
	)

	m.BatchesProcessed = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystemScan,
			Name:      "batches_processed_total",
			Help:      "Total number of queue batches processed",
		},
	)

	m.BatchDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: subsystemScan,
			Name:      "batch_duration_seconds",
			Help:      "Duration of one queue batch",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~7min
		},
	)

	m.LinksPending = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: subsystemScan,
			Name:      "links_pending",
			Help:      "Links still due for checking in the active scan",
		},
	)
}

func (m *Metrics) initTaskMetrics(factory promauto.Factory) {
	m.TasksExecuted = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystemTasks,
			Name:      "executed_total",
			Help:      "Total number of deferred tasks executed",
		},
		[]string{"task", "status"},
	)
}

func (m *Metrics) initHTTPMetrics(factory promauto.Factory) {
	m.RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystemHTTP,
			Name:      "requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	m.RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: subsystemHTTP,
			Name:      "request_duration_seconds",
			Help:      "API request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

// RecordCheck records one checker verdict.
func (m *Metrics) RecordCheck(outcome string, duration time.Duration) {
	m.ChecksTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		m.CheckDuration.Observe(duration.Seconds())
	}
}

// RecordScanStarted counts a new scan.
func (m *Metrics) RecordScanStarted(scanType string) {
	m.ScansStarted.WithLabelValues(scanType).Inc()
}

// RecordScanFinished counts a scan reaching status.
func (m *Metrics) RecordScanFinished(status string) {
	m.ScansFinished.WithLabelValues(status).Inc()
}

// RecordBatch records one processed batch and the number of links still due.
func (m *Metrics) RecordBatch(duration time.Duration, pending int) {
	m.BatchesProcessed.Inc()
	m.BatchDuration.Observe(duration.Seconds())
	m.LinksPending.Set(float64(pending))
}

// RecordTask counts one task execution.
func (m *Metrics) RecordTask(name string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.TasksExecuted.WithLabelValues(name, status).Inc()
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
