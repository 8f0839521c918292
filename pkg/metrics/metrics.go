package metrics

import (
	"runtime"
	"time"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// System metrics
	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_bytes",
		Help: "Current system memory usage",
	})

	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_goroutines",
		Help: "Number of goroutines",
	})

	// Conversion metrics
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adf_conversions_total",
			Help: "Total number of ADF documents converted",
		},
		[]string{"source", "status"},
	)

	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adf_conversion_duration_seconds",
			Help:    "Time spent converting ADF documents to Markdown",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"source"},
	)

	ConversionWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adf_warnings_total",
			Help: "Non-fatal conversion warnings by type and node type",
		},
		[]string{"type", "node_type"},
	)

	MarkdownBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adf_markdown_bytes",
			Help:    "Size of the produced Markdown",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		},
		[]string{"source"},
	)

	// Batch metrics
	BatchQueueLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "adf_batch_queue_length",
		Help: "Number of documents waiting to be converted",
	})
)

// ObserveConversion records the outcome of one conversion. source names the
// caller, e.g. "mcp", "confluence", "jira" or "batch".
func ObserveConversion(source string, res *adf.Result, err error, elapsed time.Duration) {
	ConversionDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	if err != nil {
		ConversionsTotal.WithLabelValues(source, "error").Inc()
		return
	}
	ConversionsTotal.WithLabelValues(source, "success").Inc()
	if res == nil {
		return
	}
	MarkdownBytes.WithLabelValues(source).Observe(float64(len(res.Markdown)))
	for _, w := range res.Warnings {
		ConversionWarnings.WithLabelValues(string(w.Type), w.NodeType).Inc()
	}
}

// UpdateSystemMetrics updates system-level metrics
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}
