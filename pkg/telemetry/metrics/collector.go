package metrics

import (
	"errors"
	"time"

	"mercator-hq/textc/pkg/compiler"
	"mercator-hq/textc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Compilation outcomes used as the status label.
const (
	StatusSuccess      = "success"
	StatusFileNotFound = "file_not_found"
	StatusError        = "error"
)

// Collector records compiler metrics on a dedicated registry.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	compilationsTotal *prometheus.CounterVec
	compileDuration   prometheus.Histogram
	filesResolved     prometheus.Counter
	importedBytes     prometheus.Counter
	cyclesDetected    prometheus.Counter
	outputBytes       prometheus.Gauge
	lastSuccess       prometheus.Gauge
}

var _ compiler.Observer = (*Collector)(nil)

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil, a new one is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		compilationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compilations_total",
				Help:      "Total number of compilations by outcome",
			},
			[]string{"status"},
		),

		compileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compile_duration_seconds",
				Help:      "Duration of compilations in seconds",
				// Text trees resolve in micro- to milliseconds
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
		),

		filesResolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_resolved_total",
				Help:      "Total number of source files expanded",
			},
		),

		importedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "imported_bytes_total",
				Help:      "Total raw bytes read from source files",
			},
		),

		cyclesDetected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cycles_detected_total",
				Help:      "Total number of import directives skipped as circular",
			},
		),

		outputBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "output_bytes",
				Help:      "Size of the last successful compilation output",
			},
		),

		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful compilation",
			},
		),
	}

	registry.MustRegister(
		c.compilationsTotal,
		c.compileDuration,
		c.filesResolved,
		c.importedBytes,
		c.cyclesDetected,
		c.outputBytes,
		c.lastSuccess,
	)

	return c
}

// FileResolved records one expanded file.
func (c *Collector) FileResolved(_ string, size int) {
	c.filesResolved.Inc()
	c.importedBytes.Add(float64(size))
}

// CycleDetected records one skipped circular import.
func (c *Collector) CycleDetected(string) {
	c.cyclesDetected.Inc()
}

// CompileFinished records the outcome of a compilation.
func (c *Collector) CompileFinished(err error, duration time.Duration, outputBytes int) {
	c.compilationsTotal.WithLabelValues(Status(err)).Inc()
	c.compileDuration.Observe(duration.Seconds())
	if err == nil {
		c.outputBytes.Set(float64(outputBytes))
		c.lastSuccess.SetToCurrentTime()
	}
}

// Registry returns the registry the collector's metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Status maps a compilation error to its status label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, compiler.ErrFileNotFound):
		return StatusFileNotFound
	default:
		return StatusError
	}
}
