package config

import "time"

// Default values for configuration fields.
const (
	// Compiler defaults
	DefaultOutputMode  = FileMode(0o644)
	DefaultWarnOnCycle = true

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel      = "info"
	DefaultLoggingFormat     = "text"
	DefaultMetricsEnabled    = true
	DefaultMetricsNamespace  = "textc"
	DefaultMetricsSubsystem  = "compiler"
	DefaultPrometheusPath    = "/metrics"
	DefaultTracingEnabled    = false
	DefaultTracingEndpoint   = "localhost:4317"
	DefaultTracingSampleRate = 1.0
	DefaultTracingService    = "textc"
	DefaultTracingTimeout    = 10 * time.Second
)

// NewDefaultConfig returns a configuration with every field set to its
// default. YAML documents are decoded on top of it, so booleans that default
// to true stay true unless the file sets them.
func NewDefaultConfig() *Config {
	return &Config{
		Compiler: CompilerConfig{
			OutputMode:  DefaultOutputMode,
			WarnOnCycle: DefaultWarnOnCycle,
		},
		Watch: WatchConfig{
			Debounce: DefaultWatchDebounce,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  DefaultLoggingLevel,
				Format: DefaultLoggingFormat,
			},
			Metrics: MetricsConfig{
				Enabled:   DefaultMetricsEnabled,
				Namespace: DefaultMetricsNamespace,
				Subsystem: DefaultMetricsSubsystem,
				Path:      DefaultPrometheusPath,
			},
			Tracing: TracingConfig{
				Enabled:     DefaultTracingEnabled,
				Endpoint:    DefaultTracingEndpoint,
				SampleRatio: DefaultTracingSampleRate,
				ServiceName: DefaultTracingService,
				Timeout:     DefaultTracingTimeout,
			},
		},
	}
}

// ApplyDefaults fills zero-valued fields with their defaults. Boolean fields
// are left alone since false is a meaningful explicit value.
func ApplyDefaults(cfg *Config) {
	// Compiler defaults
	if cfg.Compiler.OutputMode == 0 {
		cfg.Compiler.OutputMode = DefaultOutputMode
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
}
