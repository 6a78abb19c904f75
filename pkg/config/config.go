package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for textc.
type Config struct {
	// Compiler contains settings for resolution and output writing.
	Compiler CompilerConfig `yaml:"compiler"`

	// Watch contains settings for the watch command.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CompilerConfig contains settings for the import resolver and output.
type CompilerConfig struct {
	// OutputMode is the permission of written output files, in octal.
	// Default: "0644"
	OutputMode FileMode `yaml:"output_mode"`

	// WarnOnCycle logs a warning for every circular import that was skipped.
	// Default: true
	WarnOnCycle bool `yaml:"warn_on_cycle"`
}

// WatchConfig contains settings for recompiling on change.
type WatchConfig struct {
	// Debounce is the quiet period after a file event before recompiling.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression (robfig/cron syntax, including
	// descriptors like "@every 1m") that forces periodic recompiles. Useful on
	// filesystems that do not deliver change notifications.
	// Default: "" (disabled)
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "textc"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "compiler"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress serves the metrics endpoint while watching.
	// Default: "" (not served)
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address (host:port).
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// SampleRatio is the fraction of compilations traced (0.0 - 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "textc"
	ServiceName string `yaml:"service_name"`

	// Timeout bounds exporter connection and export calls.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// FileMode is an os.FileMode written in YAML as an octal string ("0644")
// or an integer.
type FileMode os.FileMode

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *FileMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := ParseFileMode(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = mode
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m FileMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// String renders the mode as a four digit octal string.
func (m FileMode) String() string {
	return fmt.Sprintf("%04o", uint32(m))
}

// Perm returns the mode as an os.FileMode.
func (m FileMode) Perm() os.FileMode {
	return os.FileMode(m).Perm()
}

// ParseFileMode parses an octal permission string such as "0644" or "644".
func ParseFileMode(s string) (FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: must be octal, e.g. \"0644\"", s)
	}
	return FileMode(v), nil
}
