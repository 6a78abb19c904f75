package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textc.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
compiler:
  output_mode: "0600"
  warn_on_cycle: false

watch:
  debounce: "250ms"
  schedule: "@every 30s"

telemetry:
  logging:
    level: "debug"
    format: "json"
  metrics:
    enabled: false
  tracing:
    enabled: true
    endpoint: "collector:4317"
    insecure: true
    sample_ratio: 0.5
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Compiler.OutputMode != 0o600 {
		t.Errorf("expected output mode 0600, got %s", cfg.Compiler.OutputMode)
	}
	if cfg.Compiler.WarnOnCycle {
		t.Error("expected warn_on_cycle false")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.Schedule != "@every 30s" {
		t.Errorf("expected schedule %q, got %q", "@every 30s", cfg.Watch.Schedule)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level debug, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled")
	}
	if !cfg.Telemetry.Tracing.Enabled || !cfg.Telemetry.Tracing.Insecure {
		t.Errorf("expected tracing enabled and insecure, got %+v", cfg.Telemetry.Tracing)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.5 {
		t.Errorf("expected sample ratio 0.5, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
	// Unset fields keep defaults
	if cfg.Telemetry.Tracing.ServiceName != DefaultTracingService {
		t.Errorf("expected default service name, got %q", cfg.Telemetry.Tracing.ServiceName)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Compiler.OutputMode != DefaultOutputMode {
		t.Errorf("expected default output mode, got %s", cfg.Compiler.OutputMode)
	}
	if !cfg.Compiler.WarnOnCycle {
		t.Error("expected warn_on_cycle to default to true")
	}
}

func TestLoadConfig_PartialFileKeepsBooleanDefaults(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  logging:
    level: "warn"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Compiler.WarnOnCycle {
		t.Error("warn_on_cycle should stay true when not set")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should stay enabled when not set")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "compiler: [unclosed")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_InvalidFileMode(t *testing.T) {
	path := writeConfig(t, `
compiler:
  output_mode: "rw-r--r--"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for non-octal mode")
	}
	if !strings.Contains(err.Error(), "invalid file mode") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
watch:
  schedule: "not a schedule"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Errors[0].Field != "watch.schedule" {
		t.Errorf("expected watch.schedule error, got %s", verr.Errors[0].Field)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  logging:
    level: "info"
`)

	t.Setenv("TEXTC_TELEMETRY_LOGGING_LEVEL", "error")
	t.Setenv("TEXTC_TELEMETRY_LOGGING_FORMAT", "json")
	t.Setenv("TEXTC_COMPILER_OUTPUT_MODE", "0640")
	t.Setenv("TEXTC_COMPILER_WARN_ON_CYCLE", "false")
	t.Setenv("TEXTC_WATCH_DEBOUNCE", "2s")
	t.Setenv("TEXTC_WATCH_SCHEDULE", "@daily")
	t.Setenv("TEXTC_TELEMETRY_METRICS_LISTEN_ADDRESS", "127.0.0.1:9464")
	t.Setenv("TEXTC_TELEMETRY_TRACING_SAMPLE_RATIO", "0.25")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telemetry.Logging.Level != "error" {
		t.Errorf("expected env level error, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("expected env format json, got %q", cfg.Telemetry.Logging.Format)
	}
	if cfg.Compiler.OutputMode != 0o640 {
		t.Errorf("expected env output mode 0640, got %s", cfg.Compiler.OutputMode)
	}
	if cfg.Compiler.WarnOnCycle {
		t.Error("expected env warn_on_cycle false")
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected env debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.Schedule != "@daily" {
		t.Errorf("expected env schedule @daily, got %q", cfg.Watch.Schedule)
	}
	if cfg.Telemetry.Metrics.ListenAddress != "127.0.0.1:9464" {
		t.Errorf("expected env listen address, got %q", cfg.Telemetry.Metrics.ListenAddress)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.25 {
		t.Errorf("expected env sample ratio 0.25, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("TEXTC_TELEMETRY_LOGGING_LEVEL", "loud")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error after env override")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfigWithEnvOverrides_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("TEXTC_WATCH_DEBOUNCE", "soon")
	t.Setenv("TEXTC_COMPILER_OUTPUT_MODE", "abc")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("expected default debounce, got %v", cfg.Watch.Debounce)
	}
	if cfg.Compiler.OutputMode != DefaultOutputMode {
		t.Errorf("expected default output mode, got %s", cfg.Compiler.OutputMode)
	}
}

func TestParseFileMode(t *testing.T) {
	tests := []struct {
		in      string
		want    FileMode
		wantErr bool
	}{
		{in: "0644", want: 0o644},
		{in: "644", want: 0o644},
		{in: "0600", want: 0o600},
		{in: "0999", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFileMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFileMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFileMode(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
