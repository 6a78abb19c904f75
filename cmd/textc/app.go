package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"mercator-hq/textc/pkg/cli"
	"mercator-hq/textc/pkg/compiler"
	"mercator-hq/textc/pkg/config"
	"mercator-hq/textc/pkg/telemetry/logging"
	"mercator-hq/textc/pkg/telemetry/metrics"
	"mercator-hq/textc/pkg/telemetry/tracing"
)

// app bundles the configured components shared by the subcommands.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	tracer   *tracing.Tracer
	metrics  *metrics.Collector
	resolver *compiler.Resolver
}

type appOptions struct {
	// forceMetrics creates a collector even when metrics are disabled.
	forceMetrics bool
}

// newApp loads .env and configuration, applies flag overrides and builds the
// logger, tracer, metrics collector and resolver.
func newApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	if err := config.LoadDotEnv(config.DefaultDotEnvFile); err != nil {
		return nil, cli.NewConfigError("env", err.Error())
	}

	cfg, err := config.LoadConfigWithEnvOverrides(configPath(cfgFile))
	if err != nil {
		return nil, cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}

	a := &app{cfg: cfg, logger: logger, tracer: tracer}

	resolverOpts := []compiler.Option{
		compiler.WithLogger(logger.Slog()),
		compiler.WithTracer(tracer.Tracer()),
	}
	if cfg.Telemetry.Metrics.Enabled || opts.forceMetrics {
		a.metrics = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
		resolverOpts = append(resolverOpts, compiler.WithObserver(a.metrics))
	}
	if cfg.Compiler.WarnOnCycle {
		resolverOpts = append(resolverOpts, compiler.WithCycleReporter(a.warnCycle))
	}
	a.resolver = compiler.NewResolver(resolverOpts...)

	logger.Debug("configuration loaded",
		"config", configPath(cfgFile),
		"metrics", a.metrics != nil,
		"tracing", tracer.Enabled(),
	)
	return a, nil
}

// configPath returns "" (defaults only) when the default config file does
// not exist. An explicitly named file must exist.
func configPath(path string) string {
	if path != defaultConfigFile {
		return path
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return path
}

func (a *app) warnCycle(c compiler.Cycle) {
	a.logger.Warn("circular import skipped",
		"path", c.Path,
		"from", c.From,
		"line", c.Line,
		"chain", c.String(),
	)
}

// compileTo compiles input and atomically writes the result to output.
// Nothing is written when compilation fails.
func (a *app) compileTo(ctx context.Context, input, output string) (*compiler.Result, error) {
	result, err := a.resolver.Compile(ctx, input)
	if err != nil {
		return nil, err
	}

	_, span := a.tracer.Start(ctx, "textc.write", trace.WithAttributes(
		attribute.String("textc.output", output),
		attribute.Int("textc.output_bytes", len(result.Content)),
	))
	defer span.End()

	err = compiler.WriteOutput(output, result.Content, a.cfg.Compiler.OutputMode.Perm())
	tracing.SetStatus(span, err)
	if err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return result, nil
}

// checkAgainst compiles input and compares the result with the current
// contents of output without writing. A missing output compares as empty.
func (a *app) checkAgainst(ctx context.Context, input, output string) (*compiler.Result, []cli.DiffLine, error) {
	result, err := a.resolver.Compile(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	existing, err := os.ReadFile(output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to read output: %w", err)
	}
	return result, cli.LineDiff(string(existing), result.Content), nil
}

// writeMetrics persists the metrics snapshot to path when both are set.
func (a *app) writeMetrics(path string) {
	if path == "" || a.metrics == nil {
		return
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		a.logger.Warn("failed to write metrics file", "path", path, "error", err)
	}
}

// Close flushes pending spans.
func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Telemetry.Tracing.Timeout+time.Second)
	defer cancel()
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("failed to flush traces", "error", err)
	}
}
