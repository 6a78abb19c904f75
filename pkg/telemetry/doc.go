// Package telemetry groups the observability packages used by textc.
//
//   - logging: structured logging on log/slog
//   - metrics: Prometheus metrics for compilations
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//   - health: liveness and readiness probes for watch mode
package telemetry
