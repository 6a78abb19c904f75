// Package metrics provides Prometheus metrics collection for textc.
//
// # Overview
//
// A Collector owns its own registry and implements compiler.Observer, so it
// can be handed straight to the resolver:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	resolver := compiler.NewResolver(compiler.WithObserver(collector))
//
// # Metrics
//
//   - textc_compiler_compilations_total{status}: compilations by outcome
//   - textc_compiler_compile_duration_seconds: compilation wall time
//   - textc_compiler_files_resolved_total: files expanded (per expansion)
//   - textc_compiler_imported_bytes_total: raw bytes read from source files
//   - textc_compiler_cycles_detected_total: directives skipped as cycles
//   - textc_compiler_output_bytes: size of the last successful output
//   - textc_compiler_last_success_timestamp_seconds: time of last success
//
// # Exposition
//
// In watch mode the registry is served over HTTP with Handler. One-shot
// compilations can persist a snapshot for the node_exporter textfile
// collector with WriteTextfile.
package metrics
