// Package tracing provides OpenTelemetry tracing for textc.
//
// Spans are exported with the OTLP gRPC exporter to any collector that
// speaks OTLP (Jaeger, Tempo, the OpenTelemetry Collector). When tracing is
// disabled a noop tracer is used, so callers never need to check.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	resolver := compiler.NewResolver(compiler.WithTracer(tracer.Tracer()))
//
// The compiler emits one textc.compile span per compilation with a
// textc.resolve child for every expanded file.
package tracing
