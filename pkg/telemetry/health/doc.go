// Package health serves liveness and readiness probes for long-running textc
// processes (watch mode).
//
// Readiness is the aggregate of registered checks. Watch mode registers a
// "compile" check that fails while the last rebuild is failing, so an
// orchestrator can tell a stale output from a fresh one:
//
//	checker := health.New(time.Second)
//	checker.RegisterCheck("compile", func(ctx context.Context) error {
//	    return lastErr.Load()
//	})
//	health.Mount(mux, checker, version.Info())
//
// Endpoints:
//
//	GET /healthz   200 while the process runs
//	GET /readyz    200 when every check passes, 503 otherwise
//	GET /version   build information
package health
