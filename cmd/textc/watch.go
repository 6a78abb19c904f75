package main

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/textc/pkg/cli"
	"mercator-hq/textc/pkg/compiler"
	"mercator-hq/textc/pkg/server"
	"mercator-hq/textc/pkg/telemetry/health"
	"mercator-hq/textc/pkg/watch"
)

var watchFlags struct {
	input       string
	output      string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile whenever the input or any imported file changes",
	Long: `Watch compiles the input once and then recompiles it whenever a file of
the current import tree changes. The watched set is refreshed after every
build, so newly added imports are followed too.

A failed rebuild is reported and the previous output is kept. When
watch.schedule is configured the input is also rebuilt on that cron schedule.

With --metrics-addr (or telemetry.metrics.listen_address) an HTTP server
exposes Prometheus metrics, /healthz and /readyz. Readiness fails while the
last build is failing.

Examples:
  textc watch -i main.txt -o out.txt
  textc watch -i main.txt -o out.txt --metrics-addr 127.0.0.1:9090`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.input, "input-file-path", "i", "", "path to the input file (required)")
	watchCmd.Flags().StringVarP(&watchFlags.output, "output-file-path", "o", "", "path for the output file (required)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "override metrics/health listen address")

	_ = watchCmd.MarkFlagRequired("input-file-path")
	_ = watchCmd.MarkFlagRequired("output-file-path")
}

// builder serializes rebuilds and remembers the outcome of the last one.
type builder struct {
	app     *app
	input   string
	output  string
	watcher *watch.Watcher
	printer *cli.Printer

	mu      sync.Mutex
	files   []string
	lastErr error
	builds  int
}

// rebuild compiles the input and refreshes the watched file set. On failure
// the previous output and file set are kept, plus the missing file so that
// creating it triggers a rebuild.
func (b *builder) rebuild(ctx context.Context, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.builds++
	b.app.logger.Debug("rebuilding", "reason", reason, "build", b.builds)

	result, err := b.app.compileTo(ctx, b.input, b.output)
	b.lastErr = err
	if err != nil {
		b.printer.Failure("Error: %v", err)
		b.app.logger.Error("rebuild failed", "reason", reason, "error", err)
		b.track(b.failedFiles(err))
		return
	}

	b.printer.Success("Compiled file saved to %s", b.output)
	b.app.logger.Info("rebuild succeeded",
		"reason", reason,
		"compile_id", result.ID,
		"files", len(result.Files),
		"cycles", len(result.Cycles),
	)
	b.track(result.Files)
}

func (b *builder) failedFiles(err error) []string {
	files := append([]string{}, b.files...)
	if len(files) == 0 {
		if root, rerr := compiler.ResolvePath(b.input, ""); rerr == nil {
			files = append(files, root)
		}
	}
	var nf *compiler.FileNotFoundError
	if errors.As(err, &nf) {
		files = append(files, nf.Path)
	}
	return files
}

func (b *builder) track(files []string) {
	b.files = files
	if err := b.watcher.SetFiles(files); err != nil {
		b.app.logger.Warn("some directories cannot be watched", "error", err)
	}
}

// LastError returns the error of the most recent build, nil if it succeeded.
func (b *builder) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	a, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := watch.New(watch.Config{DebounceInterval: a.cfg.Watch.Debounce}, a.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer w.Close()

	b := &builder{
		app:     a,
		input:   watchFlags.input,
		output:  watchFlags.output,
		watcher: w,
		printer: newPrinter(cmd),
	}
	b.rebuild(ctx, "initial")

	addr := a.cfg.Telemetry.Metrics.ListenAddress
	if watchFlags.metricsAddr != "" {
		addr = watchFlags.metricsAddr
	}
	if addr != "" {
		srv := newTelemetryServer(a, b, addr)
		if err := srv.Start(); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer func() { _ = srv.Shutdown(context.Background()) }()
	}

	scheduler := watch.NewScheduler(a.logger.Slog())
	if err := scheduler.Start(ctx, a.cfg.Watch.Schedule, func() { b.rebuild(ctx, "schedule") }); err != nil {
		return cli.NewConfigError("watch.schedule", err.Error())
	}
	defer scheduler.Stop()

	return w.Watch(ctx, func(path string) { b.rebuild(ctx, path) })
}

// newTelemetryServer serves metrics and health probes on addr.
func newTelemetryServer(a *app, b *builder, addr string) *server.Server {
	mux := http.NewServeMux()
	if a.metrics != nil {
		mux.Handle(a.cfg.Telemetry.Metrics.Path, a.metrics.Handler())
	}

	checker := health.New(time.Second)
	checker.RegisterCheck("compile", func(context.Context) error { return b.LastError() })
	health.Mount(mux, checker, health.NewVersionInfo(Version, GitCommit, BuildDate))

	return server.New(server.Config{Address: addr}, mux, a.logger.Slog())
}
