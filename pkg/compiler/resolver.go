package compiler

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Observer is notified of resolution events. It is used to feed metrics and
// is called synchronously from the resolving goroutine.
type Observer interface {
	// FileResolved is called once per expanded file with its raw size.
	FileResolved(path string, size int)

	// CycleDetected is called for every directive skipped as a cycle.
	CycleDetected(path string)

	// CompileFinished is called once per Compile with the outcome.
	CompileFinished(err error, duration time.Duration, outputBytes int)
}

type noopObserver struct{}

func (noopObserver) FileResolved(string, int)                  {}
func (noopObserver) CycleDetected(string)                      {}
func (noopObserver) CompileFinished(error, time.Duration, int) {}

// Resolver expands @import directives recursively.
// A Resolver holds no per-compilation state and is safe for concurrent use
// as long as its reporter and observer are.
type Resolver struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	onCycle  CycleReporter
	observer Observer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used to create compile and resolve spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Resolver) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithCycleReporter installs a diagnostic sink for detected cycles.
func WithCycleReporter(fn CycleReporter) Option {
	return func(r *Resolver) {
		r.onCycle = fn
	}
}

// WithObserver installs a resolution observer, typically a metrics collector.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		logger:   slog.Default(),
		tracer:   noop.NewTracerProvider().Tracer("textc"),
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the outcome of a successful compilation.
type Result struct {
	// ID uniquely identifies the compilation in logs and traces.
	ID string `json:"id"`

	// Root is the absolute path of the compiled file.
	Root string `json:"root"`

	// Content is the flattened output.
	Content string `json:"-"`

	// Files lists every expanded file in depth-first order. A file imported
	// from several places appears once per expansion.
	Files []string `json:"files"`

	// Cycles lists the directives skipped because of circular imports.
	Cycles []Cycle `json:"cycles,omitempty"`

	// Duration is the wall time spent resolving.
	Duration time.Duration `json:"duration"`
}

// session accumulates diagnostics for one call tree. It never influences
// resolution itself; the chain alone decides what is expanded.
type session struct {
	logger *slog.Logger
	files  []string
	cycles []Cycle
}

// directiveRef locates the directive that caused a file to be resolved.
type directiveRef struct {
	from string
	line int
}

// Compile resolves root against the working directory with an empty import
// chain and returns the flattened content together with diagnostics.
func (r *Resolver) Compile(ctx context.Context, root string) (*Result, error) {
	start := time.Now()
	id := uuid.NewString()

	ctx, span := r.tracer.Start(ctx, "textc.compile", trace.WithAttributes(
		attribute.String("textc.compile_id", id),
		attribute.String("textc.root", root),
	))
	defer span.End()

	s := &session{logger: r.logger.With("compile_id", id)}
	content, err := r.resolve(ctx, s, root, "", Chain{}, directiveRef{})
	duration := time.Since(start)
	r.observer.CompileFinished(err, duration, len(content))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compilation failed")
		return nil, err
	}

	rootAbs := root
	if len(s.files) > 0 {
		rootAbs = s.files[0]
	}
	span.SetAttributes(
		attribute.Int("textc.files", len(s.files)),
		attribute.Int("textc.cycles", len(s.cycles)),
		attribute.Int("textc.output_bytes", len(content)),
	)
	s.logger.Debug("compilation finished",
		"root", rootAbs,
		"files", len(s.files),
		"cycles", len(s.cycles),
		"bytes", len(content),
		"duration_ms", duration.Milliseconds(),
	)

	return &Result{
		ID:       id,
		Root:     rootAbs,
		Content:  content,
		Files:    s.files,
		Cycles:   s.cycles,
		Duration: duration,
	}, nil
}

// Resolve returns the expanded content of path. Relative paths are resolved
// against basePath; chain holds the files already being expanded above this
// call and is not modified.
func (r *Resolver) Resolve(ctx context.Context, path, basePath string, chain Chain) (string, error) {
	s := &session{logger: r.logger}
	return r.resolve(ctx, s, path, basePath, chain, directiveRef{})
}

func (r *Resolver) resolve(ctx context.Context, s *session, path, basePath string, chain Chain, ref directiveRef) (string, error) {
	abs, err := ResolvePath(path, basePath)
	if err != nil {
		return "", &FileNotFoundError{Path: path, From: ref.from, Line: ref.line, Err: err}
	}

	ctx, span := r.tracer.Start(ctx, "textc.resolve", trace.WithAttributes(
		attribute.String("textc.file", abs),
		attribute.Int("textc.depth", chain.Len()),
	))
	defer span.End()

	data, err := readSource(abs)
	if err != nil {
		nf := &FileNotFoundError{Path: abs, From: ref.from, Line: ref.line, Err: err}
		span.RecordError(nf)
		span.SetStatus(codes.Error, "file not found")
		return "", nf
	}
	r.observer.FileResolved(abs, len(data))
	s.files = append(s.files, abs)
	s.logger.Debug("resolving file", "path", abs, "depth", chain.Len(), "bytes", len(data))

	chain = chain.With(abs)
	dir := filepath.Dir(abs)

	var out strings.Builder
	out.Grow(len(data))
	for i, line := range strings.SplitAfter(string(data), "\n") {
		target, ok := ParseDirective(line)
		if !ok {
			out.WriteString(line)
			continue
		}
		spliced, err := r.splice(ctx, s, target, dir, chain, directiveRef{from: abs, line: i + 1})
		if err != nil {
			return "", err
		}
		out.WriteString(spliced)
	}

	return out.String(), nil
}

// splice resolves one directive. A target already present in chain is a
// cycle and yields "". Non-empty content always ends on a line boundary.
func (r *Resolver) splice(ctx context.Context, s *session, target, dir string, chain Chain, ref directiveRef) (string, error) {
	abs, err := ResolvePath(target, dir)
	if err == nil && chain.Contains(abs) {
		cycle := Cycle{Path: abs, From: ref.from, Line: ref.line, Chain: chain.Paths()}
		s.cycles = append(s.cycles, cycle)
		s.logger.Debug("skipping circular import", "path", abs, "from", ref.from, "line", ref.line)
		r.observer.CycleDetected(abs)
		if r.onCycle != nil {
			r.onCycle(cycle)
		}
		return "", nil
	}

	content, err := r.resolve(ctx, s, target, dir, chain, ref)
	if err != nil {
		return "", err
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content, nil
}
