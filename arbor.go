package arbor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/adapters/gopkg"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/render"
	"github.com/aretw0/arbor/pkg/traverse"
)

// Version is the current arbor release.
const Version = "0.4.0"

// SurveyTarget is the sentinel meaning "every top-level package".
const SurveyTarget = "*"

// Printer names accepted by WithPrinter and the CLI.
const (
	PrinterTree  = "tree"
	PrinterDense = "dense"
)

// Engine is the high-level entry point for the arbor library. It wires a
// reflection backend to the traversal core and a printer, and provides a
// simplified API for consumers.
type Engine struct {
	refl    ports.Reflector
	cfg     domain.Config
	log     *slog.Logger
	metrics *observability.Metrics
	printer string
	styler  render.Styler
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithReflector injects a custom reflection backend, bypassing the default
// go/packages adapter.
func WithReflector(r ports.Reflector) Option {
	return func(e *Engine) {
		e.refl = r
	}
}

// WithConfig sets the traversal and rendering configuration.
func WithConfig(cfg domain.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.log = logger
		}
	}
}

// WithMetrics registers Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithPrinter selects the output format: PrinterTree (default) or
// PrinterDense.
func WithPrinter(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.printer = name
		}
	}
}

// WithStyler decorates node text, e.g. with terminal colors.
func WithStyler(s render.Styler) Option {
	return func(e *Engine) {
		e.styler = s
	}
}

// New initializes an arbor Engine. By default it reflects over real Go
// packages resolved from the current directory.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:     domain.Default(),
		log:     logging.NewNop(),
		printer: PrinterTree,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.refl == nil {
		e.refl = gopkg.New(gopkg.WithLogger(e.log))
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.printer != PrinterTree && e.printer != PrinterDense {
		return nil, fmt.Errorf("%w: unknown printer %q", domain.ErrInvalidConfig, e.printer)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() domain.Config {
	return e.cfg
}

// Reflector returns the underlying reflection backend.
func (e *Engine) Reflector() ports.Reflector {
	return e.refl
}

// Resolve maps a single target name to a handle.
func (e *Engine) Resolve(ctx context.Context, name string) (domain.Handle, error) {
	h, err := e.refl.Resolve(ctx, name)
	if err != nil && e.metrics != nil {
		e.metrics.ResolveErrors.Inc()
	}
	return h, err
}

// Survey lists every top-level package the backend can see.
func (e *Engine) Survey(ctx context.Context) ([]domain.Handle, error) {
	s, ok := e.refl.(ports.Surveyor)
	if !ok {
		return nil, domain.ErrUnsupported
	}
	return s.Survey(ctx)
}

// Search resolves a target and returns the lazy traversal stream for it.
// The stream is one-shot and non-restartable.
func (e *Engine) Search(ctx context.Context, target string) (iter.Seq[domain.Node], error) {
	root, err := e.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	t, err := traverse.New(e.refl, e.cfg, traverse.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	return t.Search(ctx, root), nil
}

// Render resolves the whitespace-separated targets (or the survey
// sentinel) and writes one rendered tree per root to w. Resolution
// failures abort the run; everything else degrades to omitted nodes.
func (e *Engine) Render(ctx context.Context, targets string, w io.Writer) error {
	return e.RenderWith(ctx, targets, e.cfg, w)
}

// RenderWith is Render with a per-call configuration, for adapters that
// take knobs per request.
func (e *Engine) RenderWith(ctx context.Context, targets string, cfg domain.Config, w io.Writer) (err error) {
	start := time.Now()
	nodes := 0
	defer func() {
		e.metrics.ObserveRender(start, nodes, err)
	}()

	if err := cfg.Validate(); err != nil {
		return err
	}

	roots, err := e.resolveTargets(ctx, targets)
	if err != nil {
		return err
	}

	t, err := traverse.New(e.refl, cfg, traverse.WithLogger(e.log))
	if err != nil {
		return err
	}
	printer, err := e.newPrinter(cfg)
	if err != nil {
		return err
	}

	for _, root := range roots {
		counted := countNodes(t.Search(ctx, root), &nodes)
		peeker := render.NewPeeker(counted)
		for line := range printer.Lines(peeker) {
			if _, werr := fmt.Fprintln(w, line); werr != nil {
				peeker.Stop()
				return werr
			}
		}
		peeker.Stop()
	}
	return nil
}

// resolveTargets maps the raw target string to root handles. The survey
// sentinel expands to every top-level package.
func (e *Engine) resolveTargets(ctx context.Context, targets string) ([]domain.Handle, error) {
	fields := strings.Fields(targets)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no target given", domain.ErrUnresolvable)
	}

	var roots []domain.Handle
	for _, target := range fields {
		if target == SurveyTarget {
			surveyed, err := e.Survey(ctx)
			if err != nil {
				return nil, fmt.Errorf("survey failed: %w", err)
			}
			roots = append(roots, surveyed...)
			continue
		}
		h, err := e.Resolve(ctx, target)
		if err != nil {
			return nil, err
		}
		roots = append(roots, h)
	}
	return roots, nil
}

func (e *Engine) newPrinter(cfg domain.Config) (render.Printer, error) {
	if cfg.Dense || e.printer == PrinterDense {
		return render.NewDensePrinter(cfg)
	}
	var opts []render.PrinterOption
	if e.styler != nil {
		opts = append(opts, render.WithStyler(e.styler))
	}
	return render.NewTreePrinter(cfg, opts...)
}

// countNodes passes the stream through while tallying emissions.
func countNodes(seq iter.Seq[domain.Node], n *int) iter.Seq[domain.Node] {
	return func(yield func(domain.Node) bool) {
		for node := range seq {
			*n++
			if !yield(node) {
				return
			}
		}
	}
}

// IsUnresolvable reports whether err is a resolution failure, the only
// category a CLI should turn into a non-zero exit.
func IsUnresolvable(err error) bool {
	return errors.Is(err, domain.ErrUnresolvable)
}
