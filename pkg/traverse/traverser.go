package traverse

import (
	"context"
	"iter"
	"log/slog"
	"slices"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Traverser walks handle graphs recursively. It is stateless between calls
// to Search except for its configuration; all mutable traversal state is
// local to one generator activation, so a single Traverser may serve
// concurrent searches.
type Traverser struct {
	refl ports.Reflector
	cfg  domain.Config
	log  *slog.Logger
}

// Option configures a Traverser.
type Option func(*Traverser)

// WithLogger sets a structured logger for traversal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Traverser) {
		if logger != nil {
			t.log = logger
		}
	}
}

// New creates a Traverser. The configuration is validated eagerly so a
// malformed one fails here, not mid-stream.
func New(refl ports.Reflector, cfg domain.Config, opts ...Option) (*Traverser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Traverser{
		refl: refl,
		cfg:  cfg,
		log:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Search yields every accepted node under root in strict pre-order: a
// child's entire subtree is emitted before its next sibling begins.
// Siblings appear in the enumerator's sort order. The sequence is lazy,
// finite, and one-shot; abandoning it cancels the walk.
func (t *Traverser) Search(ctx context.Context, root domain.Handle) iter.Seq[domain.Node] {
	return func(yield func(domain.Node) bool) {
		t.search(ctx, root, nil, []bool{true}, yield)
	}
}

// search emits obj and recurses into its children. stack holds the ancestor
// handles, lastAtDepth one flag per stack element plus one for obj. Both are
// copied, never shared, across recursive calls. Returns false once the
// consumer stops pulling.
func (t *Traverser) search(ctx context.Context, obj domain.Handle, stack []domain.Handle, lastAtDepth []bool, yield func(domain.Node) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	// The node one level past the limit is still emitted as a boundary
	// signal; only then does the branch halt.
	if len(stack) > t.cfg.Level+1 {
		return true
	}

	path := append(slices.Clone(stack), obj)
	if !yield(domain.Node{Path: path, LastAtDepth: lastAtDepth}) {
		return false
	}

	if !obj.IsContainer() {
		return true
	}

	// Knowing the final child before recursing is what makes tree-style
	// printing possible in a single pass downstream.
	children := t.children(ctx, obj)
	for i, m := range children {
		last := i == len(children)-1
		if !t.search(ctx, m.Handle, path, append(slices.Clone(lastAtDepth), last), yield) {
			return false
		}
	}
	return true
}
