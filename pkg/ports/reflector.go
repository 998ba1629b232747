package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// Member is one candidate child as discovered by a reflection backend.
// Key is the name the entity was reached by; it may differ from
// Handle.Name (aliases) or stand in for a missing one (synthetic naming).
type Member struct {
	Key    string
	Handle domain.Handle
}

// Reflector is the reflection facility behind the traversal core. All
// methods must be safe to call repeatedly; per-entity failures should
// surface as an error for that one call, never as a panic.
type Reflector interface {
	// Resolve maps a single target name (import path, optionally followed
	// by .Symbol or .Type.Method) to a handle. Unknown names return an
	// error wrapping domain.ErrUnresolvable.
	Resolve(ctx context.Context, name string) (domain.Handle, error)

	// Members lists the named attributes reflection exposes on h: package
	// scope entries, per-file declarations, or a type's method set.
	Members(ctx context.Context, h domain.Handle) ([]Member, error)

	// Namespace walks the filesystem namespace backing a container handle
	// and returns its direct child packages and source files, independent
	// of whether reflection exposes them as members. Non-namespace handles
	// return an empty slice.
	Namespace(ctx context.Context, h domain.Handle) ([]Member, error)
}

// Surveyor is an optional Reflector capability enumerating every top-level
// package visible to the backend. It powers the "*" survey mode.
type Surveyor interface {
	Survey(ctx context.Context) ([]domain.Handle, error)
}
