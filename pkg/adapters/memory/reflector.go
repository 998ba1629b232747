/*
Package memory provides an in-memory Reflector over a hand-built handle
graph. It backs tests and embedded use cases where no real package graph is
available or wanted.
*/
package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Reflector implements ports.Reflector and ports.Surveyor over maps.
// The zero value is not usable; call New.
type Reflector struct {
	byName  map[string]domain.Handle
	members map[string][]ports.Member
	ns      map[string][]ports.Member
	roots   []string
}

// New creates an empty in-memory reflector.
func New() *Reflector {
	return &Reflector{
		byName:  make(map[string]domain.Handle),
		members: make(map[string][]ports.Member),
		ns:      make(map[string][]ports.Member),
	}
}

// Add registers a handle as resolvable by name and as a survey root.
func (r *Reflector) Add(h domain.Handle) {
	r.byName[h.Name] = h
	r.roots = append(r.roots, h.Name)
}

// AddMember attaches child to parent's reflection members under key.
// Handles are attached by identity, so parent must carry an ID.
func (r *Reflector) AddMember(parent domain.Handle, key string, child domain.Handle) {
	r.members[parent.ID] = append(r.members[parent.ID], ports.Member{Key: key, Handle: child})
}

// AddNamespace attaches child to parent's namespace-walk entries under key.
func (r *Reflector) AddNamespace(parent domain.Handle, key string, child domain.Handle) {
	r.ns[parent.ID] = append(r.ns[parent.ID], ports.Member{Key: key, Handle: child})
}

// Resolve implements ports.Reflector.
func (r *Reflector) Resolve(_ context.Context, name string) (domain.Handle, error) {
	if h, ok := r.byName[name]; ok {
		return h, nil
	}
	return domain.Handle{}, fmt.Errorf("%w: %q", domain.ErrUnresolvable, name)
}

// Members implements ports.Reflector.
func (r *Reflector) Members(_ context.Context, h domain.Handle) ([]ports.Member, error) {
	return r.members[h.ID], nil
}

// Namespace implements ports.Reflector.
func (r *Reflector) Namespace(_ context.Context, h domain.Handle) ([]ports.Member, error) {
	return r.ns[h.ID], nil
}

// Survey implements ports.Surveyor, returning every added root by name.
func (r *Reflector) Survey(_ context.Context) ([]domain.Handle, error) {
	names := append([]string(nil), r.roots...)
	sort.Strings(names)
	handles := make([]domain.Handle, 0, len(names))
	for _, n := range names {
		handles = append(handles, r.byName[n])
	}
	return handles, nil
}
