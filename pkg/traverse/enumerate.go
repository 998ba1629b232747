package traverse

import (
	"context"
	"sort"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// children returns the ordered, filtered, deduplicated child list of obj,
// fully materialized so the caller can compute "is final sibling" before
// yielding the first child.
func (t *Traverser) children(ctx context.Context, obj domain.Handle) []ports.Member {
	// Source B first: the namespace walk. Names get a fast early filter
	// here; everything else goes through the oracle below.
	var candidates []ports.Member
	ns, err := t.refl.Namespace(ctx, obj)
	if err != nil {
		t.log.Debug("namespace walk failed", "obj", obj.Name, "err", err)
	}
	for _, m := range ns {
		name := strings.ToLower(m.Key)
		if (strings.HasPrefix(name, "test") || strings.Contains(name, "_test")) && !t.cfg.Tests {
			continue
		}
		if strings.HasPrefix(name, "_") && !t.cfg.Private {
			continue
		}
		if m.Handle.Kind == domain.KindPackage && !t.cfg.Subpackages {
			continue
		}
		if m.Handle.Kind == domain.KindModule && !t.cfg.Modules {
			continue
		}
		candidates = append(candidates, m)
	}

	// Source A: declared reflection members. A failure here means one
	// broken container, not an aborted run.
	members, err := t.refl.Members(ctx, obj)
	if err != nil {
		t.log.Debug("member reflection failed", "obj", obj.Name, "err", err)
		members = nil
	}
	candidates = append(candidates, members...)

	// Merge with first-wins deduplication. Only namespace-like handles ever
	// show up in both sources, so only those are deduplicated; identity
	// falls back to the name when the backend cannot produce a stable ID.
	seenIDs := make(map[string]struct{})
	seenNames := make(map[string]struct{})
	filtered := candidates[:0]
	for _, m := range candidates {
		h := m.Handle

		if h.IsContainer() {
			if h.ID != "" {
				if _, dup := seenIDs[h.ID]; dup {
					continue
				}
				seenIDs[h.ID] = struct{}{}
			} else {
				if _, dup := seenNames[m.Key]; dup {
					continue
				}
			}
			seenNames[m.Key] = struct{}{}
		}

		// Synthetic naming: entities without a name borrow the enumeration
		// key; candidates that cannot be named at all are dropped silently.
		if h.Name == "" {
			if m.Key == "" {
				continue
			}
			h.Name = m.Key
			m.Handle = h
		}

		if !ShouldVisit(h, t.cfg) {
			continue
		}
		if !ShouldDescend(obj, h, t.cfg) {
			continue
		}
		filtered = append(filtered, m)
	}

	// Deterministic ordering makes output reproducible and the last-sibling
	// computation meaningful across runs.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Key < filtered[j].Key
	})
	return filtered
}
