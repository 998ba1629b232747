package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestResolve(t *testing.T) {
	r := New()
	h := domain.Handle{ID: "pkg:top", Name: "top", Kind: domain.KindPackage}
	r.Add(h)

	got, err := r.Resolve(context.Background(), "top")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != h.ID {
		t.Errorf("Resolve returned %+v, want %+v", got, h)
	}

	_, err = r.Resolve(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUnresolvable) {
		t.Errorf("Resolve(missing) error = %v, want ErrUnresolvable", err)
	}
}

func TestMembersAndNamespace(t *testing.T) {
	r := New()
	parent := domain.Handle{ID: "pkg:top", Name: "top", Kind: domain.KindPackage}
	child := domain.Handle{ID: "func:top.F", Name: "F", Kind: domain.KindFunc}
	ns := domain.Handle{ID: "pkg:top/sub", Name: "sub", Kind: domain.KindPackage}
	r.Add(parent)
	r.AddMember(parent, "F", child)
	r.AddNamespace(parent, "sub", ns)

	members, err := r.Members(context.Background(), parent)
	if err != nil || len(members) != 1 || members[0].Key != "F" {
		t.Errorf("Members = %v, %v", members, err)
	}
	walked, err := r.Namespace(context.Background(), parent)
	if err != nil || len(walked) != 1 || walked[0].Key != "sub" {
		t.Errorf("Namespace = %v, %v", walked, err)
	}

	// Unknown handles have no children, not an error.
	none, err := r.Members(context.Background(), domain.Handle{ID: "nope"})
	if err != nil || none != nil {
		t.Errorf("Members(unknown) = %v, %v", none, err)
	}
}

func TestSurveySorted(t *testing.T) {
	r := New()
	r.Add(domain.Handle{ID: "pkg:zeta", Name: "zeta", Kind: domain.KindPackage})
	r.Add(domain.Handle{ID: "pkg:alpha", Name: "alpha", Kind: domain.KindPackage})

	roots, err := r.Survey(context.Background())
	if err != nil {
		t.Fatalf("Survey: %v", err)
	}
	if len(roots) != 2 || roots[0].Name != "alpha" || roots[1].Name != "zeta" {
		t.Errorf("Survey = %v, want sorted [alpha zeta]", roots)
	}
}
