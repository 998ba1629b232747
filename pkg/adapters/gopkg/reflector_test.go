package gopkg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/go/packages"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestNamespaceFilesystem(t *testing.T) {
	dir := t.TempDir()
	write := func(path, content string) {
		t.Helper()
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.go", "package x\n")
	write("notes.txt", "not source\n")
	write("sub/s.go", "package sub\n")
	write("testdata/t.go", "package t\n")
	write(".hidden/h.go", "package h\n")
	write("empty/README.md", "no go files\n")

	r := New()
	pkg := domain.Handle{
		ID: "pkg:example.com/x", Name: "x", Kind: domain.KindPackage,
		Origin: dir, PkgPath: "example.com/x",
	}
	members, err := r.Namespace(context.Background(), pkg)
	if err != nil {
		t.Fatalf("Namespace: %v", err)
	}

	got := make(map[string]domain.Kind, len(members))
	for _, m := range members {
		got[m.Key] = m.Handle.Kind
	}
	want := map[string]domain.Kind{
		"a":   domain.KindModule,
		"sub": domain.KindPackage,
	}
	if len(got) != len(want) {
		t.Fatalf("Namespace keys = %v, want %v", got, want)
	}
	for key, kind := range want {
		if got[key] != kind {
			t.Errorf("entry %q = %v, want %v", key, got[key], kind)
		}
	}

	for _, m := range members {
		if m.Key == "sub" && m.Handle.PkgPath != "example.com/x/sub" {
			t.Errorf("subpackage path = %q", m.Handle.PkgPath)
		}
	}
}

func TestNamespaceNonPackage(t *testing.T) {
	r := New()
	members, err := r.Namespace(context.Background(), domain.Handle{Kind: domain.KindFunc})
	if err != nil || members != nil {
		t.Errorf("Namespace(non-package) = %v, %v; want nil, nil", members, err)
	}
}

func TestResolveStdlib(t *testing.T) {
	r := New()
	ctx := context.Background()

	tests := []struct {
		target string
		kind   domain.Kind
		name   string
	}{
		{"fmt", domain.KindPackage, "fmt"},
		{"fmt.Println", domain.KindFunc, "Println"},
		{"io.Reader", domain.KindClass, "Reader"},
		{"io.Reader.Read", domain.KindMethod, "Read"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			h, err := r.Resolve(ctx, tt.target)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.target, err)
			}
			if h.Kind != tt.kind || h.Name != tt.name {
				t.Errorf("Resolve(%q) = %s %q, want %s %q", tt.target, h.Kind, h.Name, tt.kind, tt.name)
			}
		})
	}
}

func TestResolveFailure(t *testing.T) {
	r := New()
	for _, target := range []string{"", "definitely/not/a/package", "fmt.NoSuchSymbol"} {
		_, err := r.Resolve(context.Background(), target)
		if !errors.Is(err, domain.ErrUnresolvable) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnresolvable", target, err)
		}
	}
}

func TestResolveReusesLoadedPackages(t *testing.T) {
	r := New()
	ctx := context.Background()

	if _, err := r.Resolve(ctx, "fmt"); err != nil {
		t.Fatalf("Resolve(fmt): %v", err)
	}
	r.mu.Lock()
	_, cached := r.pkgs["fmt"]
	r.mu.Unlock()
	if !cached {
		t.Fatal("fmt not cached after Resolve")
	}

	// A repeat resolve must hit the cache, not the package driver.
	r.mu.Lock()
	r.pkgs["fmt"] = &packages.Package{Name: "cachedfmt", PkgPath: "fmt"}
	r.mu.Unlock()

	h, err := r.Resolve(ctx, "fmt")
	if err != nil {
		t.Fatalf("second Resolve(fmt): %v", err)
	}
	if h.Name != "cachedfmt" {
		t.Errorf("second resolve bypassed the cache, got name %q", h.Name)
	}
}

func TestTypeMembers(t *testing.T) {
	r := New()
	ctx := context.Background()

	// Both receiver shapes: interface method sets live on the named type,
	// concrete ones on the pointer.
	tests := []struct {
		target string
		method string
	}{
		{"io.Reader", "Read"},
		{"strings.Builder", "Write"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			h, err := r.Resolve(ctx, tt.target)
			if err != nil {
				t.Fatalf("Resolve(%s): %v", tt.target, err)
			}
			members, err := r.Members(ctx, h)
			if err != nil {
				t.Fatalf("Members: %v", err)
			}
			if len(members) == 0 {
				t.Fatalf("%s has no members", tt.target)
			}
			found := false
			for _, m := range members {
				if m.Key == tt.method && m.Handle.Kind == domain.KindMethod {
					found = true
				}
			}
			if !found {
				t.Errorf("%s members %v do not include method %s", tt.target, members, tt.method)
			}
		})
	}
}

func TestPackageMembersCarryDocs(t *testing.T) {
	r := New()
	ctx := context.Background()

	pkg, err := r.Resolve(ctx, "errors")
	if err != nil {
		t.Fatalf("Resolve(errors): %v", err)
	}
	if pkg.Doc == "" {
		t.Error("package handle has no doc comment")
	}

	members, err := r.Members(ctx, pkg)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	for _, m := range members {
		if m.Key == "New" {
			if m.Handle.Kind != domain.KindFunc {
				t.Errorf("errors.New kind = %v", m.Handle.Kind)
			}
			if m.Handle.Doc == "" {
				t.Error("errors.New has no doc comment")
			}
			return
		}
	}
	t.Error("errors.New not among package members")
}
