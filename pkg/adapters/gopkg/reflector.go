/*
Package gopkg implements the production Reflector on top of
golang.org/x/tools/go/packages.

Handles are live type-checker objects: a package handle wraps a loaded,
type-checked *packages.Package, declaration handles wrap types.Objects from
its scope, and the namespace walk reads the package directory directly so
subpackages and source files are discovered even when nothing references
them.
*/
package gopkg

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// loadMode requests type-checked packages with syntax, so doc comments and
// declaration positions are available alongside the type information.
const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedDeps

// Reflector resolves names against the Go build system and enumerates the
// resulting type-checker objects. Loaded packages are cached for the
// lifetime of the reflector; one instance may serve concurrent traversals.
type Reflector struct {
	dir string
	env []string
	log *slog.Logger

	mu      sync.Mutex
	fset    *token.FileSet
	pkgs    map[string]*packages.Package
	docs    map[string]map[string]string
	pkgDocs map[string]string
	named   map[string]*types.Named
}

// Option configures a Reflector.
type Option func(*Reflector)

// WithDir sets the working directory for package loading (default ".").
func WithDir(dir string) Option {
	return func(r *Reflector) {
		if dir != "" {
			r.dir = dir
		}
	}
}

// WithLogger sets a structured logger for reflection diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reflector) {
		if logger != nil {
			r.log = logger
		}
	}
}

// New creates a Reflector rooted at the current directory.
func New(opts ...Option) *Reflector {
	r := &Reflector{
		dir: ".",
		// Neutralize workspace interference; everything else comes from
		// the caller's environment.
		env:     append(os.Environ(), "GOWORK=off"),
		log:     logging.NewNop(),
		fset:    token.NewFileSet(),
		pkgs:    make(map[string]*packages.Package),
		docs:    make(map[string]map[string]string),
		pkgDocs: make(map[string]string),
		named:   make(map[string]*types.Named),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements ports.Reflector. It accepts an import path, optionally
// followed by .Symbol or .Type.Method.
func (r *Reflector) Resolve(ctx context.Context, target string) (domain.Handle, error) {
	target = strings.TrimSuffix(strings.TrimSpace(target), "/")
	if target == "" {
		return domain.Handle{}, fmt.Errorf("%w: empty target", domain.ErrUnresolvable)
	}

	if p, err := r.pkg(ctx, target); err == nil {
		return r.packageHandle(p), nil
	}

	// Peel trailing .Symbol segments (at most Type.Method) off the pattern
	// until the remainder loads as a package.
	var symbols []string
	pattern := target
	for range 2 {
		dot := strings.LastIndex(pattern, ".")
		if dot <= strings.LastIndex(pattern, "/") {
			break
		}
		symbols = append([]string{pattern[dot+1:]}, symbols...)
		pattern = pattern[:dot]
		if p, err := r.pkg(ctx, pattern); err == nil {
			if h, err := r.lookup(p, symbols); err == nil {
				return h, nil
			}
			break
		}
	}
	return domain.Handle{}, fmt.Errorf("%w: %q", domain.ErrUnresolvable, target)
}

// lookup finds a scope symbol, or a method of one, in a loaded package.
func (r *Reflector) lookup(p *packages.Package, symbols []string) (domain.Handle, error) {
	obj := p.Types.Scope().Lookup(symbols[0])
	if obj == nil {
		return domain.Handle{}, fmt.Errorf("%w: %s has no symbol %q", domain.ErrUnresolvable, p.PkgPath, symbols[0])
	}
	if len(symbols) == 1 {
		return r.objectHandle(p, obj), nil
	}
	sel, _, _ := types.LookupFieldOrMethod(obj.Type(), true, p.Types, symbols[1])
	if fn, ok := sel.(*types.Func); ok {
		return r.objectHandle(p, fn), nil
	}
	return domain.Handle{}, fmt.Errorf("%w: %s.%s has no method %q", domain.ErrUnresolvable, p.PkgPath, symbols[0], symbols[1])
}

// Members implements ports.Reflector.
func (r *Reflector) Members(ctx context.Context, h domain.Handle) ([]ports.Member, error) {
	switch h.Kind {
	case domain.KindPackage:
		return r.scopeMembers(ctx, h, "")
	case domain.KindModule:
		return r.scopeMembers(ctx, h, h.Origin)
	case domain.KindClass:
		return r.methodMembers(ctx, h)
	}
	return nil, nil
}

// scopeMembers lists package scope entries, optionally restricted to the
// declarations of a single file.
func (r *Reflector) scopeMembers(ctx context.Context, h domain.Handle, file string) ([]ports.Member, error) {
	p, err := r.pkg(ctx, h.PkgPath)
	if err != nil {
		return nil, err
	}
	scope := p.Types.Scope()
	var members []ports.Member
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if obj == nil {
			continue
		}
		child := r.objectHandle(p, obj)
		if file != "" && declFile(r.fset, obj) != file {
			continue
		}
		members = append(members, ports.Member{Key: name, Handle: child})
	}
	return members, nil
}

// methodMembers lists the full method set of a named type, including
// methods promoted from embedded types. A broken or unloadable type yields
// an error for this one candidate, never a panic.
func (r *Reflector) methodMembers(ctx context.Context, h domain.Handle) ([]ports.Member, error) {
	r.mu.Lock()
	named := r.named[h.ID]
	r.mu.Unlock()
	if named == nil {
		// Re-resolve through the defining package.
		p, err := r.pkg(ctx, h.PkgPath)
		if err != nil {
			return nil, err
		}
		obj := p.Types.Scope().Lookup(h.Name)
		if obj == nil {
			return nil, fmt.Errorf("type %s.%s not found in scope", h.PkgPath, h.Name)
		}
		n, ok := types.Unalias(obj.Type()).(*types.Named)
		if !ok {
			return nil, nil
		}
		named = n
	}

	p, err := r.pkg(ctx, h.PkgPath)
	if err != nil {
		return nil, err
	}
	// A pointer-to-interface has no method set; interfaces carry theirs
	// on the named type itself.
	recv := types.Type(types.NewPointer(named))
	if types.IsInterface(named.Underlying()) {
		recv = named
	}
	set := types.NewMethodSet(recv)
	members := make([]ports.Member, 0, set.Len())
	for sel := range set.Methods() {
		fn, ok := sel.Obj().(*types.Func)
		if !ok {
			continue
		}
		members = append(members, ports.Member{Key: fn.Name(), Handle: r.objectHandle(p, fn)})
	}
	return members, nil
}

// Namespace implements ports.Reflector: the direct subpackages and source
// files below a package directory, discovered from the filesystem.
func (r *Reflector) Namespace(_ context.Context, h domain.Handle) ([]ports.Member, error) {
	if h.Kind != domain.KindPackage || h.Origin == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(h.Origin)
	if err != nil {
		return nil, fmt.Errorf("reading namespace %s: %w", h.Origin, err)
	}

	var members []ports.Member
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			// testdata and vendor are invisible to the toolchain.
			if name == "testdata" || name == "vendor" || strings.HasPrefix(name, ".") {
				continue
			}
			dir := filepath.Join(h.Origin, name)
			if !hasGoFiles(dir) {
				continue
			}
			sub := h.PkgPath + "/" + name
			members = append(members, ports.Member{Key: name, Handle: domain.Handle{
				ID:      "pkg:" + sub,
				Name:    name,
				Kind:    domain.KindPackage,
				Origin:  dir,
				PkgPath: sub,
			}})
			continue
		}
		if !strings.HasSuffix(name, ".go") {
			continue
		}
		file := filepath.Join(h.Origin, name)
		base := strings.TrimSuffix(name, ".go")
		members = append(members, ports.Member{Key: base, Handle: domain.Handle{
			ID:      "mod:" + file,
			Name:    base,
			Kind:    domain.KindModule,
			Origin:  file,
			PkgPath: h.PkgPath,
		}})
	}
	return members, nil
}

// Survey implements ports.Surveyor: the top-level packages of the module
// rooted at the reflector's directory.
func (r *Reflector) Survey(ctx context.Context) ([]domain.Handle, error) {
	pkgs, err := r.load(ctx, "./...")
	if err != nil {
		return nil, fmt.Errorf("surveying packages: %w", err)
	}
	paths := make([]string, 0, len(pkgs))
	byPath := make(map[string]*packages.Package, len(pkgs))
	for _, p := range pkgs {
		if p.Name == "" {
			continue
		}
		paths = append(paths, p.PkgPath)
		byPath[p.PkgPath] = p
	}
	sort.Strings(paths)

	// Keep only roots: drop every path nested below an already-kept one.
	var handles []domain.Handle
	var kept []string
	for _, pp := range paths {
		nested := false
		for _, root := range kept {
			if strings.HasPrefix(pp, root+"/") {
				nested = true
				break
			}
		}
		if nested {
			continue
		}
		kept = append(kept, pp)
		handles = append(handles, r.packageHandle(byPath[pp]))
	}
	return handles, nil
}

// loadOne loads exactly one healthy package for the given pattern.
func (r *Reflector) loadOne(ctx context.Context, pattern string) (*packages.Package, error) {
	pkgs, err := r.load(ctx, pattern)
	if err != nil {
		return nil, err
	}
	for _, p := range pkgs {
		if p.Name != "" && p.Types != nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no loadable package for %q", pattern)
}

// pkg returns a cached package by import path, loading it on first use.
func (r *Reflector) pkg(ctx context.Context, pkgPath string) (*packages.Package, error) {
	r.mu.Lock()
	p, ok := r.pkgs[pkgPath]
	r.mu.Unlock()
	if ok {
		return p, nil
	}
	return r.loadOne(ctx, pkgPath)
}

// load runs the package driver and registers every result.
func (r *Reflector) load(ctx context.Context, pattern string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:    loadMode,
		Context: ctx,
		Dir:     r.dir,
		Env:     r.env,
		Fset:    r.fset,
		Tests:   false,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", pattern, err)
	}
	for _, p := range pkgs {
		for _, perr := range p.Errors {
			r.log.Debug("package load error", "pkg", p.PkgPath, "err", perr.Msg)
		}
		r.register(p)
	}
	return pkgs, nil
}

// declFile returns the file an object is declared in, or "".
func declFile(fset *token.FileSet, obj types.Object) string {
	if !obj.Pos().IsValid() {
		return ""
	}
	return fset.Position(obj.Pos()).Filename
}

// hasGoFiles reports whether dir directly contains at least one Go source
// file.
func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".go") {
			return true
		}
	}
	return false
}

// fallbackName derives a package name from its import path.
func fallbackName(pkgPath string) string {
	return path.Base(pkgPath)
}
