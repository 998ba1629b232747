package gopkg

import (
	"go/doc"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/aretw0/arbor/pkg/domain"
)

// register caches a loaded package and indexes its doc comments by
// declaration name (methods under "Type.Method").
func (r *Reflector) register(p *packages.Package) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pkgs[p.PkgPath]; ok {
		return
	}
	r.pkgs[p.PkgPath] = p

	index := make(map[string]string)
	if len(p.Syntax) > 0 {
		dp, err := doc.NewFromFiles(r.fset, p.Syntax, p.PkgPath, doc.AllDecls|doc.AllMethods|doc.PreserveAST)
		if err != nil {
			r.log.Debug("doc extraction failed", "pkg", p.PkgPath, "err", err)
		} else {
			r.pkgDocs[p.PkgPath] = dp.Doc
			for _, f := range dp.Funcs {
				index[f.Name] = f.Doc
			}
			for _, v := range append(dp.Consts, dp.Vars...) {
				for _, name := range v.Names {
					index[name] = v.Doc
				}
			}
			for _, t := range dp.Types {
				index[t.Name] = t.Doc
				for _, m := range t.Methods {
					index[t.Name+"."+m.Name] = m.Doc
				}
				for _, f := range t.Funcs {
					index[f.Name] = f.Doc
				}
				for _, v := range append(t.Consts, t.Vars...) {
					for _, name := range v.Names {
						index[name] = v.Doc
					}
				}
			}
		}
	}
	r.docs[p.PkgPath] = index
}

// packageHandle wraps a loaded package.
func (r *Reflector) packageHandle(p *packages.Package) domain.Handle {
	name := p.Name
	if name == "" {
		name = fallbackName(p.PkgPath)
	}
	dir := ""
	if len(p.GoFiles) > 0 {
		dir = filepath.Dir(p.GoFiles[0])
	}
	r.mu.Lock()
	pkgDoc := r.pkgDocs[p.PkgPath]
	r.mu.Unlock()
	return domain.Handle{
		ID:      "pkg:" + p.PkgPath,
		Name:    name,
		Kind:    domain.KindPackage,
		Origin:  dir,
		PkgPath: p.PkgPath,
		Doc:     pkgDoc,
	}
}

// objectHandle wraps a type-checker object reached through package p.
func (r *Reflector) objectHandle(p *packages.Package, obj types.Object) domain.Handle {
	h := domain.Handle{
		Name:    obj.Name(),
		Origin:  declFile(r.fset, obj),
		PkgPath: p.PkgPath,
	}
	if obj.Pkg() != nil {
		h.PkgPath = obj.Pkg().Path()
	}
	qual := types.RelativeTo(p.Types)

	switch o := obj.(type) {
	case *types.Func:
		sig := o.Signature()
		if sig.Recv() != nil {
			h.Kind = domain.KindMethod
			h.ID = "method:" + h.PkgPath + "." + recvName(sig) + "." + h.Name
			h.Doc = r.docFor(h.PkgPath, recvName(sig)+"."+h.Name)
		} else {
			h.Kind = domain.KindFunc
			h.ID = "func:" + h.PkgPath + "." + h.Name
			h.Doc = r.docFor(h.PkgPath, h.Name)
		}
		if h.Origin == "" {
			h.Kind = domain.KindBuiltin
		}
		fillSignature(&h, sig, qual)

	case *types.TypeName:
		h.Kind = domain.KindClass
		if obj.Pkg() == nil {
			// Universe types; "any" is the type-of-all-types analog.
			h.ID = "builtin:" + h.Name
			if h.Name == "any" {
				h.ID = domain.TypeRootID
			}
			break
		}
		// Aliases document the target, so membership tests see where the
		// type really lives.
		if named, ok := types.Unalias(o.Type()).(*types.Named); ok {
			tn := named.Obj()
			h.Origin = declFile(r.fset, tn)
			if tn.Pkg() != nil {
				h.PkgPath = tn.Pkg().Path()
			}
			h.ID = "class:" + h.PkgPath + "." + tn.Name()
			h.Ancestors = r.ancestors(named)
			r.mu.Lock()
			r.named[h.ID] = named
			r.mu.Unlock()
		} else {
			h.ID = "class:" + h.PkgPath + "." + h.Name
		}
		h.Doc = r.docFor(h.PkgPath, h.Name)

	case *types.Builtin:
		h.Kind = domain.KindBuiltin
		h.ID = "builtin:" + h.Name

	case *types.Var, *types.Const:
		// Vars of function type are callables in disguise (the
		// partially-applied function analog); everything else is data.
		if sig, ok := obj.Type().Underlying().(*types.Signature); ok {
			h.Kind = domain.KindFunc
			h.ID = "func:" + h.PkgPath + "." + h.Name
			h.Doc = r.docFor(h.PkgPath, h.Name)
			fillSignature(&h, sig, qual)
		} else {
			h.Kind = domain.KindOther
			h.ID = "other:" + h.PkgPath + "." + h.Name
		}

	default:
		h.Kind = domain.KindOther
		h.ID = "other:" + h.PkgPath + "." + h.Name
	}
	return h
}

// docFor looks up an indexed doc comment.
func (r *Reflector) docFor(pkgPath, key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[pkgPath][key]
}

// recvName is the receiver's base type name, pointers stripped.
func recvName(sig *types.Signature) string {
	t := sig.Recv().Type()
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := types.Unalias(t).(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

// fillSignature copies parameter and result metadata onto the handle.
func fillSignature(h *domain.Handle, sig *types.Signature, qual types.Qualifier) {
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		h.Params = append(h.Params, domain.Param{
			Name: v.Name(),
			Type: types.TypeString(v.Type(), qual),
		})
	}
	results := sig.Results()
	for i := 0; i < results.Len(); i++ {
		h.Results = append(h.Results, types.TypeString(results.At(i).Type(), qual))
	}
	h.Variadic = sig.Variadic()
}

// ancestors walks embedded struct fields and interface embeddings
// transitively, returning their class IDs.
func (r *Reflector) ancestors(named *types.Named) []string {
	var ids []string
	seen := make(map[string]bool)

	var walk func(t types.Type)
	walk = func(t types.Type) {
		n, ok := types.Unalias(t).(*types.Named)
		if !ok {
			return
		}
		switch under := n.Underlying().(type) {
		case *types.Struct:
			for field := range under.Fields() {
				if !field.Embedded() {
					continue
				}
				ft := field.Type()
				if ptr, isPtr := ft.(*types.Pointer); isPtr {
					ft = ptr.Elem()
				}
				if base, isNamed := types.Unalias(ft).(*types.Named); isNamed {
					addAncestor(base, seen, &ids, walk)
				}
			}
		case *types.Interface:
			for embedded := range under.EmbeddedTypes() {
				if base, isNamed := types.Unalias(embedded).(*types.Named); isNamed {
					addAncestor(base, seen, &ids, walk)
				}
			}
		}
	}
	walk(named)
	return ids
}

func addAncestor(base *types.Named, seen map[string]bool, ids *[]string, walk func(types.Type)) {
	pkgPath := ""
	if base.Obj().Pkg() != nil {
		pkgPath = base.Obj().Pkg().Path()
	}
	id := "class:" + pkgPath + "." + base.Obj().Name()
	if seen[id] {
		return
	}
	seen[id] = true
	*ids = append(*ids, id)
	walk(base)
}
