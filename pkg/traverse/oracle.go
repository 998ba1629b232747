package traverse

import (
	"slices"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// ignoredNames are reflection artifacts that never belong in documentation:
// the blank identifier, reflected initializers, the builtin pseudo-package,
// and linker-generated init tasks.
var ignoredNames = map[string]struct{}{
	"_":         {},
	"init":      {},
	"builtin":   {},
	".inittask": {},
}

// ShouldVisit decides whether a candidate child is worth visiting at all,
// independent of who its parent is. Checks run in priority order; the first
// failing check wins.
func ShouldVisit(child domain.Handle, cfg domain.Config) bool {
	if _, ok := ignoredNames[child.Name]; ok {
		return false
	}
	// The universe type-of-all-types would explode into the entire type
	// hierarchy.
	if child.ID == domain.TypeRootID {
		return false
	}
	if child.IsTest() && !cfg.Tests {
		return false
	}
	if child.IsPrivate() && !cfg.Private {
		return false
	}
	if child.IsDunder() && !cfg.Dunders {
		return false
	}
	return child.Inspectable()
}

// ShouldDescend decides whether traversal may structurally descend from obj
// to child. All rules must hold; any single failure rejects descent.
func ShouldDescend(obj, child domain.Handle, cfg domain.Config) bool {
	objNS := obj.Kind == domain.KindPackage || obj.Kind == domain.KindModule
	childNS := child.Kind == domain.KindPackage || child.Kind == domain.KindModule

	// (1) Parent is a namespace (package or file), child is a declaration.
	if objNS && !childNS {
		// A builtin reachable only by alias from another package.
		if child.Kind == domain.KindBuiltin && child.PkgPath != obj.PkgPath {
			return false
		}
		// The child's defining unit must lie within obj's subtree. This is
		// what stops an imported or aliased name from dragging in a whole
		// unrelated library.
		if !definedWithin(child, obj) {
			return false
		}
		if obj.Kind == domain.KindModule {
			// Plain files own only their own declarations.
			if child.Origin != obj.Origin {
				return false
			}
		} else {
			// Package roots aggregate, but defer to the more specific path
			// when the configuration will discover it anyway.
			if properDirWithin(child.Dir(), obj.Dir()) && cfg.Subpackages {
				return false
			}
			if child.Dir() == obj.Dir() && cfg.Modules {
				return false
			}
		}
	}

	// (2) Both parent and child are namespaces.
	if objNS && childNS {
		// Going up: child's namespace strictly contains obj's.
		if child.PkgPath != obj.PkgPath && pathWithin(obj.PkgPath, child.PkgPath) {
			return false
		}
		// Sideways: child's namespace is not nested within obj's.
		if child.PkgPath != obj.PkgPath && !pathWithin(child.PkgPath, obj.PkgPath) {
			return false
		}
		if !dirWithin(child.Dir(), obj.Dir()) {
			return false
		}
		// Self loop.
		if child.Origin != "" && child.Origin == obj.Origin {
			return false
		}
		// A plain file never jumps into a package root.
		if child.IsPackageRoot() && !obj.IsPackageRoot() {
			return false
		}
		if child.Kind == domain.KindPackage && properDirWithin(child.Dir(), obj.Dir()) && !cfg.Subpackages {
			return false
		}
		if child.Kind == domain.KindModule && !cfg.Modules {
			return false
		}
		if child.PkgPath == obj.PkgPath && !cfg.Modules {
			return false
		}
	}

	// (3) The child is a named type.
	if child.Kind == domain.KindClass {
		if !definedWithin(child, obj) {
			return false
		}
		// Never descend back into an ancestor of the type we came through.
		if obj.ID != "" && slices.Contains(child.Ancestors, obj.ID) {
			return false
		}
		// Types gain children via their defining namespace, not via other
		// types: a Car must not appear to contain its Wheel field's type.
		if obj.Kind == domain.KindClass {
			return false
		}
	}

	return true
}

// definedWithin reports whether child's defining unit lies inside obj's
// namespace subtree. Builtins (no origin) only count within their own
// package.
func definedWithin(child, obj domain.Handle) bool {
	if child.Dir() == "" || obj.Dir() == "" {
		return child.PkgPath != "" && child.PkgPath == obj.PkgPath
	}
	return dirWithin(child.Dir(), obj.Dir())
}

// dirWithin reports whether inner equals outer or is nested below it.
func dirWithin(inner, outer string) bool {
	if inner == "" || outer == "" {
		return inner == outer
	}
	return inner == outer || strings.HasPrefix(inner, outer+"/") ||
		strings.HasPrefix(inner, outer+`\`)
}

// properDirWithin reports whether inner is strictly below outer.
func properDirWithin(inner, outer string) bool {
	return inner != outer && dirWithin(inner, outer)
}

// pathWithin reports whether import path inner equals outer or is nested
// below it.
func pathWithin(inner, outer string) bool {
	return inner == outer || strings.HasPrefix(inner, outer+"/")
}
