package domain

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies what a Handle refers to.
type Kind string

const (
	// KindPackage is a directory-backed Go package. Packages are always
	// namespace roots: they aggregate declarations from all of their files.
	KindPackage Kind = "package"
	// KindModule is a single source file within a package.
	KindModule Kind = "module"
	// KindClass is a named type with a (possibly empty) method set.
	KindClass Kind = "class"
	// KindFunc is a package-level function, including vars of function type.
	KindFunc Kind = "func"
	// KindMethod is a function bound to a receiver.
	KindMethod Kind = "method"
	// KindBuiltin is a callable without a resolvable source position.
	KindBuiltin Kind = "builtin"
	// KindOther is a plain data value. Never traversed.
	KindOther Kind = "other"
)

// TypeRootID identifies the universe "type of all types". Descending into it
// would explode into the entire type hierarchy, so the oracle rejects it
// unconditionally.
const TypeRootID = "builtin:type"

// Param is a single formal parameter of a callable handle.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Handle is an opaque reference to a runtime entity. Reflector adapters
// produce Handles; the traversal core only reads them.
type Handle struct {
	// ID is a stable identity usable for deduplication. Empty when the
	// backend cannot produce one; consumers fall back to name identity.
	ID string `json:"id,omitempty"`

	// Name is the externally visible name. May be assigned post-hoc by the
	// enumerator for entities that lack one (synthetic naming).
	Name string `json:"name"`

	Kind Kind `json:"kind"`

	// Origin is the defining file for declarations and files, or the
	// directory itself for packages. Empty for builtins.
	Origin string `json:"origin,omitempty"`

	// PkgPath is the import path of the package that defines the entity.
	PkgPath string `json:"pkg_path,omitempty"`

	// Doc is the raw doc comment, if any.
	Doc string `json:"doc,omitempty"`

	// Signature metadata for callables.
	Params   []Param  `json:"params,omitempty"`
	Results  []string `json:"results,omitempty"`
	Variadic bool     `json:"variadic,omitempty"`

	// Ancestors holds the IDs of embedded (base) types, transitively.
	// Only populated for KindClass.
	Ancestors []string `json:"ancestors,omitempty"`
}

// Dir returns the directory the handle's origin lives in, or "" for
// builtins. For packages the origin already is the directory.
func (h Handle) Dir() string {
	if h.Origin == "" {
		return ""
	}
	if h.Kind == KindPackage {
		return h.Origin
	}
	return filepath.Dir(h.Origin)
}

// IsContainer reports whether the handle can have traversable children.
func (h Handle) IsContainer() bool {
	switch h.Kind {
	case KindPackage, KindModule, KindClass:
		return true
	}
	return false
}

// IsPackageRoot reports whether the handle is a namespace entry point that
// may aggregate declarations defined in other files.
func (h Handle) IsPackageRoot() bool {
	return h.Kind == KindPackage
}

// Callable reports whether the handle can be invoked.
func (h Handle) Callable() bool {
	switch h.Kind {
	case KindFunc, KindMethod, KindBuiltin:
		return true
	}
	return false
}

// Inspectable reports whether the entity is worth visiting at all. Plain
// data values are excluded; everything the reflector managed to classify
// as a package, file, type, or callable is fair game.
func (h Handle) Inspectable() bool {
	return h.Kind != KindOther && h.Kind != ""
}

// IsDunder reports whether the name both starts and ends with a double
// underscore. Such names show up in generated and cgo-derived code.
func (h Handle) IsDunder() bool {
	return len(h.Name) >= 4 && strings.HasPrefix(h.Name, "__") && strings.HasSuffix(h.Name, "__")
}

// IsPrivate reports whether the handle is hidden from the default view:
// a single leading underscore, an unexported declaration name, or a
// namespace path routed through internal/ or a _-prefixed segment.
func (h Handle) IsPrivate() bool {
	if strings.HasPrefix(h.Name, "_") && !h.IsDunder() {
		return true
	}
	if hiddenNamespace(h.PkgPath) {
		return true
	}
	switch h.Kind {
	case KindClass, KindFunc, KindMethod:
		r, _ := utf8.DecodeRuneInString(h.Name)
		return r != utf8.RuneError && unicode.IsLower(r)
	}
	return false
}

// IsTest reports whether the handle looks like test scaffolding.
func (h Handle) IsTest() bool {
	name := strings.ToLower(h.Name)
	for _, pattern := range []string{"test", "_test", "__test"} {
		if strings.HasPrefix(name, pattern) {
			return true
		}
	}
	return strings.HasSuffix(name, "_test")
}

// hiddenNamespace reports whether an import path contains a segment that
// marks it as private (internal/ subtrees and _-prefixed directories).
func hiddenNamespace(pkgPath string) bool {
	if pkgPath == "" {
		return false
	}
	for _, seg := range strings.Split(pkgPath, "/") {
		if seg == "internal" || strings.HasPrefix(seg, "_") {
			return true
		}
	}
	return false
}
