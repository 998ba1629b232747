package render

import (
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Ellipsis marks truncated signatures and docstrings.
const Ellipsis = "…"

// Truncate shortens s to at most width runes, ending with an ellipsis when
// anything was cut. Width overflow is always recovered locally, never an
// error.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return Ellipsis
	}
	return string(runes[:width-1]) + Ellipsis
}

// Signature renders a parenthesized parameter list for a callable handle.
// Verbosity 0 yields nothing, 1 an opaque arity hint, 2 parameter names,
// 3 names with types, 4 the full signature including results. Non-callables
// always yield the empty string.
func Signature(h domain.Handle, verbosity, width int) string {
	if verbosity <= 0 || !h.Callable() {
		return ""
	}

	var sig string
	switch verbosity {
	case 1:
		if len(h.Params) == 0 {
			sig = "()"
		} else {
			sig = "(...)"
		}
	case 2:
		names := make([]string, len(h.Params))
		for i, p := range h.Params {
			names[i] = paramName(p)
		}
		sig = "(" + strings.Join(names, ", ") + ")"
	default:
		parts := make([]string, len(h.Params))
		for i, p := range h.Params {
			typ := p.Type
			if h.Variadic && i == len(h.Params)-1 {
				typ = "..." + strings.TrimPrefix(typ, "[]")
			}
			if typ == "" {
				parts[i] = paramName(p)
			} else {
				parts[i] = paramName(p) + " " + typ
			}
		}
		sig = "(" + strings.Join(parts, ", ") + ")"
		if verbosity >= 4 && len(h.Results) > 0 {
			if len(h.Results) == 1 {
				sig += " " + h.Results[0]
			} else {
				sig += " (" + strings.Join(h.Results, ", ") + ")"
			}
		}
	}
	return Truncate(sig, width)
}

func paramName(p domain.Param) string {
	if p.Name != "" {
		return p.Name
	}
	// Unnamed parameters still need a stable placeholder.
	return "_"
}

// Summary reduces a doc comment to a single best-effort line. Verbosity 1
// keeps the first sentence, 2 the first line; 0 and missing docs yield the
// empty string.
func Summary(doc string, verbosity, width int) string {
	if verbosity <= 0 {
		return ""
	}
	line := firstLine(doc)
	if line == "" {
		return ""
	}
	if verbosity == 1 {
		if idx := strings.Index(line, ". "); idx >= 0 {
			line = line[:idx+1]
		}
	}
	return Truncate(line, width)
}

func firstLine(doc string) string {
	for line := range strings.Lines(doc) {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

// formatter assembles the visible text for one handle according to the
// configured verbosity knobs.
type formatter struct {
	cfg domain.Config
}

// nodeText is the node's own line: name, then signature, then progressively
// more general information as the info knob rises.
func (f formatter) nodeText(h domain.Handle, width int) string {
	if f.cfg.Info <= 0 {
		return Truncate(h.Name, width)
	}
	text := h.Name + Signature(h, f.cfg.Signature, f.cfg.Width)
	if f.cfg.Info >= 3 {
		text += " <" + string(h.Kind) + ">"
	}
	if f.cfg.Info >= 4 && h.Origin != "" {
		text += " " + h.Origin
	}
	return Truncate(text, width)
}

// docText is the optional follow-up line carrying the docstring summary.
func (f formatter) docText(h domain.Handle, width int) string {
	if f.cfg.Info < 2 {
		return ""
	}
	return Summary(h.Doc, f.cfg.Docstring, width)
}
