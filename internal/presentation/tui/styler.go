// Package tui holds the terminal presentation helpers: node coloring,
// markdown rendering and output width detection.
package tui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/render"
)

// Kind color palette, tuned to stay readable on light and dark backgrounds.
var kindColors = map[domain.Kind]string{
	domain.KindPackage: "#818cf8",
	domain.KindModule:  "#a78bfa",
	domain.KindClass:   "#c084fc",
	domain.KindFunc:    "#34d399",
	domain.KindMethod:  "#2dd4bf",
	domain.KindBuiltin: "#fbbf24",
}

// NewStyler returns a render.Styler that colors node text by kind.
// On a dumb terminal it degrades to the identity function.
func NewStyler() render.Styler {
	p := termenv.ColorProfile()
	if p == termenv.Ascii {
		return nil
	}
	return func(kind domain.Kind, text string) string {
		hex, ok := kindColors[kind]
		if !ok {
			return text
		}
		return termenv.String(text).Foreground(p.Color(hex)).String()
	}
}

// Width reports the terminal width of stdout, or fallback when stdout is
// not a terminal or too narrow to render anything useful.
func Width(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 50 {
		return fallback
	}
	if w > 500 {
		return 500
	}
	return w
}
