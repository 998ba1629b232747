package render

import (
	"slices"
	"strings"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestDensePrinter(t *testing.T) {
	root := domain.Handle{Name: "top", Kind: domain.KindPackage}
	widget := domain.Handle{Name: "Widget", Kind: domain.KindClass}
	method := domain.Handle{
		Name: "Render", Kind: domain.KindMethod,
		Params: []domain.Param{{Name: "w", Type: "io.Writer"}},
		Doc:    "Render draws the widget.",
	}
	p := NewPeeker(slices.Values([]domain.Node{
		{Path: []domain.Handle{root}, LastAtDepth: []bool{true}},
		{Path: []domain.Handle{root, widget}, LastAtDepth: []bool{true, true}},
		{Path: []domain.Handle{root, widget, method}, LastAtDepth: []bool{true, true, true}},
	}))
	defer p.Stop()

	cfg := domain.Default() // signature 1, docstring 2, info 2
	dp, err := NewDensePrinter(cfg)
	if err != nil {
		t.Fatalf("NewDensePrinter: %v", err)
	}

	var lines []string
	for line := range dp.Lines(p) {
		lines = append(lines, line)
	}

	want := []string{
		"top",
		"top.Widget",
		"top.Widget.Render(...)  Render draws the widget.",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("rendered:\n%s\nwant:\n%s", strings.Join(lines, "\n"), strings.Join(want, "\n"))
	}
}

func TestDensePrinterTruncatesToWidth(t *testing.T) {
	long := domain.Handle{Name: strings.Repeat("x", 200), Kind: domain.KindPackage}
	p := NewPeeker(slices.Values([]domain.Node{
		{Path: []domain.Handle{long}, LastAtDepth: []bool{true}},
	}))
	defer p.Stop()

	cfg := domain.Default()
	cfg.Width = 50
	dp, err := NewDensePrinter(cfg)
	if err != nil {
		t.Fatalf("NewDensePrinter: %v", err)
	}

	for line := range dp.Lines(p) {
		if n := len([]rune(line)); n > 50 {
			t.Errorf("line exceeds width: %d runes", n)
		}
	}
}
