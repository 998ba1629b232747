package render

import (
	"slices"
	"strings"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
)

// row is one (path, last-at-depth) pair, the shape the traverser emits.
type row struct {
	path []string
	last []bool
}

// nodeStream materializes a traversal stream from rows.
func nodeStream(rows ...row) *Peeker[domain.Node] {
	nodes := make([]domain.Node, len(rows))
	for i, r := range rows {
		path := make([]domain.Handle, len(r.path))
		for j, name := range r.path {
			kind := domain.KindFunc
			if j < len(r.path)-1 {
				kind = domain.KindPackage
			}
			path[j] = domain.Handle{Name: name, Kind: kind}
		}
		nodes[i] = domain.Node{Path: path, LastAtDepth: r.last}
	}
	return NewPeeker(slices.Values(nodes))
}

// bareConfig renders names only: no signatures, docstrings, or info tags.
func bareConfig() domain.Config {
	return domain.Config{Level: 999, Width: 80}
}

func renderLines(t *testing.T, tp *TreePrinter, p *Peeker[domain.Node]) []string {
	t.Helper()
	defer p.Stop()
	var lines []string
	for line := range tp.Lines(p) {
		lines = append(lines, line)
	}
	return lines
}

func TestTreePrinterRoundTrip(t *testing.T) {
	p := nodeStream(
		row{[]string{"root"}, []bool{true}},
		row{[]string{"root", "A"}, []bool{true, false}},
		row{[]string{"root", "A", "a"}, []bool{true, false, false}},
		row{[]string{"root", "A", "b"}, []bool{true, false, false}},
		row{[]string{"root", "A", "c"}, []bool{true, false, true}},
		row{[]string{"root", "B"}, []bool{true, true}},
		row{[]string{"root", "B", "a"}, []bool{true, true, false}},
		row{[]string{"root", "B", "b"}, []bool{true, true, true}},
	)

	tp, err := NewTreePrinter(bareConfig())
	if err != nil {
		t.Fatalf("NewTreePrinter: %v", err)
	}

	want := []string{
		"root",
		"├── A",
		"│   ├── a",
		"│   ├── b",
		"│   └── c",
		"└── B",
		"    ├── a",
		"    └── b",
	}
	got := renderLines(t, tp, p)
	if !slices.Equal(got, want) {
		t.Errorf("rendered:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTreePrinterDeepUnwind(t *testing.T) {
	// The stream pops two levels at once between i and B.
	p := nodeStream(
		row{[]string{"root"}, []bool{true}},
		row{[]string{"root", "A"}, []bool{true, false}},
		row{[]string{"root", "A", "x"}, []bool{true, false, true}},
		row{[]string{"root", "A", "x", "i"}, []bool{true, false, true, true}},
		row{[]string{"root", "B"}, []bool{true, true}},
	)

	tp, err := NewTreePrinter(bareConfig())
	if err != nil {
		t.Fatalf("NewTreePrinter: %v", err)
	}

	want := []string{
		"root",
		"├── A",
		"│   └── x",
		"│       └── i",
		"└── B",
	}
	got := renderLines(t, tp, p)
	if !slices.Equal(got, want) {
		t.Errorf("rendered:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTreePrinterSingleChain(t *testing.T) {
	p := nodeStream(
		row{[]string{"root"}, []bool{true}},
		row{[]string{"root", "only"}, []bool{true, true}},
	)

	tp, err := NewTreePrinter(bareConfig())
	if err != nil {
		t.Fatalf("NewTreePrinter: %v", err)
	}

	want := []string{"root", "└── only"}
	got := renderLines(t, tp, p)
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTreePrinterEmptyStream(t *testing.T) {
	tp, err := NewTreePrinter(bareConfig())
	if err != nil {
		t.Fatalf("NewTreePrinter: %v", err)
	}
	if got := renderLines(t, tp, nodeStream()); got != nil {
		t.Errorf("empty stream rendered %q", got)
	}
}

func TestTreePrinterDocstringLine(t *testing.T) {
	root := domain.Handle{Name: "root", Kind: domain.KindPackage}
	leaf := domain.Handle{Name: "Leaf", Kind: domain.KindClass, Doc: "Leaf is documented."}
	p := NewPeeker(slices.Values([]domain.Node{
		{Path: []domain.Handle{root}, LastAtDepth: []bool{true}},
		{Path: []domain.Handle{root, leaf}, LastAtDepth: []bool{true, true}},
	}))

	cfg := domain.Default() // info 2, docstring 2
	cfg.Signature = 0
	tp, err := NewTreePrinter(cfg)
	if err != nil {
		t.Fatalf("NewTreePrinter: %v", err)
	}

	// The docstring reuses the prefix with the connector swapped for its
	// continuation, so the text nests under the node.
	want := []string{
		"root",
		"└── Leaf",
		"    Leaf is documented.",
	}
	got := renderLines(t, tp, p)
	if !slices.Equal(got, want) {
		t.Errorf("rendered:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTreePrinterDocstringUnderBranch(t *testing.T) {
	root := domain.Handle{Name: "root", Kind: domain.KindPackage}
	first := domain.Handle{Name: "First", Kind: domain.KindClass, Doc: "First doc."}
	second := domain.Handle{Name: "Second", Kind: domain.KindClass}
	p := NewPeeker(slices.Values([]domain.Node{
		{Path: []domain.Handle{root}, LastAtDepth: []bool{true}},
		{Path: []domain.Handle{root, first}, LastAtDepth: []bool{true, false}},
		{Path: []domain.Handle{root, second}, LastAtDepth: []bool{true, true}},
	}))

	cfg := domain.Default()
	cfg.Signature = 0
	tp, err := NewTreePrinter(cfg)
	if err != nil {
		t.Fatalf("NewTreePrinter: %v", err)
	}

	want := []string{
		"root",
		"├── First",
		"│   First doc.",
		"└── Second",
	}
	got := renderLines(t, tp, p)
	if !slices.Equal(got, want) {
		t.Errorf("rendered:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTreePrinterStyler(t *testing.T) {
	p := nodeStream(
		row{[]string{"root"}, []bool{true}},
		row{[]string{"root", "kid"}, []bool{true, true}},
	)

	tp, err := NewTreePrinter(bareConfig(), WithStyler(func(kind domain.Kind, text string) string {
		return "<" + text + ">"
	}))
	if err != nil {
		t.Fatalf("NewTreePrinter: %v", err)
	}

	want := []string{"<root>", "└── <kid>"}
	got := renderLines(t, tp, p)
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTreePrinterRejectsInvalidConfig(t *testing.T) {
	cfg := bareConfig()
	cfg.Width = 5
	if _, err := NewTreePrinter(cfg); err == nil {
		t.Fatal("NewTreePrinter accepted an invalid configuration")
	}
}
