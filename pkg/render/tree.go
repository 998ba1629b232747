package render

import (
	"iter"
	"slices"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Connector glyphs. A branch marks a node with later siblings, vertical
// continues a still-open ancestor level, last marks the final sibling, and
// blank fills the level once its last child has been emitted.
const (
	glyphBranch   = "├──"
	glyphVertical = "│  "
	glyphLast     = "└──"
	glyphBlank    = "   "
)

// Styler decorates the visible text of a node, e.g. with terminal colors.
type Styler func(kind domain.Kind, text string) string

// Printer consumes a traversal stream through a Peeker and emits printable
// lines.
type Printer interface {
	Lines(p *Peeker[domain.Node]) iter.Seq[string]
}

// Row is one formatted traversal node: the connector prefix decided for all
// ancestor levels (the root contributes an empty element) plus the node.
type Row struct {
	Prefix []string
	Node   domain.Node
}

// TreePrinter renders the classic box-drawing tree.
type TreePrinter struct {
	cfg   domain.Config
	fmt   formatter
	style Styler
}

// PrinterOption configures a printer.
type PrinterOption func(*TreePrinter)

// WithStyler sets a text decorator applied to every node line.
func WithStyler(s Styler) PrinterOption {
	return func(tp *TreePrinter) {
		tp.style = s
	}
}

// NewTreePrinter validates the configuration and returns a tree printer.
func NewTreePrinter(cfg domain.Config, opts ...PrinterOption) (*TreePrinter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tp := &TreePrinter{cfg: cfg, fmt: formatter{cfg: cfg}}
	for _, opt := range opts {
		opt(tp)
	}
	return tp, nil
}

// FormatRows assigns connector prefixes to every node of the stream in one
// forward pass with single-item lookahead. The stream must be a pre-order
// linearization whose LastAtDepth vectors match the path depths; the
// vectors are exactly what lets one token of lookahead suffice.
func (tp *TreePrinter) FormatRows(p *Peeker[domain.Node]) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		// The root contributes no connector glyph of its own.
		first, ok := p.Peek()
		if !ok {
			return
		}
		if first.Depth() == 1 {
			p.Next()
			if !yield(Row{Prefix: []string{""}, Node: first}) {
				return
			}
		}
		tp.siblings(p, 1, []string{""}, yield)
	}
}

// siblings consumes all nodes at the given depth, recursing for children
// and unwinding when the stream moves to a shallower level. Returns false
// once the consumer stops pulling.
func (tp *TreePrinter) siblings(p *Peeker[domain.Node], depth int, prefix []string, yield func(Row) bool) bool {
	for {
		node, ok := p.Next()
		if !ok {
			return true
		}

		final := depth >= len(node.LastAtDepth) || node.LastAtDepth[depth]
		glyph := glyphBranch
		if final {
			glyph = glyphLast
		}
		if !yield(Row{Prefix: append(slices.Clone(prefix), glyph), Node: node}) {
			return false
		}

		next, ok := p.Peek()
		if !ok {
			return true
		}
		switch {
		case next.Depth() > node.Depth():
			continuation := glyphVertical
			if final {
				continuation = glyphBlank
			}
			if !tp.siblings(p, depth+1, append(slices.Clone(prefix), continuation), yield) {
				return false
			}
			// This level's last branch is exhausted; hand control back to
			// the parent loop.
			if final {
				return true
			}
		case next.Depth() < node.Depth():
			return true
		default:
			// Plain sibling; keep looping.
		}
	}
}

// Lines renders rows into printable text, optionally followed by a
// docstring line that reuses the prefix with the node's own glyph replaced
// by its continuation counterpart, so the text nests under the node without
// implying a further sibling.
func (tp *TreePrinter) Lines(p *Peeker[domain.Node]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for row := range tp.FormatRows(p) {
			handle := row.Node.Handle()
			width := tp.textWidth(row.Prefix)

			text := tp.fmt.nodeText(handle, width)
			if tp.style != nil {
				text = tp.style(handle.Kind, text)
			}
			if !yield(joinRow(row.Prefix, text)) {
				return
			}

			if doc := tp.fmt.docText(handle, width); doc != "" {
				if !yield(joinRow(docPrefix(row.Prefix), doc)) {
					return
				}
			}
		}
	}
}

// textWidth is the room left for node text after the connector columns.
func (tp *TreePrinter) textWidth(prefix []string) int {
	width := tp.cfg.Width - 4*(len(prefix)-1)
	if width < 16 {
		width = 16
	}
	return width
}

// docPrefix swaps the node's own glyph for its continuation counterpart.
func docPrefix(prefix []string) []string {
	out := slices.Clone(prefix)
	switch out[len(out)-1] {
	case glyphBranch:
		out[len(out)-1] = glyphVertical
	case glyphLast:
		out[len(out)-1] = glyphBlank
	}
	return out
}

// joinRow flattens a prefix and node text into one line. The root's empty
// prefix element is dropped so the root renders at column zero.
func joinRow(prefix []string, text string) string {
	parts := make([]string, 0, len(prefix))
	for _, el := range prefix {
		if el != "" {
			parts = append(parts, el)
		}
	}
	parts = append(parts, text)
	return strings.Join(parts, " ")
}
