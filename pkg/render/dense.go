package render

import (
	"iter"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// DensePrinter emits one dotted path per node, without connectors. Useful
// for grepping and for piping into other tools.
type DensePrinter struct {
	cfg domain.Config
	fmt formatter
}

// NewDensePrinter validates the configuration and returns a dense printer.
func NewDensePrinter(cfg domain.Config) (*DensePrinter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &DensePrinter{cfg: cfg, fmt: formatter{cfg: cfg}}, nil
}

// Lines renders each node as ancestor.path.name with the configured
// signature and docstring detail appended.
func (dp *DensePrinter) Lines(p *Peeker[domain.Node]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			node, ok := p.Next()
			if !ok {
				return
			}
			handle := node.Handle()
			text := strings.Join(node.Names(), ".") + Signature(handle, dp.cfg.Signature, dp.cfg.Width)
			if doc := dp.fmt.docText(handle, dp.cfg.Width); doc != "" {
				text += "  " + doc
			}
			if !yield(Truncate(text, dp.cfg.Width)) {
				return
			}
		}
	}
}
