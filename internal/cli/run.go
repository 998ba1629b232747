package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/adapters/gopkg"
	"github.com/aretw0/arbor/pkg/domain"
)

// TreeOptions contains all the configuration for the tree command.
type TreeOptions struct {
	Dir     string
	Targets []string
	Config  domain.Config
	Printer string
	Debug   bool
	NoColor bool
}

// RunTree renders one tree per target to stdout.
func RunTree(ctx context.Context, opts TreeOptions) error {
	logger := createLogger(opts.Debug)

	engine, err := createEngine(opts.Dir, opts.Config, opts.Printer, !opts.NoColor, logger)
	if err != nil {
		return err
	}

	targets := strings.Join(opts.Targets, " ")
	if strings.TrimSpace(targets) == "" {
		targets = arbor.SurveyTarget
	}
	return engine.Render(ctx, targets, os.Stdout)
}

// RunDoc resolves a single target and pretty-prints its full doc comment
// as markdown.
func RunDoc(ctx context.Context, dir, target string, width int, debug bool) error {
	logger := createLogger(debug)

	refl := gopkg.New(gopkg.WithDir(dir), gopkg.WithLogger(logger))
	h, err := refl.Resolve(ctx, target)
	if err != nil {
		return err
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", h.Name)
	if h.Callable() {
		fmt.Fprintf(&md, "```go\n%s%s\n```\n\n", h.Name, signatureText(h))
	}
	if h.Doc == "" {
		md.WriteString("_No documentation._\n")
	} else {
		md.WriteString(h.Doc)
		md.WriteString("\n")
	}

	render := tui.NewRenderer(width)
	out, err := render(md.String())
	if err != nil {
		// Degrade to plain text rather than swallowing the content.
		fmt.Print(md.String())
		return nil
	}
	fmt.Print(out)
	return nil
}

func signatureText(h domain.Handle) string {
	var parts []string
	for _, p := range h.Params {
		t := p.Type
		if p.Name != "" && t != "" {
			t = p.Name + " " + t
		} else if t == "" {
			t = p.Name
		}
		parts = append(parts, t)
	}
	sig := "(" + strings.Join(parts, ", ") + ")"
	switch len(h.Results) {
	case 0:
	case 1:
		sig += " " + h.Results[0]
	default:
		sig += " (" + strings.Join(h.Results, ", ") + ")"
	}
	return sig
}
