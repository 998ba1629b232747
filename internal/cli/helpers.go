package cli

import (
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/adapters/gopkg"
	"github.com/aretw0/arbor/pkg/domain"
)

// createLogger configures the application logger.
// Diagnostics go to Stderr so they never mix with the rendered tree.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// createEngine initializes an arbor engine with standard CLI conventions:
// a go/packages backend rooted at dir, optional terminal colors, and the
// resolved configuration.
func createEngine(dir string, cfg domain.Config, printer string, color bool, logger *slog.Logger) (*arbor.Engine, error) {
	opts := []arbor.Option{
		arbor.WithConfig(cfg),
		arbor.WithLogger(logger),
		arbor.WithPrinter(printer),
		arbor.WithReflector(gopkg.New(gopkg.WithDir(dir), gopkg.WithLogger(logger))),
	}
	if color {
		if styler := tui.NewStyler(); styler != nil {
			opts = append(opts, arbor.WithStyler(styler))
		}
	}
	return arbor.New(opts...)
}
