/*
Package http exposes the arbor engine over a small read-only JSON/text API.

Endpoints:

	GET /tree?target=...     rendered tree as text/plain, knobs via query
	GET /resolve?target=...  resolved handle as JSON
	GET /healthz             liveness probe
	GET /metrics             Prometheus exposition
*/
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

// Engine defines the interface the HTTP adapter needs from arbor.
type Engine interface {
	RenderWith(ctx context.Context, targets string, cfg domain.Config, w io.Writer) error
	Resolve(ctx context.Context, name string) (domain.Handle, error)
	Config() domain.Config
}

// Server implements the HTTP surface.
type Server struct {
	engine Engine
}

// NewHandler creates the HTTP handler for the engine. gatherer may be nil
// to serve the default Prometheus registry.
func NewHandler(engine Engine, gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s := &Server{engine: engine}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.Healthz)
	r.Get("/tree", s.Tree)
	r.Get("/resolve", s.ResolveHandle)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// Healthz handles the liveness probe.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}

// Tree renders a documentation tree for the requested target.
func (s *Server) Tree(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		http.Error(w, "missing 'target' query parameter", http.StatusBadRequest)
		return
	}

	cfg, err := configFromQuery(s.engine.Config(), r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Render into a buffer first so errors still map to proper statuses.
	var buf bytes.Buffer
	if err := s.engine.RenderWith(r.Context(), target, cfg, &buf); err != nil {
		switch {
		case arbor.IsUnresolvable(err):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("render error: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		// Client went away mid-stream; nothing sensible left to do.
		return
	}
}

// ResolveHandle returns the resolved handle for a single name as JSON.
func (s *Server) ResolveHandle(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		http.Error(w, "missing 'target' query parameter", http.StatusBadRequest)
		return
	}

	h, err := s.engine.Resolve(r.Context(), target)
	if err != nil {
		if arbor.IsUnresolvable(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("resolve error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h); err != nil {
		return
	}
}

// configFromQuery overlays query parameters on the engine's defaults.
// Malformed values are a client error, reported before traversal begins.
func configFromQuery(cfg domain.Config, r *http.Request) (domain.Config, error) {
	q := r.URL.Query()

	ints := map[string]*int{
		"level":     &cfg.Level,
		"signature": &cfg.Signature,
		"docstring": &cfg.Docstring,
		"info":      &cfg.Info,
		"width":     &cfg.Width,
	}
	for key, dst := range ints {
		if raw := q.Get(key); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return cfg, fmt.Errorf("invalid %q: %q is not an integer", key, raw)
			}
			*dst = v
		}
	}

	bools := map[string]*bool{
		"subpackages": &cfg.Subpackages,
		"modules":     &cfg.Modules,
		"private":     &cfg.Private,
		"dunders":     &cfg.Dunders,
		"tests":       &cfg.Tests,
		"dense":       &cfg.Dense,
	}
	for key, dst := range bools {
		if raw := q.Get(key); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return cfg, fmt.Errorf("invalid %q: %q is not a boolean", key, raw)
			}
			*dst = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
