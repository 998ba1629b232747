// Package mcp exposes the arbor engine as a Model Context Protocol server
// so agent hosts can request documentation trees for Go symbols.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

// Engine defines the interface required by the MCP server to interact with arbor.
type Engine interface {
	RenderWith(ctx context.Context, targets string, cfg domain.Config, w io.Writer) error
	Resolve(ctx context.Context, name string) (domain.Handle, error)
	Config() domain.Config
}

// Server wraps the arbor Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: render_tree
	renderTool := mcp.NewTool("render_tree",
		mcp.WithDescription("Render the documentation tree for Go packages, files, types, functions or methods. Accepts import paths and dotted symbol paths; '*' surveys every top-level package of the module."),
		mcp.WithString("targets", mcp.Required(), mcp.Description("Whitespace-separated target names, e.g. 'net/http' or 'io.Reader.Read'")),
		mcp.WithNumber("level", mcp.Description("Maximum nesting depth to descend (default unlimited)")),
		mcp.WithNumber("signature", mcp.Description("Signature verbosity 0-4")),
		mcp.WithNumber("docstring", mcp.Description("Doc comment verbosity 0-2")),
		mcp.WithNumber("info", mcp.Description("Per-node info verbosity 0-4")),
		mcp.WithNumber("width", mcp.Description("Output width 50-500")),
		mcp.WithBoolean("subpackages", mcp.Description("Descend into subpackages")),
		mcp.WithBoolean("modules", mcp.Description("List individual source files under packages")),
		mcp.WithBoolean("private", mcp.Description("Include unexported members")),
		mcp.WithBoolean("dunders", mcp.Description("Include generated __name__-style artifacts")),
		mcp.WithBoolean("tests", mcp.Description("Include test members")),
		mcp.WithBoolean("dense", mcp.Description("Emit dotted paths instead of a box-drawing tree")),
	)
	s.mcpServer.AddTool(renderTool, s.handleRenderTree)

	// TOOL: resolve_symbol
	resolveTool := mcp.NewTool("resolve_symbol",
		mcp.WithDescription("Resolve a single name to its documented handle, including kind, origin file, signature and doc comment."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Import path or dotted symbol path")),
	)
	s.mcpServer.AddTool(resolveTool, s.handleResolve)
}

func (s *Server) handleRenderTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	targets, _ := args["targets"].(string)
	if strings.TrimSpace(targets) == "" {
		return mcp.NewToolResultError("missing required argument 'targets'"), nil
	}

	cfg := s.engine.Config()
	overlayInt(args, "level", &cfg.Level)
	overlayInt(args, "signature", &cfg.Signature)
	overlayInt(args, "docstring", &cfg.Docstring)
	overlayInt(args, "info", &cfg.Info)
	overlayInt(args, "width", &cfg.Width)
	overlayBool(args, "subpackages", &cfg.Subpackages)
	overlayBool(args, "modules", &cfg.Modules)
	overlayBool(args, "private", &cfg.Private)
	overlayBool(args, "dunders", &cfg.Dunders)
	overlayBool(args, "tests", &cfg.Tests)
	if dense, _ := args["dense"].(bool); dense {
		cfg.Dense = true
	}
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf strings.Builder
	if err := s.engine.RenderWith(ctx, targets, cfg, &buf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := request.GetString("target", "")
	if target == "" {
		return mcp.NewToolResultError("missing required argument 'target'"), nil
	}

	h, err := s.engine.Resolve(ctx, target)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolve failed: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(h)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// JSON numbers arrive as float64.
func overlayInt(args map[string]interface{}, key string, dst *int) {
	switch v := args[key].(type) {
	case float64:
		*dst = int(v)
	case int:
		*dst = v
	}
}

func overlayBool(args map[string]interface{}, key string, dst *bool) {
	if v, ok := args[key].(bool); ok {
		*dst = v
	}
}
