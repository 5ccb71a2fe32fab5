// Package server exposes focus-border operations as MCP tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/focus-border/internal/app"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server around a running App.
type Server struct {
	app *app.App
	mcp *mcpserver.MCPServer
	log *slog.Logger
}

// New creates a server with all tools registered. The App's loop must be
// running for tool calls to complete.
func New(a *app.App, log *slog.Logger) *Server {
	s := &Server{
		app: a,
		mcp: mcpserver.NewMCPServer("focus-border", version.Version),
		log: logging.WithComponent(log, "server"),
	}
	s.registerTools()
	return s
}

// Serve runs the configured transport until ctx is done.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		go func() {
			<-ctx.Done()
			if err := httpServer.Shutdown(context.Background()); err != nil {
				s.log.Warn("http shutdown", "error", err)
			}
		}()
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.log.Info("serving MCP over streamable HTTP", "addr", addr)
		if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// highlight
	s.mcp.AddTool(
		mcp.NewTool("highlight",
			mcp.WithDescription("Draw the focus border around a window. Optionally raise the window first."),
			mcp.WithNumber("window-id", mcp.Required(), mcp.Description("System window ID")),
			mcp.WithNumber("pid", mcp.Description("Owning process ID (narrows the lookup)")),
			mcp.WithBoolean("raise", mcp.Description("Bring the window to the front before highlighting")),
			mcp.WithBoolean("wait", mcp.Description("Return only after the border has been hidden again")),
		),
		s.handleHighlight,
	)

	// status
	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report the watcher and highlight state"),
		),
		s.handleStatus,
	)

	// displays
	s.mcp.AddTool(
		mcp.NewTool("displays",
			mcp.WithDescription("List displays with their frames in window-server coordinates"),
		),
		s.handleDisplays,
	)

	// windows
	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List on-screen windows with IDs usable by the highlight tool"),
			mcp.WithNumber("pid", mcp.Description("Filter by process ID")),
		),
		s.handleWindows,
	)
}
