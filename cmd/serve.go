package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing focus-border tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the highlight,
status, displays and windows tools. The focus watcher runs alongside it
unless the configuration disables it.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  focus-border serve
  focus-border serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("headless", "", "Write borders as PNG files to this directory instead of drawing them")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	headless, _ := cmd.Flags().GetString("headless")

	loader := config.NewLoader(configPath, logging.WithComponent(logger, "config"))
	if _, err := loader.Load(); err != nil {
		return err
	}
	defer loader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := loader.Watch(ctx); err != nil {
		logger.Warn("config hot reload unavailable", "error", err)
	}

	a, err := newApp(loader, true, headless)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	srv := server.New(a, logger)

	return runApp(ctx, a, func(ctx context.Context) error {
		return srv.Serve(ctx, server.Config{Transport: transport, Port: port})
	})
}
