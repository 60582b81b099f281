// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Lets LLM agents assemble constructs, run models, and read history over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/abmodel/internal/mcp"
	"github.com/harper/abmodel/internal/objectstore"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs abmodel as an MCP (Model Context Protocol) server on stdio with the
tools assemble_construct, model_antibody, list_runs, and get_run.
Logs go to stderr so stdout stays reserved for the protocol.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  abmodel mcp

  # Configure in the client's config file:
  # {
  #   "mcpServers": {
  #     "abmodel": {
  #       "command": "abmodel",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	store, err := objectstore.Open(cfg)
	if err != nil {
		return fmt.Errorf("initializing object store: %w", err)
	}
	pipeline, err := buildPipeline(cfg, logger, store)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	ledger := openLedger(cfg, logger)
	defer func() { _ = ledger.Close() }()
	pipeline.SetLedger(ledger)

	server := mcpserver.NewMCPServer("abmodel", versionInfo.Version)
	mcp.RegisterTools(server, pipeline, ledger, cfg.HistoryLimit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	}
}
