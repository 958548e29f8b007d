package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/mcpadapter"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/setup"
	setuplogger "github.com/povarna/generative-ai-agents/vgs-agent/internal/setup/logger"
)

func main() {
	// Load env
	_ = godotenv.Load()

	cfg := setup.LoadConfig()

	// stdout carries the MCP protocol, so logs go to stderr as JSON
	logger := setuplogger.New(cfg.LogLevel)

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	defer deps.Close()

	server := createMCPServer(deps)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		deps.Close()
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vgs-agent",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_sql",
		Description: "Check a SQL statement against the admission gate (SELECT only, vgs_view only, no DDL/DML keywords, LIMIT enforced). Never executes it.",
	}, mcpadapter.NewValidateHandler(deps.Service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a natural-language question about video game sales by generating, gating and executing SQL against vgs_view",
	}, mcpadapter.NewAskHandler(deps.Service))

	return server
}
