package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "rapbook/internal/adapters/mcp"
	"rapbook/internal/bootstrap"
	"rapbook/internal/config"
	"rapbook/internal/logging"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory holding the rap library")
	backend := flag.String("backend", "", "storage backend (sqlite, badger, file, memory)")
	flag.Parse()

	// stdout carries the protocol, logs go to stderr
	logger := logging.New(os.Stderr, config.DefaultLogLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("rapbook-mcp: failed to load config")
	}
	if err := cfg.Override(*dataDir, *backend); err != nil {
		logger.Fatal().Err(err).Msg("rapbook-mcp: invalid flags")
	}
	logger = logger.Level(logging.ParseLevel(cfg.LogLevel))

	rt, err := bootstrap.Open(context.Background(), *cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("rapbook-mcp: failed to open library")
	}
	defer rt.Close()

	mcpServer := server.NewMCPServer(
		"rapbook-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, rt.Client)
	mcpadapter.RegisterWriteTools(mcpServer, rt.Client)

	logger.Info().Str("backend", cfg.Backend).Msg("serving on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error().Err(err).Msg("rapbook-mcp: server stopped")
	}
}
