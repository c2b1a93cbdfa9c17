package mcp

import (
	"context"
	"fmt"

	"cargomcp/internal/cargo"
	"cargomcp/internal/config"
	"cargomcp/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

const (
	// ServerName identifies this server during the MCP handshake.
	ServerName = "cargomcp"
	// ServerVersion is reported to clients and by the version command.
	ServerVersion = "0.2.0"
)

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	runner    *cargo.Runner
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
	}
}

// Start initializes the server, registers every tool and serves the
// stdio transport until the client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	if err := s.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize server components: %w", err)
	}

	s.logger.Info("MCP server created, starting stdio communication",
		"cargo", s.config.CargoPath,
		"tools", len(ToolNames()),
	)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

// initializeComponents wires the runner and the mcp-go server with all
// tool registrations. Split from Start so tests can drive handlers
// without a stdio transport.
func (s *Server) initializeComponents() error {
	s.runner = cargo.NewRunner(s.config.CargoPath, s.logger)

	s.mcpServer = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()
	return nil
}

// runCargo executes one cargo invocation, bounded by the configured
// per-command timeout when one is set. Cancellation of the request
// context always propagates to the subprocess.
func (s *Server) runCargo(ctx context.Context, dir string, args []string) cargo.CommandResult {
	if timeout := s.config.CommandTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.logger.Debug("Running cargo", "dir", dir, "args", args)
	return s.runner.Run(ctx, dir, args...)
}
