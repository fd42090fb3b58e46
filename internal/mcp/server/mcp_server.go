package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/diegofornalha/flow-mcp/entity"
	"github.com/diegofornalha/flow-mcp/internal/config"
	"github.com/diegofornalha/flow-mcp/internal/errors"
	"github.com/diegofornalha/flow-mcp/internal/logging"
	"github.com/diegofornalha/flow-mcp/internal/mcp/resources"
	"github.com/diegofornalha/flow-mcp/internal/mcp/tools"
)

// Version reported to MCP clients during initialization
const Version = "1.0.0"

// MCPServer represents an MCP server using the official Go SDK
type MCPServer struct {
	server   *mcp.Server
	config   *config.Config
	services *ServiceContainer
}

// NewMCPServer creates a new MCP server using the official SDK
func NewMCPServer(cfg *config.Config, services *ServiceContainer) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "flow-evm-mcp",
			Version: Version,
		},
		nil,
	)

	mcpServer := &MCPServer{
		server:   server,
		config:   cfg,
		services: services,
	}

	mcpServer.registerTools()
	mcpServer.registerResources()

	return mcpServer
}

// registerTools registers all available tools with the MCP server
func (s *MCPServer) registerTools() {
	logger := logging.ServerLogger
	logger.Info("Registering MCP tools...")

	registry := tools.NewToolRegistry(s)

	toolContext := &tools.ToolContext{
		Network: s.services.Network,
		Caller:  s.services.RPCClient,
	}

	registry.RegisterAll(toolContext)

	logger.Info("All available tools registered successfully")
}

// registerResources registers all available resources with the MCP server
func (s *MCPServer) registerResources() {
	logger := logging.ServerLogger
	logger.Info("Registering MCP resources...")

	for _, resDef := range resources.GetAllResources(s.config, s.services.Network) {
		s.server.AddResource(resDef.Resource, resDef.Handler)
		logger.Info("Registered resource", logging.String("uri", resDef.Resource.URI))
	}
}

// RegisterTool adds a tool to the MCP server and logs it
func (s *MCPServer) RegisterTool(toolDef entity.ToolDefinition) {
	s.server.AddTool(toolDef.Tool, toolDef.Handler)
	logging.ServerLogger.Info("Registered tool", logging.String("name", toolDef.Tool.Name))
}

// Start runs the MCP server over the requested transport until the context
// is cancelled
func (s *MCPServer) Start(ctx context.Context, transportMode string, host string, port int) error {
	logger := logging.ServerLogger
	logger.Info("Starting MCP server",
		logging.String("transport", transportMode),
		logging.String("network", s.services.Network.Name))

	switch transportMode {
	case "", "stdio":
		if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
			return errors.ServerWrap(err, "start", "stdio transport failed")
		}
		return nil

	case "http":
		transport := NewHTTPTransport(host, port)
		if err := transport.Start(ctx, s.server); err != nil {
			return errors.ServerWrap(err, "start", "http transport failed")
		}
		return nil
	}

	return errors.ServerError("start", "unsupported transport mode: "+transportMode)
}

// Close closes the MCP server and performs cleanup
func (s *MCPServer) Close() {
	logging.ServerLogger.Info("Closing MCP server...")
	// The official SDK handles the session lifecycle.
}
