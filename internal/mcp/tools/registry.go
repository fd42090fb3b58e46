package tools

import (
	"github.com/diegofornalha/flow-mcp/internal/logging"
)

// ToolRegistry manages the registration of all tools
type ToolRegistry struct {
	logger    *logging.Logger
	registrar ToolRegistrar
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry(registrar ToolRegistrar) *ToolRegistry {
	return &ToolRegistry{
		logger:    logging.New("ToolRegistry"),
		registrar: registrar,
	}
}

// RegisterAll registers every tool against the provided context
func (tr *ToolRegistry) RegisterAll(tc *ToolContext) {
	tr.logger.Info("Starting tool registration process...")

	// Local tools, no RPC bridge involved
	tr.registrar.RegisterTool(NewNetworkInfoTool(tc))
	tr.registrar.RegisterTool(NewCheckCOATool(tc))

	// RPC-backed tools
	tr.registrar.RegisterTool(NewChainIDTool(tc))
	tr.registrar.RegisterTool(NewBlockNumberTool(tc))
	tr.registrar.RegisterTool(NewGasPriceTool(tc))
	tr.registrar.RegisterTool(NewGetBalanceTool(tc))
	tr.registrar.RegisterTool(NewGetCodeTool(tc))
	tr.registrar.RegisterTool(NewCallTool(tc))
	tr.registrar.RegisterTool(NewGetLogsTool(tc))
	tr.registrar.RegisterTool(NewSendRawTransactionTool(tc))

	tr.logger.Info("Tool registration completed successfully",
		logging.String("network", tc.Network.Name))
}
