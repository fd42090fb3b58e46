package server

import (
	"github.com/diegofornalha/flow-mcp/internal/config"
	"github.com/diegofornalha/flow-mcp/internal/errors"
	"github.com/diegofornalha/flow-mcp/internal/logging"
	"github.com/diegofornalha/flow-mcp/internal/rpc"
)

// ServiceContainer holds all initialized services
type ServiceContainer struct {
	Network   *config.NetworkConfig
	RPCClient *rpc.Client
}

// InitializeServices resolves the active network and builds the RPC client.
// Both are read-only for the rest of the process lifetime.
func InitializeServices(cfg *config.Config) (*ServiceContainer, error) {
	logger := logging.ServerLogger
	logger.Info("Initializing Flow EVM MCP server components...")

	network, err := cfg.ActiveNetwork()
	if err != nil {
		return nil, errors.ConfigWrap(err, "initialize", "failed to resolve active network")
	}

	client := rpc.New(network.RPCURL)

	logger.Info("RPC client initialized",
		logging.String("network", network.Name),
		logging.String("endpoint", network.RPCURL),
		logging.Uint64("chain_id", network.ChainID))

	return &ServiceContainer{
		Network:   network,
		RPCClient: client,
	}, nil
}
