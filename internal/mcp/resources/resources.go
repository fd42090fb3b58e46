package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/diegofornalha/flow-mcp/internal/config"
)

// ResourceDefinition represents a resource with its metadata and handler
type ResourceDefinition struct {
	Resource *mcp.Resource
	Handler  mcp.ResourceHandler
}

// GetAllResources exposes the network configuration as MCP resources
func GetAllResources(cfg *config.Config, active *config.NetworkConfig) []ResourceDefinition {
	return []ResourceDefinition{
		activeNetworkResource(active),
		networkTableResource(cfg),
	}
}

// activeNetworkResource describes the network the server is connected to
func activeNetworkResource(active *config.NetworkConfig) ResourceDefinition {
	resource := &mcp.Resource{
		URI:         "flow://network",
		Name:        "Active Network",
		Description: fmt.Sprintf("Configuration of the connected Flow EVM network (%s)", active.Name),
		MIMEType:    "application/json",
	}

	handler := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		data, err := json.MarshalIndent(active, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal network config: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      req.Params.URI,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}

	return ResourceDefinition{Resource: resource, Handler: handler}
}

// networkTableResource lists every network the server knows about
func networkTableResource(cfg *config.Config) ResourceDefinition {
	resource := &mcp.Resource{
		URI:         "flow://networks",
		Name:        "Network Table",
		Description: "All Flow EVM networks known to this server",
		MIMEType:    "application/json",
	}

	handler := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		data, err := json.MarshalIndent(cfg.Networks, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal network table: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      req.Params.URI,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}

	return ResourceDefinition{Resource: resource, Handler: handler}
}
