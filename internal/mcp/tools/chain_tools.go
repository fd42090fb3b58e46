package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/diegofornalha/flow-mcp/entity"
	"github.com/diegofornalha/flow-mcp/internal/evm"
	"github.com/diegofornalha/flow-mcp/internal/schema"
)

// NewNetworkInfoTool creates the tool describing the active network. It is
// purely local and never calls the node.
func NewNetworkInfoTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object()

	tool := &mcp.Tool{
		Name:        "flow_networkInfo",
		Description: "Get information about the currently configured Flow EVM network",
		InputSchema: shape.JSONSchema(),
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Network: %s\n", tc.Network.Name)
		fmt.Fprintf(&sb, "Chain ID: %d\n", tc.Network.ChainID)
		fmt.Fprintf(&sb, "RPC endpoint: %s\n", tc.Network.RPCURL)
		fmt.Fprintf(&sb, "Native currency: %s (%d decimals)", tc.Network.Symbol, tc.Network.Decimals)
		if tc.Network.ExplorerURL != "" {
			fmt.Fprintf(&sb, "\nBlock explorer: %s", tc.Network.ExplorerURL)
		}
		return textResult(sb.String()), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}

// NewChainIDTool creates the eth_chainId tool
func NewChainIDTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object()

	tool := &mcp.Tool{
		Name:        "eth_chainId",
		Description: "Get the chain ID of the connected Flow EVM network",
		InputSchema: shape.JSONSchema(),
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := tc.Caller.Call(ctx, "eth_chainId")
		if err != nil {
			return errorResult(err), nil
		}

		hex, err := decodeString("eth_chainId", raw)
		if err != nil {
			return errorResult(err), nil
		}

		chainID, err := evm.ParseQuantity(hex)
		if err != nil {
			return errorResult(err), nil
		}

		return textResult(fmt.Sprintf("Chain ID: %s (%s)", chainID.Dec(), hex)), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}

// NewBlockNumberTool creates the eth_blockNumber tool
func NewBlockNumberTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object()

	tool := &mcp.Tool{
		Name:        "eth_blockNumber",
		Description: "Get the number of the most recent block",
		InputSchema: shape.JSONSchema(),
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := tc.Caller.Call(ctx, "eth_blockNumber")
		if err != nil {
			return errorResult(err), nil
		}

		hex, err := decodeString("eth_blockNumber", raw)
		if err != nil {
			return errorResult(err), nil
		}

		height, err := evm.ParseQuantity(hex)
		if err != nil {
			return errorResult(err), nil
		}

		return textResult(fmt.Sprintf("Current block number: %s (%s)", height.Dec(), hex)), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}

// NewGasPriceTool creates the eth_gasPrice tool
func NewGasPriceTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object()

	tool := &mcp.Tool{
		Name:        "eth_gasPrice",
		Description: "Get the current gas price on the Flow EVM network",
		InputSchema: shape.JSONSchema(),
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := tc.Caller.Call(ctx, "eth_gasPrice")
		if err != nil {
			return errorResult(err), nil
		}

		hex, err := decodeString("eth_gasPrice", raw)
		if err != nil {
			return errorResult(err), nil
		}

		price, err := evm.ParseQuantity(hex)
		if err != nil {
			return errorResult(err), nil
		}

		return textResult(fmt.Sprintf("Gas price: %s Gwei (%s atto-%s)",
			evm.FormatGwei(price), price.Dec(), tc.Network.Symbol)), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}
