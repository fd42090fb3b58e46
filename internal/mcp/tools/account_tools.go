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

// NewGetBalanceTool creates the eth_getBalance tool
func NewGetBalanceTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object(
		schema.Field{
			Name:        "address",
			Description: "Address to query the balance of",
			Required:    true,
			Pattern:     schema.Address,
			Constraint:  "a 20-byte hex address",
		},
		schema.Field{
			Name:        "blockParameter",
			Description: "Block tag (latest, earliest, pending) or hex block number",
			Pattern:     schema.BlockParameter,
			Constraint:  "a block tag or hex block number",
			Default:     "latest",
		},
	)

	tool := &mcp.Tool{
		Name:        "eth_getBalance",
		Description: "Get the native FLOW balance of an address",
		InputSchema: shape.JSONSchema(),
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArgs(req)
		if err != nil {
			return errorResult(err), nil
		}
		validated, err := shape.Validate(args)
		if err != nil {
			return errorResult(err), nil
		}

		address := validated["address"].(string)
		raw, err := tc.Caller.Call(ctx, "eth_getBalance", address, validated["blockParameter"])
		if err != nil {
			return errorResult(err), nil
		}

		hex, err := decodeString("eth_getBalance", raw)
		if err != nil {
			return errorResult(err), nil
		}

		balance, err := evm.ParseQuantity(hex)
		if err != nil {
			return errorResult(err), nil
		}

		return textResult(fmt.Sprintf("Balance of %s: %s %s (%s atto-%s)",
			address, evm.FormatAttoFlow(balance), tc.Network.Symbol, balance.Dec(), tc.Network.Symbol)), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}

// NewGetCodeTool creates the eth_getCode tool
func NewGetCodeTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object(
		schema.Field{
			Name:        "address",
			Description: "Address to fetch deployed code from",
			Required:    true,
			Pattern:     schema.Address,
			Constraint:  "a 20-byte hex address",
		},
		schema.Field{
			Name:        "blockParameter",
			Description: "Block tag (latest, earliest, pending) or hex block number",
			Pattern:     schema.BlockParameter,
			Constraint:  "a block tag or hex block number",
			Default:     "latest",
		},
	)

	tool := &mcp.Tool{
		Name:        "eth_getCode",
		Description: "Get the EVM bytecode deployed at an address",
		InputSchema: shape.JSONSchema(),
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArgs(req)
		if err != nil {
			return errorResult(err), nil
		}
		validated, err := shape.Validate(args)
		if err != nil {
			return errorResult(err), nil
		}

		address := validated["address"].(string)
		raw, err := tc.Caller.Call(ctx, "eth_getCode", address, validated["blockParameter"])
		if err != nil {
			return errorResult(err), nil
		}

		code, err := decodeString("eth_getCode", raw)
		if err != nil {
			return errorResult(err), nil
		}

		// Empty code means the address is not a contract, not an error.
		if code == "0x" {
			return textResult(fmt.Sprintf("No code found at %s (address is not a contract)", address)), nil
		}

		byteLen := (len(code) - 2) / 2
		return textResult(fmt.Sprintf("Code at %s (%d bytes):\n%s", address, byteLen, code)), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}

// NewCheckCOATool creates the flow_checkCOA tool. Classification is a pure
// string-prefix comparison; the node is never contacted.
func NewCheckCOATool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object(
		schema.Field{
			Name:        "address",
			Description: "Address to classify",
			Required:    true,
			Pattern:     schema.Address,
			Constraint:  "a 20-byte hex address",
		},
	)

	tool := &mcp.Tool{
		Name:        "flow_checkCOA",
		Description: "Check whether an address is a Cadence-Owned Account (COA) on Flow EVM",
		InputSchema: shape.JSONSchema(),
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArgs(req)
		if err != nil {
			return errorResult(err), nil
		}
		validated, err := shape.Validate(args)
		if err != nil {
			return errorResult(err), nil
		}

		address := validated["address"].(string)
		normalized := strings.ToLower(address)

		switch evm.ClassifyAddress(address) {
		case evm.AddressCOAFactory:
			return textResult(fmt.Sprintf("Address %s is the COA factory address.", normalized)), nil
		case evm.AddressCOA:
			return textResult(fmt.Sprintf("Address %s is a Cadence-Owned Account (COA).", normalized)), nil
		case evm.AddressReservedSystem:
			return textResult(fmt.Sprintf("Address %s is a reserved Flow system address, not a COA.", normalized)), nil
		default:
			return textResult(fmt.Sprintf("Address %s is not a Cadence-Owned Account.", normalized)), nil
		}
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}
