package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/diegofornalha/flow-mcp/entity"
	"github.com/diegofornalha/flow-mcp/internal/evm"
	"github.com/diegofornalha/flow-mcp/internal/schema"
)

// NewCallTool creates the eth_call tool. Call data arrives already
// ABI-encoded; no encoding or decoding happens here.
func NewCallTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object(
		schema.Field{
			Name:        "transaction",
			Description: "Call object describing the simulated transaction",
			Type:        schema.TypeObject,
			Required:    true,
			Fields: []schema.Field{
				{
					Name:        "to",
					Description: "Address of the contract to call",
					Required:    true,
					Pattern:     schema.Address,
					Constraint:  "a 20-byte hex address",
				},
				{
					Name:        "from",
					Description: "Sender address of the simulated call",
					Pattern:     schema.Address,
					Constraint:  "a 20-byte hex address",
				},
				{
					Name:        "data",
					Description: "ABI-encoded call data",
					Pattern:     schema.HexData,
					Constraint:  "0x-prefixed hex data",
				},
				{
					Name:        "gas",
					Description: "Gas limit as a hex quantity",
					Pattern:     schema.Quantity,
					Constraint:  "a hex quantity",
				},
				{
					Name:        "gasPrice",
					Description: "Gas price as a hex quantity",
					Pattern:     schema.Quantity,
					Constraint:  "a hex quantity",
				},
				{
					Name:        "value",
					Description: "Value transferred, as a hex quantity",
					Pattern:     schema.Quantity,
					Constraint:  "a hex quantity",
				},
			},
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
		Name:        "eth_call",
		Description: "Execute a read-only contract call without creating a transaction",
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

		raw, err := tc.Caller.Call(ctx, "eth_call", validated["transaction"], validated["blockParameter"])
		if err != nil {
			return errorResult(err), nil
		}

		data, err := decodeString("eth_call", raw)
		if err != nil {
			return errorResult(err), nil
		}

		if data == "0x" {
			return textResult("Call returned no data (0x)"), nil
		}
		return textResult(fmt.Sprintf("Call result:\n%s", data)), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}

// NewSendRawTransactionTool creates the eth_sendRawTransaction tool.
// Transactions arrive already signed; this tool only submits them.
func NewSendRawTransactionTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object(
		schema.Field{
			Name:        "signedTransaction",
			Description: "Raw signed transaction bytes as hex data",
			Required:    true,
			Pattern:     schema.HexDataNonEmpty,
			Constraint:  "non-empty 0x-prefixed hex data",
		},
	)

	tool := &mcp.Tool{
		Name:        "eth_sendRawTransaction",
		Description: "Submit a signed raw transaction to the Flow EVM network",
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

		raw, err := tc.Caller.Call(ctx, "eth_sendRawTransaction", validated["signedTransaction"])
		if err != nil {
			return errorResult(err), nil
		}

		txHash, err := decodeString("eth_sendRawTransaction", raw)
		if err != nil {
			return errorResult(err), nil
		}

		text := fmt.Sprintf("Transaction submitted successfully.\nTransaction hash: %s", txHash)
		if tc.Network.ExplorerURL != "" {
			text += fmt.Sprintf("\nExplorer: %s", evm.ExplorerTxURL(tc.Network.ExplorerURL, txHash))
		}
		return textResult(text), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}
