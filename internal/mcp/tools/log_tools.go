package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/diegofornalha/flow-mcp/entity"
	"github.com/diegofornalha/flow-mcp/internal/errors"
	"github.com/diegofornalha/flow-mcp/internal/evm"
	"github.com/diegofornalha/flow-mcp/internal/schema"
)

// logEntry mirrors the log object shape returned by eth_getLogs
type logEntry struct {
	Address          string   `json:"address"`
	Topics           []string `json:"topics"`
	Data             string   `json:"data"`
	BlockNumber      string   `json:"blockNumber"`
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex string   `json:"transactionIndex"`
	BlockHash        string   `json:"blockHash"`
	LogIndex         string   `json:"logIndex"`
	Removed          bool     `json:"removed"`
}

// NewGetLogsTool creates the eth_getLogs tool
func NewGetLogsTool(tc *ToolContext) entity.ToolDefinition {
	shape := schema.Object(
		schema.Field{
			Name:        "filter",
			Description: "Log filter criteria",
			Type:        schema.TypeObject,
			Required:    true,
			Fields: []schema.Field{
				{
					Name:        "fromBlock",
					Description: "Start of the block range (tag or hex block number)",
					Pattern:     schema.BlockParameter,
					Constraint:  "a block tag or hex block number",
				},
				{
					Name:        "toBlock",
					Description: "End of the block range (tag or hex block number)",
					Pattern:     schema.BlockParameter,
					Constraint:  "a block tag or hex block number",
				},
				{
					Name:        "address",
					Description: "Contract address or list of addresses emitting the logs",
					Type:        schema.TypeStringOrArray,
					Pattern:     schema.Address,
					Constraint:  "a 20-byte hex address",
				},
				{
					Name:        "topics",
					Description: "Topic filters; null entries are positional wildcards",
					Type:        schema.TypeTopics,
					Pattern:     schema.Hash,
					Constraint:  "a 32-byte hex topic",
				},
				{
					Name:        "blockhash",
					Description: "Restrict the filter to a single block by hash",
					Pattern:     schema.Hash,
					Constraint:  "a 32-byte hex hash",
				},
			},
		},
	)

	tool := &mcp.Tool{
		Name:        "eth_getLogs",
		Description: "Get event logs matching a filter from the Flow EVM network",
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

		raw, err := tc.Caller.Call(ctx, "eth_getLogs", validated["filter"])
		if err != nil {
			return errorResult(err), nil
		}

		var logs []logEntry
		if err := json.Unmarshal(raw, &logs); err != nil {
			return errorResult(errors.MalformedError("eth_getLogs",
				fmt.Sprintf("result is not a log array: %v", err))), nil
		}

		if len(logs) == 0 {
			return textResult("No logs found matching the filter criteria."), nil
		}

		return textResult(renderLogs(logs)), nil
	}

	return entity.ToolDefinition{Tool: tool, Handler: handler}
}

// renderLogs renders one labeled block per log entry
func renderLogs(logs []logEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d log(s):\n", len(logs))

	for i, log := range logs {
		fmt.Fprintf(&sb, "\nLog %d:\n", i)
		fmt.Fprintf(&sb, "  Address: %s\n", log.Address)
		fmt.Fprintf(&sb, "  Topics: [%s]\n", strings.Join(log.Topics, ", "))
		fmt.Fprintf(&sb, "  Data: %s\n", log.Data)
		fmt.Fprintf(&sb, "  Block: %s\n", formatBlockNumber(log.BlockNumber))
		fmt.Fprintf(&sb, "  Transaction: %s\n", log.TransactionHash)
		fmt.Fprintf(&sb, "  Log index: %s", formatQuantityOrRaw(log.LogIndex))
		if log.Removed {
			sb.WriteString("\n  Removed: true")
		}
		if i < len(logs)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func formatBlockNumber(hex string) string {
	if hex == "" {
		return "pending"
	}
	value, err := evm.ParseQuantity(hex)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("%s (%s)", value.Dec(), hex)
}

func formatQuantityOrRaw(hex string) string {
	if hex == "" {
		return "n/a"
	}
	value, err := evm.ParseQuantity(hex)
	if err != nil {
		return hex
	}
	return value.Dec()
}
