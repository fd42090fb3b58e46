package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/diegofornalha/flow-mcp/entity"
	"github.com/diegofornalha/flow-mcp/internal/config"
	"github.com/diegofornalha/flow-mcp/internal/errors"
	"github.com/diegofornalha/flow-mcp/internal/rpc"
)

// ToolRegistrar accepts tool definitions for registration
type ToolRegistrar interface {
	RegisterTool(def entity.ToolDefinition)
}

// ToolContext contains the services that tools might need
type ToolContext struct {
	Network *config.NetworkConfig
	Caller  rpc.Caller
}

// decodeArgs unmarshals the raw argument bundle of a tool call
func decodeArgs(req *mcp.CallToolRequest) (map[string]interface{}, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]interface{}{}, nil
	}

	var args map[string]interface{}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, errors.ValidationWrap(err, "decode", "arguments are not a JSON object")
	}
	return args, nil
}

// decodeString unmarshals a JSON-RPC result expected to be a single string
func decodeString(operation string, raw json.RawMessage) (string, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", errors.MalformedError(operation, fmt.Sprintf("result is not a string: %s", string(raw)))
	}
	return value, nil
}

// textResult builds a successful text result
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult converts any pipeline failure into an error-flagged text
// result. Tool failures never propagate as Go errors past this boundary.
func errorResult(err error) *mcp.CallToolResult {
	var text string
	switch errors.GetKind(err) {
	case errors.KindValidation:
		text = fmt.Sprintf("Validation Error: %v", err)
	case errors.KindTransport:
		text = fmt.Sprintf("Transport Error: %v", err)
	case errors.KindRPC:
		text = fmt.Sprintf("RPC Error: %v", err)
	case errors.KindMalformedResponse:
		text = fmt.Sprintf("Malformed Response: %v", err)
	default:
		text = fmt.Sprintf("Error: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
