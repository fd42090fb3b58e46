package entity

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition pairs a tool's metadata with its handler so tool packages
// can construct tools without importing the server.
type ToolDefinition struct {
	Tool    *mcp.Tool
	Handler func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
