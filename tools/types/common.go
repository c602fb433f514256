package types

import (
	"context"
	"encoding/json"

	"github.com/diagramlab/mcp-diagram-go/mcp"
)

// Tool interface defines the contract for all tools
type Tool interface {
	Name() string
	Description() string
	InputSchema() mcp.InputSchema
	Execute(ctx context.Context, args json.RawMessage) (*RenderResult, error)
}

// ToolRegistry interface defines the contract for tool registries
type ToolRegistry interface {
	RegisterTool(tool Tool) error
	GetTool(name string) (Tool, bool)
	ListTools() []Tool
	ExecuteTool(ctx context.Context, name string, args json.RawMessage) (*RenderResult, error)
}
