package tools

import (
	"github.com/diagramlab/mcp-diagram-go/config"
	"github.com/diagramlab/mcp-diagram-go/tools/diagram"
	"github.com/diagramlab/mcp-diagram-go/tools/types"
)

// GetAllTools returns all available tools from all categories
func GetAllTools(cfg *config.Config) []types.Tool {
	var all []types.Tool
	all = append(all, diagram.GetAllTools(cfg)...)
	return all
}
