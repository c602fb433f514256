package diagram

import (
	"context"
	"encoding/json"

	"github.com/diagramlab/mcp-diagram-go/mcp"
	"github.com/diagramlab/mcp-diagram-go/render"
	"github.com/diagramlab/mcp-diagram-go/tools/types"
)

type graphvizArgs struct {
	Dot    string `json:"dot"`
	Format string `json:"format"`
}

// GraphvizTool renders DOT source through the dot binary.
type GraphvizTool struct {
	renderer render.Renderer
}

func NewGraphvizTool(renderer render.Renderer) *GraphvizTool {
	return &GraphvizTool{renderer: renderer}
}

func (t *GraphvizTool) Name() string { return "graphviz.render" }

func (t *GraphvizTool) Description() string {
	return "Render Graphviz DOT source to image"
}

func (t *GraphvizTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]any{
			"dot": map[string]any{
				"type":        "string",
				"description": "Graphviz DOT source",
			},
			"format": formatProperty(),
		},
		Required: []string{"dot"},
		Title:    "Render Graphviz",
	}
}

func (t *GraphvizTool) Execute(ctx context.Context, args json.RawMessage) (*types.RenderResult, error) {
	var payload graphvizArgs
	if err := unmarshalArgs(t.Name(), args, &payload); err != nil {
		return nil, err
	}
	return renderDiagram(ctx, t.renderer, t.Name(), "dot", payload.Dot, payload.Format)
}
