package diagram

import (
	"context"
	"encoding/json"

	"github.com/diagramlab/mcp-diagram-go/mcp"
	"github.com/diagramlab/mcp-diagram-go/render"
	"github.com/diagramlab/mcp-diagram-go/tools/types"
)

type mermaidArgs struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// MermaidTool renders Mermaid diagram text through the mermaid CLI.
type MermaidTool struct {
	renderer render.Renderer
}

func NewMermaidTool(renderer render.Renderer) *MermaidTool {
	return &MermaidTool{renderer: renderer}
}

func (t *MermaidTool) Name() string { return "mermaid.render" }

func (t *MermaidTool) Description() string {
	return "Render Mermaid diagram to image"
}

func (t *MermaidTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "Mermaid diagram source text",
			},
			"format": formatProperty(),
		},
		Required: []string{"text"},
		Title:    "Render Mermaid",
	}
}

func (t *MermaidTool) Execute(ctx context.Context, args json.RawMessage) (*types.RenderResult, error) {
	var payload mermaidArgs
	if err := unmarshalArgs(t.Name(), args, &payload); err != nil {
		return nil, err
	}
	return renderDiagram(ctx, t.renderer, t.Name(), "text", payload.Text, payload.Format)
}
