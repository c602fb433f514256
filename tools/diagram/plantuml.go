package diagram

import (
	"context"
	"encoding/json"

	"github.com/diagramlab/mcp-diagram-go/mcp"
	"github.com/diagramlab/mcp-diagram-go/render"
	"github.com/diagramlab/mcp-diagram-go/tools/types"
)

type plantUMLArgs struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// PlantUMLTool renders PlantUML source through the configured server.
type PlantUMLTool struct {
	renderer render.Renderer
}

func NewPlantUMLTool(renderer render.Renderer) *PlantUMLTool {
	return &PlantUMLTool{renderer: renderer}
}

func (t *PlantUMLTool) Name() string { return "plantuml.render" }

func (t *PlantUMLTool) Description() string {
	return "Render PlantUML diagram text to image"
}

func (t *PlantUMLTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{
		Type: "object",
		Properties: map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "PlantUML diagram source text",
			},
			"format": formatProperty(),
		},
		Required: []string{"text"},
		Title:    "Render PlantUML",
	}
}

func (t *PlantUMLTool) Execute(ctx context.Context, args json.RawMessage) (*types.RenderResult, error) {
	var payload plantUMLArgs
	if err := unmarshalArgs(t.Name(), args, &payload); err != nil {
		return nil, err
	}
	return renderDiagram(ctx, t.renderer, t.Name(), "text", payload.Text, payload.Format)
}
