// Package diagram implements the render tools. Each tool binds one
// renderer backend at construction and shares the same argument contract:
// a required source field plus an optional output format.
package diagram

import (
	"context"
	"encoding/json"

	"github.com/diagramlab/mcp-diagram-go/logger"
	"github.com/diagramlab/mcp-diagram-go/render"
	"github.com/diagramlab/mcp-diagram-go/tools/types"
)

// unmarshalArgs decodes a tool arguments payload. A missing payload decodes
// as all defaults so the required-field check reports the real problem.
func unmarshalArgs(tool string, args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return types.NewMalformedArgumentsError(tool, err)
	}
	return nil
}

// renderDiagram is the shared invoke tail: required source check, format
// normalization, a single render attempt, content type stamping.
func renderDiagram(ctx context.Context, r render.Renderer, tool, field, source, format string) (*types.RenderResult, error) {
	if source == "" {
		return nil, types.NewMissingArgumentError(field, tool)
	}

	normalized, err := types.NormalizeFormat(format)
	if err != nil {
		return nil, err
	}

	logger.Debug("Rendering diagram", "tool", tool, "format", normalized)
	data, err := r.Render(ctx, source, normalized)
	if err != nil {
		return nil, err
	}

	return &types.RenderResult{
		ContentType: types.ContentTypeForFormat(normalized),
		Data:        data,
	}, nil
}

// formatProperty is the schema fragment shared by every tool's format
// argument.
func formatProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Output image format",
		"enum":        []string{types.FormatSVG, types.FormatPNG},
		"default":     types.DefaultFormat,
	}
}
