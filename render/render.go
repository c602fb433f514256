// Package render contains the diagram rendering backends. Each renderer
// turns diagram source text into image bytes for a single output format,
// making exactly one attempt per call.
package render

import "context"

// Renderer is the capability the diagram tools are built on.
type Renderer interface {
	Render(ctx context.Context, source, format string) ([]byte, error)
}

// Renderer names as they appear in error reports
const (
	RendererPlantUML = "plantuml"
	RendererGraphviz = "graphviz"
	RendererMermaid  = "mermaid"
)
