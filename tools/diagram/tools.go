package diagram

import (
	"time"

	"github.com/diagramlab/mcp-diagram-go/config"
	"github.com/diagramlab/mcp-diagram-go/render"
	"github.com/diagramlab/mcp-diagram-go/tools/types"
)

// GetAllTools returns all diagram rendering tools wired to the renderers
// described by cfg.
func GetAllTools(cfg *config.Config) []types.Tool {
	plantuml := render.NewPlantUML(
		cfg.Renderers.PlantUML.ServerURL,
		time.Duration(cfg.Renderers.PlantUML.TimeoutSeconds)*time.Second,
	)
	graphviz := render.NewGraphviz(cfg.Renderers.Graphviz.DotPath)
	mermaid := render.NewMermaid(cfg.Renderers.Mermaid.CLIPath, cfg.Renderers.Mermaid.Theme)

	return []types.Tool{
		NewPlantUMLTool(plantuml),
		NewGraphvizTool(graphviz),
		NewMermaidTool(mermaid),
	}
}
