package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Graphviz renders dot source by piping it through the dot binary.
type Graphviz struct {
	dotPath string
}

// NewGraphviz creates a renderer using the given dot binary. The path may
// be a bare name resolved against PATH or an absolute path.
func NewGraphviz(dotPath string) *Graphviz {
	return &Graphviz{dotPath: dotPath}
}

// Render implements Renderer.
func (g *Graphviz) Render(ctx context.Context, source, format string) ([]byte, error) {
	bin, err := exec.LookPath(g.dotPath)
	if err != nil {
		return nil, NewUnavailableError(RendererGraphviz, "graphviz not available: dot binary not found")
	}

	cmd := exec.CommandContext(ctx, bin, "-T"+format)
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, NewRenderFailedError(RendererGraphviz, "dot failed: "+detail)
	}

	return stdout.Bytes(), nil
}
