package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const mermaidNotFound = "mermaid-cli (mmdc) not found; install with `npm i -g @mermaid-js/mermaid-cli` or ensure npx is available"

// Mermaid renders diagrams with the mermaid CLI. The CLI works on files,
// so each call stages the source in a private temp directory.
type Mermaid struct {
	cliPath string
	theme   string
}

// NewMermaid creates a renderer for the given CLI path and theme. An empty
// cliPath autodiscovers mmdc on PATH, falling back to npx.
func NewMermaid(cliPath, theme string) *Mermaid {
	return &Mermaid{
		cliPath: cliPath,
		theme:   theme,
	}
}

// Render implements Renderer.
func (m *Mermaid) Render(ctx context.Context, source, format string) ([]byte, error) {
	bin, baseArgs, err := m.locateCLI()
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "mermaid-*")
	if err != nil {
		return nil, NewRenderFailedError(RendererMermaid, fmt.Sprintf("mmdc failed: %v", err))
	}
	defer os.RemoveAll(dir)

	inFile := filepath.Join(dir, "diagram.mmd")
	outFile := filepath.Join(dir, "out."+format)
	if err := os.WriteFile(inFile, []byte(source), 0600); err != nil {
		return nil, NewRenderFailedError(RendererMermaid, fmt.Sprintf("mmdc failed: %v", err))
	}

	args := append(baseArgs, "-i", inFile, "-o", outFile, "-t", m.theme)
	cmd := exec.CommandContext(ctx, bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, NewRenderFailedError(RendererMermaid, "mmdc failed: "+detail)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return nil, NewRenderFailedError(RendererMermaid, fmt.Sprintf("mmdc failed: no output produced: %v", err))
	}

	return data, nil
}

// locateCLI resolves the mermaid binary and any leading arguments. With no
// configured path it prefers a real mmdc and falls back to running the CLI
// package through npx.
func (m *Mermaid) locateCLI() (string, []string, error) {
	if m.cliPath != "" {
		bin, err := exec.LookPath(m.cliPath)
		if err != nil {
			return "", nil, NewUnavailableError(RendererMermaid, mermaidNotFound)
		}
		return bin, nil, nil
	}

	if bin, err := exec.LookPath("mmdc"); err == nil {
		return bin, nil, nil
	}

	if bin, err := exec.LookPath("npx"); err == nil {
		return bin, []string{"@mermaid-js/mermaid-cli"}, nil
	}

	return "", nil, NewUnavailableError(RendererMermaid, mermaidNotFound)
}
