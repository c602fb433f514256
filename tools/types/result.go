package types

import "encoding/base64"

// RenderResult is the outcome of a successful diagram render. The json tags
// give the REST payload shape directly: Data marshals as a base64 string.
type RenderResult struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data_base64"`
}

// Base64 returns the image bytes encoded for MCP content blocks.
func (r *RenderResult) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Data)
}
