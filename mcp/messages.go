package mcp

// Tool represents a tool definition
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema represents the JSON schema for tool input
type InputSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
	Title      string         `json:"title,omitempty"`
}

// ServerInfo identifies the server in the initialize result
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities lists the capability namespaces the server advertises.
// Each marshals to an empty object.
type Capabilities struct {
	Tools     struct{} `json:"tools"`
	Prompts   struct{} `json:"prompts"`
	Resources struct{} `json:"resources"`
}

// InitializeResult is the result payload of the initialize method
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// ToolsListResult is the result payload of the tools/list method
type ToolsListResult struct {
	Tools []Tool `json:"tools"`
}

// ContentBlock is one entry in a tools/call result content array
type ContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// ToolCallResult is the result payload of the tools/call method
type ToolCallResult struct {
	Content []ContentBlock `json:"content"`
}

// NewTextContent creates a text content block
func NewTextContent(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// NewImageContent creates an image content block with base64 payload data
func NewImageContent(mimeType, data string) ContentBlock {
	return ContentBlock{Type: ContentTypeImage, MimeType: mimeType, Data: data}
}
