package mcp

// Protocol version
const (
	ProtocolVersion = "2024-11-05"
)

// Server identity advertised in the initialize result
const (
	ServerName    = "mcp-diagram-server"
	ServerVersion = "0.1.0"
)

// Content block types used in tool call results
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)
