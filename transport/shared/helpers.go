package shared

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/diagramlab/mcp-diagram-go/mcp"
	"github.com/diagramlab/mcp-diagram-go/mcp/jsonrpc"
	"github.com/diagramlab/mcp-diagram-go/tools"
	"github.com/diagramlab/mcp-diagram-go/tools/types"
)

// BuildInitializeResult returns the identity and capability set announced
// during the MCP handshake.
func BuildInitializeResult() mcp.InitializeResult {
	return mcp.InitializeResult{
		ProtocolVersion: mcp.ProtocolVersion,
		Capabilities:    mcp.Capabilities{},
		ServerInfo: mcp.ServerInfo{
			Name:    mcp.ServerName,
			Version: mcp.ServerVersion,
		},
	}
}

func BuildInitializeResponse(msg jsonrpc.Request) *jsonrpc.Response {
	return jsonrpc.NewResponse(msg.ID, BuildInitializeResult())
}

func BuildToolsListResponse(msg jsonrpc.Request, toolList []mcp.Tool) *jsonrpc.Response {
	sortedTools := append([]mcp.Tool(nil), toolList...)
	sort.Slice(sortedTools, func(i, j int) bool {
		return sortedTools[i].Name < sortedTools[j].Name
	})
	return jsonrpc.NewResponse(msg.ID, mcp.ToolsListResult{Tools: sortedTools})
}

func BuildToolCallResponse(ctx context.Context, msg jsonrpc.Request, toolManager *tools.Manager) *jsonrpc.Response {
	var toolCall struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(msg.Params, &toolCall); err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), "Invalid tool call payload", nil)
	}

	arguments := toolCall.Arguments
	if len(arguments) == 0 {
		arguments = json.RawMessage("{}")
	}

	result, err := toolManager.ExecuteTool(ctx, toolCall.Name, arguments)
	if err != nil {
		rpcErr := ClassifyToolError(toolCall.Name, err)
		return jsonrpc.NewErrorResponse(msg.ID, int(rpcErr.Code), rpcErr.Message, rpcErr.Data)
	}

	return jsonrpc.NewResponse(msg.ID, mcp.ToolCallResult{
		Content: []mcp.ContentBlock{
			mcp.NewTextContent("Diagram rendered successfully as " + result.ContentType),
			mcp.NewImageContent(result.ContentType, result.Base64()),
		},
	})
}

func BuildPingResponse(msg jsonrpc.Request) *jsonrpc.Response {
	return jsonrpc.NewResponse(msg.ID, map[string]any{})
}

// ClassifyToolError maps a tool execution failure onto the JSON-RPC error
// taxonomy. Unknown tools and rejected arguments are protocol errors;
// everything else is an execution failure whose diagnostic travels in the
// data field.
func ClassifyToolError(toolName string, err error) *jsonrpc.JSONRPCError {
	if tools.IsToolNotFound(err) {
		return jsonrpc.NewJSONRPCError(jsonrpc.ErrMethodNotFound, "Unknown tool: "+toolName, nil)
	}
	if types.IsArgumentError(err) {
		return jsonrpc.NewJSONRPCError(jsonrpc.ErrInvalidParams, err.Error(), nil)
	}
	return jsonrpc.NewJSONRPCError(jsonrpc.ErrInternalError, "Tool execution failed", err.Error())
}

// DispatchStandardMethod handles shared non-initialize JSON-RPC methods for
// all transports. It returns nil when no response must be sent, which is
// the case for unknown notifications.
func DispatchStandardMethod(ctx context.Context, msg jsonrpc.Request, toolManager *tools.Manager) *jsonrpc.Response {
	switch msg.Method {
	case "tools/list":
		return BuildToolsListResponse(msg, toolManager.GetTools())
	case "tools/call":
		return BuildToolCallResponse(ctx, msg, toolManager)
	case "ping":
		return BuildPingResponse(msg)
	default:
		if msg.ID != nil {
			return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrMethodNotFound), "Method not found: "+msg.Method, nil)
		}
		return nil
	}
}
