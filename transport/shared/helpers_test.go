package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/diagramlab/mcp-diagram-go/logger"
	"github.com/diagramlab/mcp-diagram-go/mcp"
	"github.com/diagramlab/mcp-diagram-go/mcp/jsonrpc"
	"github.com/diagramlab/mcp-diagram-go/render"
	"github.com/diagramlab/mcp-diagram-go/tools"
	"github.com/diagramlab/mcp-diagram-go/tools/types"
)

func TestMain(m *testing.M) {
	logger.Init(logger.GetLevelFromString("error"), logger.FormatText)
	os.Exit(m.Run())
}

// captureTool records the arguments delivered to it.
type captureTool struct {
	name    string
	result  *types.RenderResult
	err     error
	gotArgs string
}

func (t *captureTool) Name() string {
	return t.name
}

func (t *captureTool) Description() string {
	return "Capture tool"
}

func (t *captureTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{Type: "object", Properties: map[string]any{}}
}

func (t *captureTool) Execute(ctx context.Context, args json.RawMessage) (*types.RenderResult, error) {
	t.gotArgs = string(args)
	if t.err != nil {
		return nil, t.err
	}
	return t.result, nil
}

func TestBuildInitializeResponse(t *testing.T) {
	resp := BuildInitializeResponse(jsonrpc.Request{ID: 7, Method: "initialize"})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	want := `{"jsonrpc":"2.0","id":7,"result":{"protocolVersion":"2024-11-05","capabilities":{"tools":{},"prompts":{},"resources":{}},"serverInfo":{"name":"mcp-diagram-server","version":"0.1.0"}}}`
	if string(raw) != want {
		t.Errorf("Unexpected initialize response:\n got %s\nwant %s", raw, want)
	}
}

func TestBuildToolsListResponseSortsByName(t *testing.T) {
	toolList := []mcp.Tool{
		{Name: "zeta", Description: "Z"},
		{Name: "alpha", Description: "A"},
		{Name: "mid", Description: "M"},
	}

	resp := BuildToolsListResponse(jsonrpc.Request{ID: 1, Method: "tools/list"}, toolList)
	result, ok := resp.Result.(mcp.ToolsListResult)
	if !ok {
		t.Fatalf("Expected ToolsListResult, got %T", resp.Result)
	}

	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if result.Tools[i].Name != name {
			t.Errorf("Expected tool %d to be %s, got %s", i, name, result.Tools[i].Name)
		}
	}

	// The input slice must stay untouched
	if toolList[0].Name != "zeta" {
		t.Error("BuildToolsListResponse mutated its input")
	}
}

func TestBuildToolCallResponse(t *testing.T) {
	manager := tools.NewManager()
	tool := &captureTool{
		name:   "capture",
		result: &types.RenderResult{ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
	}
	manager.RegisterTool(tool)

	msg := jsonrpc.Request{
		ID:     3,
		Method: "tools/call",
		Params: json.RawMessage(`{"name":"capture","arguments":{"text":"hello"}}`),
	}
	resp := BuildToolCallResponse(context.Background(), msg, manager)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(mcp.ToolCallResult)
	if !ok {
		t.Fatalf("Expected ToolCallResult, got %T", resp.Result)
	}
	if len(result.Content) != 2 {
		t.Fatalf("Expected 2 content blocks, got %d", len(result.Content))
	}
	if result.Content[0].Type != "text" || result.Content[0].Text != "Diagram rendered successfully as image/png" {
		t.Errorf("Unexpected text block: %+v", result.Content[0])
	}
	if result.Content[1].Type != "image" || result.Content[1].MimeType != "image/png" {
		t.Errorf("Unexpected image block: %+v", result.Content[1])
	}
	if result.Content[1].Data != "iVBORw==" {
		t.Errorf("Expected base64 data iVBORw==, got %q", result.Content[1].Data)
	}
	if tool.gotArgs != `{"text":"hello"}` {
		t.Errorf("Tool received wrong arguments: %q", tool.gotArgs)
	}
}

func TestBuildToolCallResponseDefaultsArguments(t *testing.T) {
	manager := tools.NewManager()
	tool := &captureTool{
		name:   "capture",
		result: &types.RenderResult{ContentType: "image/svg+xml", Data: []byte("<svg/>")},
	}
	manager.RegisterTool(tool)

	msg := jsonrpc.Request{
		ID:     1,
		Method: "tools/call",
		Params: json.RawMessage(`{"name":"capture"}`),
	}
	resp := BuildToolCallResponse(context.Background(), msg, manager)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if tool.gotArgs != "{}" {
		t.Errorf("Expected empty object arguments, got %q", tool.gotArgs)
	}
}

func TestBuildToolCallResponseMalformedParams(t *testing.T) {
	manager := tools.NewManager()

	for _, params := range []json.RawMessage{nil, json.RawMessage(`[1,2`), json.RawMessage(`"text"`)} {
		msg := jsonrpc.Request{ID: 1, Method: "tools/call", Params: params}
		resp := BuildToolCallResponse(context.Background(), msg, manager)
		if resp.Error == nil {
			t.Fatalf("Expected error for params %q", params)
		}
		if resp.Error.Code != int(jsonrpc.ErrInvalidParams) {
			t.Errorf("Expected invalid params code for %q, got %d", params, resp.Error.Code)
		}
		if resp.Error.Message != "Invalid tool call payload" {
			t.Errorf("Expected 'Invalid tool call payload', got %q", resp.Error.Message)
		}
	}
}

func TestBuildPingResponse(t *testing.T) {
	resp := BuildPingResponse(jsonrpc.Request{ID: "ping-1", Method: "ping"})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	if string(raw) != `{"jsonrpc":"2.0","id":"ping-1","result":{}}` {
		t.Errorf("Unexpected ping response: %s", raw)
	}
}

func TestClassifyToolError(t *testing.T) {
	notFound := fmt.Errorf("%w: %s", tools.ErrToolNotFound, "nope")
	rpcErr := ClassifyToolError("nope", notFound)
	if rpcErr.Code != jsonrpc.ErrMethodNotFound {
		t.Errorf("Expected method-not-found code, got %d", rpcErr.Code)
	}
	if rpcErr.Message != "Unknown tool: nope" {
		t.Errorf("Expected 'Unknown tool: nope', got %q", rpcErr.Message)
	}
	if rpcErr.Data != nil {
		t.Errorf("Unknown tool errors carry no data, got %v", rpcErr.Data)
	}
	if !jsonrpc.IsMethodNotFound(rpcErr) {
		t.Error("Expected IsMethodNotFound to match")
	}

	argErr := types.NewMissingArgumentError("text", "plantuml.render")
	rpcErr = ClassifyToolError("plantuml.render", argErr)
	if rpcErr.Code != jsonrpc.ErrInvalidParams {
		t.Errorf("Expected invalid params code, got %d", rpcErr.Code)
	}
	if rpcErr.Message != "text is required for plantuml.render" {
		t.Errorf("Expected argument message verbatim, got %q", rpcErr.Message)
	}
	if !jsonrpc.IsInvalidParams(rpcErr) {
		t.Error("Expected IsInvalidParams to match")
	}

	// Renderer failures and unavailable renderers map to the same internal
	// error shell with the diagnostic in data.
	for _, err := range []error{
		render.NewRenderFailedError(render.RendererGraphviz, "dot failed: syntax error in line 1"),
		render.NewUnavailableError(render.RendererGraphviz, "graphviz not available: dot binary not found"),
		errors.New("boom"),
	} {
		rpcErr = ClassifyToolError("graphviz.render", err)
		if rpcErr.Code != jsonrpc.ErrInternalError {
			t.Errorf("Expected internal error code for %v, got %d", err, rpcErr.Code)
		}
		if rpcErr.Message != "Tool execution failed" {
			t.Errorf("Expected 'Tool execution failed', got %q", rpcErr.Message)
		}
		if rpcErr.Data != err.Error() {
			t.Errorf("Expected diagnostic %q in data, got %v", err.Error(), rpcErr.Data)
		}
		if !jsonrpc.IsInternalError(rpcErr) {
			t.Error("Expected IsInternalError to match")
		}
	}
}

func TestDispatchStandardMethod(t *testing.T) {
	manager := tools.NewManager()
	manager.RegisterTool(&captureTool{
		name:   "capture",
		result: &types.RenderResult{ContentType: "image/svg+xml", Data: []byte("<svg/>")},
	})
	ctx := context.Background()

	resp := DispatchStandardMethod(ctx, jsonrpc.Request{ID: 1, Method: "tools/list"}, manager)
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}
	listResult, ok := resp.Result.(mcp.ToolsListResult)
	if !ok || len(listResult.Tools) != 1 {
		t.Errorf("Unexpected tools/list result: %+v", resp.Result)
	}

	callMsg := jsonrpc.Request{ID: 2, Method: "tools/call", Params: json.RawMessage(`{"name":"capture","arguments":{}}`)}
	resp = DispatchStandardMethod(ctx, callMsg, manager)
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/call failed: %+v", resp)
	}

	resp = DispatchStandardMethod(ctx, jsonrpc.Request{ID: 3, Method: "ping"}, manager)
	if resp == nil || resp.Error != nil {
		t.Fatalf("ping failed: %+v", resp)
	}

	// Unknown request methods produce an error naming the method
	resp = DispatchStandardMethod(ctx, jsonrpc.Request{ID: 4, Method: "resources/list"}, manager)
	if resp == nil || resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != int(jsonrpc.ErrMethodNotFound) {
		t.Errorf("Expected method-not-found code, got %d", resp.Error.Code)
	}
	if resp.Error.Message != "Method not found: resources/list" {
		t.Errorf("Expected method name in message, got %q", resp.Error.Message)
	}

	// Unknown notifications stay silent
	resp = DispatchStandardMethod(ctx, jsonrpc.Request{Method: "resources/list"}, manager)
	if resp != nil {
		t.Errorf("Expected nil response for unknown notification, got %+v", resp)
	}
}
