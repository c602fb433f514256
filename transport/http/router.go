package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/diagramlab/mcp-diagram-go/logger"
	"github.com/diagramlab/mcp-diagram-go/mcp"
	"github.com/diagramlab/mcp-diagram-go/mcp/jsonrpc"
	"github.com/diagramlab/mcp-diagram-go/transport/shared"
)

const maxJSONRPCBodyBytes = 1 << 20

const keepaliveInterval = 15 * time.Second

func RegisterRoutes(e *echo.Echo, s *Server) {
	e.GET("/", s.handleIndex)
	e.POST("/list_tools", s.handleListTools)
	e.POST("/call_tool", s.handleCallTool)
	e.POST("/sse", s.handleMCPPost)
	e.GET("/sse", s.handleMCPStream)
	e.OPTIONS("/sse", s.handleOptions)
}

// handleIndex serves the bundled UI page when it exists, otherwise a small
// service info payload.
func (s *Server) handleIndex(c echo.Context) error {
	uiPath := s.config.Server.UIPath
	if uiPath != "" {
		if info, err := os.Stat(uiPath); err == nil && !info.IsDir() {
			return c.File(uiPath)
		}
	}

	logger.Debug("UI file not found, serving service info", "path", uiPath)
	return c.JSON(http.StatusOK, map[string]any{
		"name":        mcp.ServerName,
		"version":     mcp.ServerVersion,
		"description": s.config.Description,
		"endpoints":   []string{"/list_tools", "/call_tool", "/sse"},
	})
}

func (s *Server) handleOptions(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (s *Server) handleListTools(c echo.Context) error {
	logger.Debug("REST tool listing requested", "remote_addr", c.RealIP())

	mcpTools := s.toolManager.GetTools()
	sort.Slice(mcpTools, func(i, j int) bool {
		return mcpTools[i].Name < mcpTools[j].Name
	})

	toolList := make([]map[string]any, 0, len(mcpTools))
	for _, tool := range mcpTools {
		toolList = append(toolList, map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"arguments":   argumentDescriptors(tool.InputSchema),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "tools": toolList})
}

// argumentDescriptors flattens an input schema into the REST argument map:
// argument name to {type, required, default?}.
func argumentDescriptors(schema mcp.InputSchema) map[string]any {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	descriptors := make(map[string]any, len(schema.Properties))
	for name, raw := range schema.Properties {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		descriptor := map[string]any{
			"type":     prop["type"],
			"required": required[name],
		}
		if def, ok := prop["default"]; ok {
			descriptor["default"] = def
		}
		descriptors[name] = descriptor
	}
	return descriptors
}

// handleCallTool executes a tool for REST clients. The endpoint always
// answers 200; failures travel in the body as {ok:false, error}.
func (s *Server) handleCallTool(c echo.Context) error {
	var req struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		logger.Warn("Malformed REST tool call body", "error", err)
		return c.JSON(http.StatusOK, map[string]any{"ok": false, "error": "invalid JSON body: " + err.Error()})
	}

	arguments := req.Arguments
	if arguments == nil {
		arguments = map[string]any{}
	}

	logger.Debug("REST tool call", "tool", req.Name, "remote_addr", c.RealIP())
	result, err := s.toolManager.CallTool(c.Request().Context(), req.Name, arguments)
	if err != nil {
		logger.Warn("REST tool call failed", "tool", req.Name, "error", err)
		return c.JSON(http.StatusOK, map[string]any{"ok": false, "error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{"ok": true, "result": result})
}

// handleMCPPost answers one JSON-RPC message per request body. MCP errors
// ride in 200 responses; only the transport itself can fail harder.
func (s *Server) handleMCPPost(c echo.Context) error {
	limitedBody := http.MaxBytesReader(c.Response(), c.Request().Body, maxJSONRPCBodyBytes)
	defer limitedBody.Close()

	body, err := io.ReadAll(limitedBody)
	if err != nil {
		logger.Warn("Failed to read MCP request body", "error", err)
		return c.JSON(http.StatusOK, jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrParseError), "Parse error", nil))
	}

	var msg jsonrpc.Request
	if err := json.Unmarshal(body, &msg); err != nil {
		logger.Debug("Malformed MCP request", "error", err)
		return c.JSON(http.StatusOK, jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrParseError), "Parse error", nil))
	}

	logger.Debug("MCP request received", "method", msg.Method, "id", msg.ID)

	response := s.handleMessage(c.Request().Context(), msg)
	if response == nil || msg.IsNotification() {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) handleMessage(ctx context.Context, msg jsonrpc.Request) *jsonrpc.Response {
	switch {
	case msg.Method == "initialize":
		logger.Debug("Handling initialize message", "request_id", msg.ID)
		return shared.BuildInitializeResponse(msg)
	case msg.Method == "initialized" || strings.HasPrefix(msg.Method, "notifications/"):
		logger.Debug("Client notification received", "method", msg.Method)
		return nil
	default:
		return shared.DispatchStandardMethod(ctx, msg, s.toolManager)
	}
}

// handleMCPStream holds an SSE connection open. The first frame tells the
// client where to POST; after that only keepalive comments flow.
func (s *Server) handleMCPStream(c echo.Context) error {
	logger.Info("SSE stream opened", "remote_addr", c.RealIP())

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "streaming unsupported"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
	flusher.Flush()

	streamCtx, stopStream := context.WithCancel(c.Request().Context())
	defer stopStream()

	stream := NewSSEStream(c.Response().Writer, flusher, stopStream)
	id := s.streams.Add(stream)
	defer s.streams.Remove(id)
	defer stream.Close()

	if err := stream.SendEvent("endpoint", "/sse"); err != nil {
		logger.Warn("Failed to write SSE endpoint event", "error", err)
		return nil
	}

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-streamCtx.Done():
			logger.Info("SSE stream closed", "remote_addr", c.RealIP())
			return nil
		case <-ticker.C:
			if err := stream.SendComment("keepalive"); err != nil {
				logger.Debug("SSE keepalive failed, dropping stream", "error", err)
				return nil
			}
		}
	}
}
