package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/diagramlab/mcp-diagram-go/logger"
	"github.com/diagramlab/mcp-diagram-go/mcp/jsonrpc"
	"github.com/diagramlab/mcp-diagram-go/tools"
	"github.com/diagramlab/mcp-diagram-go/transport/shared"
)

// StdioServer handles MCP communication over stdio
type StdioServer struct {
	toolManager *tools.Manager
}

// NewStdioServer creates a new stdio server
func NewStdioServer(toolManager *tools.Manager) *StdioServer {
	return &StdioServer{
		toolManager: toolManager,
	}
}

// Start serves MCP on the process's stdin and stdout
func (s *StdioServer) Start() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes one
// response per line to w. It returns when r is exhausted.
func (s *StdioServer) Serve(r io.Reader, w io.Writer) error {
	ctx := context.Background()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	encoder := json.NewEncoder(w)

	logger.Debug("Stdio server started and waiting for messages")

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var msg jsonrpc.Request
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			logger.Error("Error decoding message", "error", err)
			// Parse errors carry a null id because the request id never decoded.
			errResp := jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrParseError), "Parse error", err.Error())
			if err := encoder.Encode(errResp); err != nil {
				return err
			}
			continue
		}

		logger.Debug("Stdio message received", "method", msg.Method)

		response := s.handleMessage(ctx, msg)
		if response == nil || msg.IsNotification() {
			continue
		}
		if err := encoder.Encode(response); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("Stdio read failed", "error", err)
		return err
	}

	logger.Debug("Stdio EOF received, terminating server")
	return nil
}

func (s *StdioServer) handleMessage(ctx context.Context, msg jsonrpc.Request) *jsonrpc.Response {
	switch {
	case msg.Method == "initialize":
		logger.Debug("Handling initialize message")
		return shared.BuildInitializeResponse(msg)
	case msg.Method == "initialized" || strings.HasPrefix(msg.Method, "notifications/"):
		logger.Debug("Client notification received", "method", msg.Method)
		return nil
	default:
		return shared.DispatchStandardMethod(ctx, msg, s.toolManager)
	}
}
