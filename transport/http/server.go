package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/diagramlab/mcp-diagram-go/config"
	"github.com/diagramlab/mcp-diagram-go/logger"
	"github.com/diagramlab/mcp-diagram-go/tools"
)

type Server struct {
	config      *config.Config
	toolManager *tools.Manager
	streams     *StreamRegistry
	echo        *echo.Echo
}

func NewServer(cfg *config.Config) *Server {
	return &Server{
		config:      cfg,
		toolManager: tools.NewManager(),
		streams:     NewStreamRegistry(),
		echo:        echo.New(),
	}
}

func (s *Server) Start() error {
	s.toolManager.RegisterDefaultTools(s.config)
	s.setupEcho()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	logger.Info("HTTP server starting to listen", "address", addr)
	return s.echo.Start(addr)
}

// Shutdown stops accepting connections, ends open event streams and waits
// for in-flight requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("HTTP server shutting down", "open_streams", s.streams.Count())
	s.streams.CloseAll()
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupEcho() {
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	RegisterRoutes(s.echo, s)
}

func (s *Server) GetToolManager() *tools.Manager {
	return s.toolManager
}

func (s *Server) GetConfig() *config.Config {
	return s.config
}
