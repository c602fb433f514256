package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/diagramlab/mcp-diagram-go/config"
	"github.com/diagramlab/mcp-diagram-go/logger"
	"github.com/diagramlab/mcp-diagram-go/mcp"
	"github.com/diagramlab/mcp-diagram-go/tools"
	transporthttp "github.com/diagramlab/mcp-diagram-go/transport/http"
	"github.com/diagramlab/mcp-diagram-go/transport/stdio"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		mcpMode     bool
		httpMode    bool
		port        int
		configPath  string
		initConfig  bool
		showVersion bool
	)
	pflag.BoolVar(&mcpMode, "mcp", false, "run in MCP stdio mode")
	pflag.BoolVar(&httpMode, "http", false, "run in HTTP mode (default)")
	pflag.IntVar(&port, "port", 0, "HTTP port (overrides configuration)")
	pflag.StringVar(&configPath, "config", "", "path to the configuration file")
	pflag.BoolVar(&initConfig, "init-config", false, "write a default configuration file and exit")
	pflag.BoolVar(&showVersion, "version", false, "print version information and exit")
	pflag.Parse()

	if showVersion {
		fmt.Printf("%s %s\n", mcp.ServerName, mcp.ServerVersion)
		return nil
	}

	// A missing .env file is fine; variables already in the environment win.
	godotenv.Load()

	if configPath == "" {
		resolved, err := config.ResolveConfigPath()
		if err != nil {
			return err
		}
		configPath = resolved
	}

	if initConfig {
		if err := config.EnsureDefaultConfig(configPath); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", configPath)
		return nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level := logger.GetLevelFromString(cfg.Logging.Level)
	if cfg.Server.Debug {
		level = slog.LevelDebug
	}
	if err := logger.Init(level, logger.Format(cfg.Logging.Format), cfg.Logging.Path); err != nil {
		return err
	}

	mode := cfg.DefaultTransport()
	if mcpMode {
		mode = config.TransportStdio
	} else if httpMode {
		mode = config.TransportHTTP
	} else if useStdio, err := strconv.ParseBool(os.Getenv("MCP_USE_STDIO")); err == nil && useStdio {
		mode = config.TransportStdio
	}

	if mode == config.TransportStdio {
		return runStdio(cfg)
	}
	return runHTTP(cfg)
}

func runStdio(cfg *config.Config) error {
	logger.Info("Starting MCP server in stdio mode")
	toolManager := tools.NewManager()
	toolManager.RegisterDefaultTools(cfg)
	return stdio.NewStdioServer(toolManager).Start()
}

func runHTTP(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := transporthttp.NewServer(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
