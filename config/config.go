package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diagramlab/mcp-diagram-go/mcp"
)

// Transport types
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the diagram server configuration
type Config struct {
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	Description string      `json:"description"`
	Server      Server      `json:"server"`
	Renderers   Renderers   `json:"renderers"`
	Transports  []Transport `json:"transports"`
	Logging     Logging     `json:"logging"`
}

// Server represents server configuration
type Server struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Debug  bool   `json:"debug"`
	UIPath string `json:"ui_path"`
}

// Renderers holds per-renderer settings
type Renderers struct {
	PlantUML PlantUML `json:"plantuml"`
	Graphviz Graphviz `json:"graphviz"`
	Mermaid  Mermaid  `json:"mermaid"`
}

// PlantUML configures the remote PlantUML rendering server
type PlantUML struct {
	ServerURL      string `json:"server_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Graphviz configures the local dot binary
type Graphviz struct {
	DotPath string `json:"dot_path"`
}

// Mermaid configures the mermaid CLI. An empty CLIPath means autodiscover
// mmdc on PATH with an npx fallback.
type Mermaid struct {
	CLIPath string `json:"cli_path"`
	Theme   string `json:"theme"`
}

// Transport represents a transport configuration
type Transport struct {
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}

// Logging represents logging configuration. An empty path logs to stderr
// only.
type Logging struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	Path   string `json:"path"`
}

// DefaultPlantUMLServer is used when no server URL is configured.
const DefaultPlantUMLServer = "https://www.plantuml.com/plantuml"

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Name:        mcp.ServerName,
		Version:     mcp.ServerVersion,
		Description: "Model Context Protocol server exposing diagram rendering tools",
		Server: Server{
			Host:   "0.0.0.0",
			Port:   8050,
			Debug:  false,
			UIPath: "diagram_ui.html",
		},
		Renderers: Renderers{
			PlantUML: PlantUML{
				ServerURL:      DefaultPlantUMLServer,
				TimeoutSeconds: 20,
			},
			Graphviz: Graphviz{
				DotPath: "dot",
			},
			Mermaid: Mermaid{
				CLIPath: "",
				Theme:   "default",
			},
		},
		Transports: []Transport{
			{
				Type:    TransportHTTP,
				Enabled: true,
			},
			{
				Type:    TransportStdio,
				Enabled: true,
			},
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
			Path:   "",
		},
	}
}

// LoadConfig loads the configuration from a file. A missing file is not an
// error: defaults plus environment overrides apply, so the server runs with
// zero configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Override with environment variables (highest priority).
	applyEnvOverrides(cfg)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) {
	if portStr := os.Getenv("MCP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Server.Port = port
		} else {
			log.Printf("warning: ignoring invalid MCP_PORT value %q: %v", portStr, err)
		}
	}

	if host := os.Getenv("MCP_HOST"); host != "" {
		cfg.Server.Host = host
	}

	if debug := os.Getenv("MCP_DEBUG"); debug != "" {
		if parsed, err := strconv.ParseBool(debug); err == nil {
			cfg.Server.Debug = parsed
		} else {
			log.Printf("warning: ignoring invalid MCP_DEBUG value %q: %v", debug, err)
		}
	}

	if logLevel := os.Getenv("MCP_LOG_LEVEL"); logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if logPath := os.Getenv("MCP_LOG_PATH"); logPath != "" {
		cfg.Logging.Path = logPath
	}

	if server := os.Getenv("PLANTUML_SERVER"); server != "" {
		cfg.Renderers.PlantUML.ServerURL = server
	}

	if timeoutStr := os.Getenv("MCP_PLANTUML_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil {
			cfg.Renderers.PlantUML.TimeoutSeconds = timeout
		} else {
			log.Printf("warning: ignoring invalid MCP_PLANTUML_TIMEOUT_SECONDS value %q: %v", timeoutStr, err)
		}
	}

	if dotPath := os.Getenv("MCP_GRAPHVIZ_DOT"); dotPath != "" {
		cfg.Renderers.Graphviz.DotPath = dotPath
	}

	if cliPath := os.Getenv("MCP_MERMAID_CLI"); cliPath != "" {
		cfg.Renderers.Mermaid.CLIPath = cliPath
	}

	if theme := os.Getenv("MCP_MERMAID_THEME"); theme != "" {
		cfg.Renderers.Mermaid.Theme = theme
	}
}

// Normalize canonicalizes config values so downstream validation and runtime
// logic operate on stable representations.
func (c *Config) Normalize() {
	c.Server.Host = strings.TrimSpace(c.Server.Host)
	c.Server.UIPath = strings.TrimSpace(c.Server.UIPath)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Path = strings.TrimSpace(c.Logging.Path)

	// Trailing slashes break URL joining against the render path.
	c.Renderers.PlantUML.ServerURL = strings.TrimRight(strings.TrimSpace(c.Renderers.PlantUML.ServerURL), "/")
	if c.Renderers.PlantUML.ServerURL == "" {
		c.Renderers.PlantUML.ServerURL = DefaultPlantUMLServer
	}
	if c.Renderers.PlantUML.TimeoutSeconds == 0 {
		c.Renderers.PlantUML.TimeoutSeconds = 20
	}
	c.Renderers.Graphviz.DotPath = strings.TrimSpace(c.Renderers.Graphviz.DotPath)
	if c.Renderers.Graphviz.DotPath == "" {
		c.Renderers.Graphviz.DotPath = "dot"
	}
	c.Renderers.Mermaid.CLIPath = strings.TrimSpace(c.Renderers.Mermaid.CLIPath)
	c.Renderers.Mermaid.Theme = strings.TrimSpace(c.Renderers.Mermaid.Theme)
	if c.Renderers.Mermaid.Theme == "" {
		c.Renderers.Mermaid.Theme = "default"
	}

	for i := range c.Transports {
		c.Transports[i].Type = strings.ToLower(strings.TrimSpace(c.Transports[i].Type))
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid port number")
	}

	if c.Server.Host == "" {
		return errors.New("host cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return errors.New("invalid log level")
	}

	validLogFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return errors.New("invalid log format")
	}

	if len(c.Transports) == 0 {
		return errors.New("at least one transport must be configured")
	}

	validTransportTypes := map[string]bool{
		TransportStdio: true,
		TransportHTTP:  true,
	}

	enabledTransports := 0
	for _, t := range c.Transports {
		if !validTransportTypes[t.Type] {
			return fmt.Errorf("invalid transport type: %s", t.Type)
		}
		if t.Enabled {
			enabledTransports++
		}
	}

	if enabledTransports == 0 {
		return errors.New("at least one transport must be enabled")
	}

	if c.Renderers.PlantUML.TimeoutSeconds < 1 || c.Renderers.PlantUML.TimeoutSeconds > 300 {
		return fmt.Errorf(
			"invalid plantuml timeout seconds %d: expected range 1..300",
			c.Renderers.PlantUML.TimeoutSeconds,
		)
	}

	return nil
}

// DefaultTransport returns the type of the first enabled transport. It
// decides the run mode when neither CLI flags nor environment pick one.
func (c *Config) DefaultTransport() string {
	for _, t := range c.Transports {
		if t.Enabled {
			return t.Type
		}
	}
	return TransportHTTP
}

// ResolveConfigPath returns the path that should be used for configuration.
func ResolveConfigPath() (string, error) {
	// First check environment variable
	if path := strings.TrimSpace(os.Getenv("MCP_CONFIG_PATH")); path != "" {
		return path, nil
	}

	// Then check config/mcp_config.json in current directory
	if _, err := os.Stat("config/mcp_config.json"); err == nil {
		return "config/mcp_config.json", nil
	}

	// Finally check home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".mcp-diagram", "config", "mcp_config.json"), nil
}

// EnsureDefaultConfig creates a default config file if one does not exist.
func EnsureDefaultConfig(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path cannot be empty")
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := NewConfig()
	defaultConfig.Normalize()
	data, err := json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}
