// Package config loads and validates service configuration from YAML
// files and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrInvalidPort      = errors.New("invalid PORT value")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidTimeout   = errors.New("render timeout must be positive")
	ErrInvalidBodyLimit = errors.New("max body bytes must be positive")
	ErrInvalidPath      = errors.New("metrics path must start with /")
)

// Defaults applied before file and environment overrides.
const (
	DefaultListenAddr    = ":3000"
	DefaultMaxBodyBytes  = 50 << 20 // originals accepted up to 50 MB JSON bodies
	DefaultRenderTimeout = 90 * time.Second
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultMetricsPath   = "/metrics"
)

// Config holds all configuration for the document service.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig defines HTTP listener options.
type ServerConfig struct {
	ListenAddr   string `yaml:"listen_addr"`    // Default: ":3000"
	MaxBodyBytes int64  `yaml:"max_body_bytes"` // Request body cap, default 50 MB
}

// RenderConfig defines PDF render engine options.
type RenderConfig struct {
	Timeout time.Duration `yaml:"timeout"` // Per-render timeout, default 90s
	Workers int           `yaml:"workers"` // Browser pool size, 0 = auto
}

// LoggingConfig defines structured logging options.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text" or "json"
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // Default: /metrics
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:   DefaultListenAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Render: RenderConfig{
			Timeout: DefaultRenderTimeout,
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}

// Load reads configuration from the given YAML file, applies
// environment overrides, and validates the result. An empty path skips
// the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
// PORT selects the listening port and wins over the file value.
func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("%w: %q", ErrInvalidPort, port)
		}
		c.Server.ListenAddr = ":" + port
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBodyLimit, c.Server.MaxBodyBytes)
	}
	if c.Render.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Render.Timeout)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		return fmt.Errorf("%w: %q", ErrInvalidPath, c.Metrics.Path)
	}
	return nil
}
