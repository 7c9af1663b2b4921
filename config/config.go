// ABOUTME: Layered configuration for netgraph: defaults, YAML file, .env, NETGRAPH_* environment variables.
// ABOUTME: Resolves the XDG config path and validates the merged result with validator/v10.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "NETGRAPH_"

// Config is the full tool configuration.
type Config struct {
	// Input is a .yaml/.yml/.dot/.gv dataset; empty means the built-in sample.
	Input string `yaml:"input"`
	// Start is the BFS root; empty means the first inserted node.
	Start  string       `yaml:"start"`
	Export ExportConfig `yaml:"export"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ExportConfig controls the DOT export.
type ExportConfig struct {
	Path   string `yaml:"path" validate:"required"`
	Name   string `yaml:"name"`
	Format string `yaml:"format" validate:"oneof=dot svg png"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr      string        `yaml:"addr" validate:"required,hostname_port"`
	RenderTTL time.Duration `yaml:"render_ttl" validate:"gte=0"`
}

// LogConfig selects the zap logger flavor.
type LogConfig struct {
	Env   string `yaml:"env" validate:"oneof=development production"`
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Export: ExportConfig{
			Path:   "graph.dot",
			Name:   "G",
			Format: "dot",
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:2390",
			RenderTTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Env: "development",
		},
	}
}

var validate = validator.New()

// Validate checks field constraints on the merged configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load merges defaults, the YAML file at path (or the default config file if
// path is empty and one exists), a .env file in the working directory and the
// process environment, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if p, err := DefaultConfigFile(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	// godotenv.Load never overrides variables already present.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays NETGRAPH_* variables onto c.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"INPUT":         &c.Input,
		"START":         &c.Start,
		"EXPORT_PATH":   &c.Export.Path,
		"EXPORT_NAME":   &c.Export.Name,
		"EXPORT_FORMAT": &c.Export.Format,
		"SERVER_ADDR":   &c.Server.Addr,
		"LOG_ENV":       &c.Log.Env,
		"LOG_LEVEL":     &c.Log.Level,
	}
	for key, dst := range str {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvPrefix + "SERVER_RENDER_TTL"); ok {
		ttl, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sSERVER_RENDER_TTL: %w", EnvPrefix, err)
		}
		c.Server.RenderTTL = ttl
	}
	return nil
}

// DefaultConfigFile returns the config file path under the XDG config directory.
func DefaultConfigFile() (string, error) {
	dir, err := defaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// defaultConfigDir checks XDG_CONFIG_HOME first, then falls back to ~/.config/netgraph.
func defaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "netgraph"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "netgraph"), nil
}
