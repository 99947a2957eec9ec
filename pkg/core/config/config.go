// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     config
// Description: Application configuration loaded from TOML, YAML or CUE files
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue/cuecontext"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "MOTE_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general" json:"general"`
	Log      LogConfig      `toml:"log" yaml:"log" json:"log"`
	Frontend FrontendConfig `toml:"frontend" yaml:"frontend" json:"frontend"`
	History  HistoryConfig  `toml:"history" yaml:"history" json:"history"`
	Server   ServerConfig   `toml:"server" yaml:"server" json:"server"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	Environment string `toml:"environment" yaml:"environment" json:"environment"`
	DataDir     string `toml:"data_dir" yaml:"data_dir" json:"data_dir"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level   string `toml:"level" yaml:"level" json:"level"`
	Format  string `toml:"format" yaml:"format" json:"format"`
	File    string `toml:"file" yaml:"file" json:"file"`
	Journal bool   `toml:"journal" yaml:"journal" json:"journal"`
}

// FrontendConfig holds lexer and parser limits and the result cache.
// A CacheSize of zero disables the cache.
type FrontendConfig struct {
	MaxSourceLength int      `toml:"max_source_length" yaml:"max_source_length" json:"max_source_length"`
	CacheSize       int      `toml:"cache_size" yaml:"cache_size" json:"cache_size"`
	CacheTTL        Duration `toml:"cache_ttl" yaml:"cache_ttl" json:"cache_ttl"`
}

// HistoryConfig holds parse history settings
type HistoryConfig struct {
	Enabled   bool   `toml:"enabled" yaml:"enabled" json:"enabled"`
	Path      string `toml:"path" yaml:"path" json:"path"`
	ListLimit int    `toml:"list_limit" yaml:"list_limit" json:"list_limit"`
}

// ServerConfig holds gRPC server settings
type ServerConfig struct {
	Host           string   `toml:"host" yaml:"host" json:"host"`
	Port           int      `toml:"port" yaml:"port" json:"port"`
	Timeout        Duration `toml:"timeout" yaml:"timeout" json:"timeout"`
	MaxMessageSize int      `toml:"max_message_size" yaml:"max_message_size" json:"max_message_size"`
}

// Duration wraps time.Duration for text based config formats
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML, YAML or CUE file, selected by the
// file extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".cue":
		value := cuecontext.New().CompileBytes(content)
		if err := value.Err(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if err := value.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadDefault resolves the configuration path and loads it. An explicit
// path wins, then MOTE_CONFIG, then the default locations. Without any
// file the built-in defaults are returned.
func LoadDefault(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	if path := os.Getenv(EnvConfigPath); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}

	return Default(), "", nil
}

// DefaultPaths lists the locations searched for a config file
func DefaultPaths() []string {
	paths := []string{
		"./configs/mote.toml",
		"./mote.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mote", "mote.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "mote"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Frontend
	if c.Frontend.MaxSourceLength == 0 {
		c.Frontend.MaxSourceLength = 1 << 20
	}
	if c.Frontend.CacheTTL.Duration == 0 {
		c.Frontend.CacheTTL.Duration = 5 * time.Minute
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
	if c.History.ListLimit == 0 {
		c.History.ListLimit = 20
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9300
	}
	if c.Server.Timeout.Duration == 0 {
		c.Server.Timeout.Duration = 10 * time.Second
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = 4 << 20
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.History.Path = os.ExpandEnv(c.History.Path)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

// ServerAddress returns the host:port string of the gRPC server
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
