package config

import (
	"os"
	"path/filepath"
	"time"
)

// userConfigDir is a seam for tests.
var userConfigDir = os.UserConfigDir

// Config holds runtime settings for the aura CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - DatabasePath: SQLite file holding the saved session.
//   - RequestTimeout: deadline for a single RPC.
//   - TransferTimeout: deadline for moving bytes to or from object storage.
//   - LogLevel: slog level for the stderr logger.
type Config struct {
	ServerEndpointAddr string
	DatabasePath       string
	RequestTimeout     time.Duration
	TransferTimeout    time.Duration
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = filepath.Join(configDir(), "aura.db")
	c.RequestTimeout = 30 * time.Second
	c.TransferTimeout = 10 * time.Minute
	c.LogLevel = "warn"
}

// DefaultConfigPath is where the TOML file is looked up when no explicit
// path is given.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return "."
	}
	return filepath.Join(dir, "aura")
}

// LoadConfig applies defaults, then the TOML file at path (the default
// location when path is empty, where a missing file is not an error), then
// the command-line overrides. Later sources take precedence.
func LoadConfig(path string, o Overrides) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseToml(cfg, path); err != nil {
		return nil, err
	}

	o.apply(cfg)
	return cfg, nil
}
