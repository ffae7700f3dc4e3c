package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/aura/internal/timex"
)

// TomlConfig is a DTO used exclusively for decoding the config file. Zero
// values leave the corresponding Config field untouched.
type TomlConfig struct {
	ServerEndpointAddr string         `toml:"server_endpoint_addr"`
	DatabasePath       string         `toml:"database_path"`
	RequestTimeout     timex.Duration `toml:"request_timeout"`
	TransferTimeout    timex.Duration `toml:"transfer_timeout"`
	LogLevel           string         `toml:"log_level"`
}

// parseToml overlays cfg with the file at path. An empty path means the
// default location, which may be absent. Unknown keys are rejected so a typo
// does not silently fall back to a default.
func parseToml(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}

	var tc TomlConfig
	md, err := toml.DecodeFile(path, &tc)
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if tc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = tc.ServerEndpointAddr
	}
	if tc.DatabasePath != "" {
		cfg.DatabasePath = tc.DatabasePath
	}
	if tc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = tc.RequestTimeout.Duration
	}
	if tc.TransferTimeout.Duration > 0 {
		cfg.TransferTimeout = tc.TransferTimeout.Duration
	}
	if tc.LogLevel != "" {
		cfg.LogLevel = tc.LogLevel
	}
	return nil
}

// WriteTOML encodes c in the config file format.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(TomlConfig{
		ServerEndpointAddr: c.ServerEndpointAddr,
		DatabasePath:       c.DatabasePath,
		RequestTimeout:     timex.Duration{Duration: c.RequestTimeout},
		TransferTimeout:    timex.Duration{Duration: c.TransferTimeout},
		LogLevel:           c.LogLevel,
	})
}
