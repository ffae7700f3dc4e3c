// Package config loads runtime configuration for the aura CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional TOML file: --config, or <user config dir>/aura/config.toml.
//  3. Command-line flags passed in as Overrides.
//
// # TOML schema
//
// Durations are written as strings:
//
//	server_endpoint_addr = "127.0.0.1:50051"
//	database_path        = "/home/me/.config/aura/aura.db"
//	request_timeout      = "30s"
//	transfer_timeout     = "10m"
//	log_level            = "warn"
//
// Unknown keys are an error.
package config
