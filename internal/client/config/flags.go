package config

import "time"

// Overrides carries values from command-line flags. Empty or zero fields
// are ignored.
type Overrides struct {
	ServerEndpointAddr string
	DatabasePath       string
	RequestTimeout     time.Duration
	Verbose            bool
}

func (o Overrides) apply(cfg *Config) {
	if o.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = o.ServerEndpointAddr
	}
	if o.DatabasePath != "" {
		cfg.DatabasePath = o.DatabasePath
	}
	if o.RequestTimeout > 0 {
		cfg.RequestTimeout = o.RequestTimeout
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
}
