package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/aura/internal/flagx"
	"github.com/dmitrijs2005/aura/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Duration fields
// use timex.Duration so both "15m" and integer nanoseconds are accepted.
// Pointer fields distinguish "absent" from "false".
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	RedisURL                    string         `json:"redis_url"`
	PrincipalCacheTTL           timex.Duration `json:"principal_cache_ttl"`
	S3AccessKey                 string         `json:"s3_access_key"`
	S3SecretKey                 string         `json:"s3_secret_key"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	S3UsePathStyle              *bool          `json:"s3_use_path_style"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
	GinMode                     string         `json:"gin_mode"`
	LogLevel                    string         `json:"log_level"`
	BootstrapAdminHandle        string         `json:"bootstrap_admin_handle"`
	BootstrapAdminPassword      string         `json:"bootstrap_admin_password"`
}

// parseJson loads the file named by -c/-config (if any) and copies every
// non-zero field onto config. Unreadable files and invalid JSON panic.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration.Duration)
	overlay(&config.RedisURL, c.RedisURL)
	overlay(&config.PrincipalCacheTTL, c.PrincipalCacheTTL.Duration)
	overlay(&config.S3AccessKey, c.S3AccessKey)
	overlay(&config.S3SecretKey, c.S3SecretKey)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.GinMode, c.GinMode)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.BootstrapAdminHandle, c.BootstrapAdminHandle)
	overlay(&config.BootstrapAdminPassword, c.BootstrapAdminPassword)

	if c.S3UsePathStyle != nil {
		config.S3UsePathStyle = *c.S3UsePathStyle
	}
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
