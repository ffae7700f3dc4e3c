package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/aura/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays AURA_* environment variables onto config.
//
// When -env-file is given the file is loaded first; otherwise a ".env" in
// the working directory is loaded if present. Variables already set in the
// process environment win over the file. An unreadable explicit env file
// panics, a missing implicit one is ignored.
func parseEnv(config *Config, args []string) {
	if path := flagx.EnvFileFlag(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	setString(&config.EndpointAddrGRPC, "AURA_GRPC_ADDR")
	setString(&config.EndpointAddrHTTP, "AURA_HTTP_ADDR")
	setString(&config.DatabaseDSN, "AURA_DATABASE_DSN")
	setString(&config.SecretKey, "AURA_SECRET_KEY")
	setDuration(&config.AccessTokenValidityDuration, "AURA_ACCESS_TOKEN_TTL")
	setString(&config.RedisURL, "AURA_REDIS_URL")
	setDuration(&config.PrincipalCacheTTL, "AURA_PRINCIPAL_CACHE_TTL")
	setString(&config.S3AccessKey, "AURA_S3_ACCESS_KEY")
	setString(&config.S3SecretKey, "AURA_S3_SECRET_KEY")
	setString(&config.S3Bucket, "AURA_S3_BUCKET")
	setString(&config.S3Region, "AURA_S3_REGION")
	setString(&config.S3BaseEndpoint, "AURA_S3_ENDPOINT")
	setBool(&config.S3UsePathStyle, "AURA_S3_PATH_STYLE")
	setString(&config.GinMode, "AURA_GIN_MODE")
	setString(&config.LogLevel, "AURA_LOG_LEVEL")
	setString(&config.BootstrapAdminHandle, "AURA_BOOTSTRAP_ADMIN")
	setString(&config.BootstrapAdminPassword, "AURA_BOOTSTRAP_PASSWORD")

	if v, ok := os.LookupEnv("AURA_CORS_ORIGINS"); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}

func setBool(dst *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(err)
	}
	*dst = b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
