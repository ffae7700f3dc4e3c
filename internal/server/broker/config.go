package broker

import "time"

const (
	DefaultUploadWindow      = 900 * time.Second
	DefaultDownloadWindow    = 3600 * time.Second
	DefaultMaxUploadSize     = 50 << 20
	DefaultMaxFileNameLength = 120
)

// Config is built once at startup and never changes afterwards.
type Config struct {
	UploadWindow        time.Duration
	DownloadWindow      time.Duration
	MaxUploadSize       int64
	MaxFileNameLength   int
	AllowedContentTypes []string
}

// DefaultConfig accepts PDF documents and the common browser video formats.
func DefaultConfig() Config {
	return Config{
		UploadWindow:      DefaultUploadWindow,
		DownloadWindow:    DefaultDownloadWindow,
		MaxUploadSize:     DefaultMaxUploadSize,
		MaxFileNameLength: DefaultMaxFileNameLength,
		AllowedContentTypes: []string{
			"application/pdf",
			"video/mp4",
			"video/webm",
			"video/quicktime",
		},
	}
}

func (c Config) allowed(contentType string) bool {
	for _, ct := range c.AllowedContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}
