package models

import "time"

// Grant is a short-lived permission to move bytes to or from object
// storage without going through the server.
type Grant struct {
	URL                string
	Method             string
	SignedHeaders      map[string]string
	StorageKey         string
	Operation          string
	ContentType        string
	ContentDisposition string
	FileName           string
	IssuedAt           time.Time
	ExpiresAt          time.Time
}

// Expired reports whether the grant can no longer be used at now.
func (g *Grant) Expired(now time.Time) bool {
	return !g.ExpiresAt.IsZero() && !now.Before(g.ExpiresAt)
}

// UploadReceipt describes an object written through the direct upload path.
type UploadReceipt struct {
	StorageKey  string
	ContentType string
	Size        int64
}
