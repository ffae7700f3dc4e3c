package models

import "time"

// Resource is a catalogued binary object. StorageKey is empty until a file
// has been attached.
type Resource struct {
	ID         string
	Title      string
	StorageKey string
	CreatedBy  string
	CreatedAt  time.Time
}
