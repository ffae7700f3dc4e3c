package models

import "time"

type Resource struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StorageKey string    `json:"storageKey,omitempty"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HasFile reports whether a file has been attached to the resource.
func (r *Resource) HasFile() bool {
	return r.StorageKey != ""
}
