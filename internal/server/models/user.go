// Package models defines server-side data models persisted in the database
// and the values passed between the access gate, services and transports.
package models

import (
	"time"

	"github.com/dmitrijs2005/aura/internal/common"
)

// User is a persisted account.
type User struct {
	ID           string
	Handle       string
	DisplayName  string
	PasswordHash []byte
	Role         common.Role
	Active       bool
	CreatedAt    time.Time
}

// Principal returns the authenticated identity view of u.
func (u *User) Principal() Principal {
	return Principal{
		SubjectID:   u.ID,
		DisplayName: u.DisplayName,
		Handle:      u.Handle,
		Role:        u.Role,
		Active:      u.Active,
	}
}
