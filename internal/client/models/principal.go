// Package models defines client-side data models used by the aura CLI.
package models

import (
	"errors"

	"github.com/dmitrijs2005/aura/internal/common"
)

var ErrInvalidPrincipal = errors.New("invalid principal")

// Principal is the signed-in identity as reported by the server. It is
// persisted as JSON next to the token.
type Principal struct {
	SubjectID   string      `json:"subjectId"`
	DisplayName string      `json:"displayName"`
	Handle      string      `json:"handle"`
	Role        common.Role `json:"role"`
	Active      bool        `json:"active"`
}

// Validate checks the fields a stored or received principal must carry.
func (p Principal) Validate() error {
	if p.SubjectID == "" || !p.Role.Valid() {
		return ErrInvalidPrincipal
	}
	return nil
}

func (p Principal) IsAdmin() bool {
	return p.Role == common.RoleAdmin
}
