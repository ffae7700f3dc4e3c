package models

import "github.com/dmitrijs2005/aura/internal/common"

// Principal is the authenticated identity a request acts as.
type Principal struct {
	SubjectID   string      `json:"subjectId"`
	DisplayName string      `json:"displayName"`
	Handle      string      `json:"handle"`
	Role        common.Role `json:"role"`
	Active      bool        `json:"active"`
}

// IsAdmin reports whether p carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == common.RoleAdmin
}
