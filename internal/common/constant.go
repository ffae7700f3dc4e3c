// Package common contains shared constants and sentinel errors used across
// aura components.
package common

// AuthorizationHeaderName is the gRPC metadata key (and HTTP header) used
// to carry the bearer token on outbound requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token in the authorization value.
const BearerPrefix = "Bearer "

// Role names a principal's role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}
