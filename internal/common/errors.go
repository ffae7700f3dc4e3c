// Package common defines shared constants and sentinel errors used across
// client and server layers of aura. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Access errors: missing, invalid or insufficient-role token.
	ErrorUnauthorized = errors.New("unauthorized")

	// Backing store (object storage) is not configured.
	ErrorServiceUnavailable = errors.New("service unavailable")

	// Validation errors: missing, empty, oversized or disallowed payload.
	ErrorInvalidInput = errors.New("invalid input")

	// Collaborator errors.
	ErrorUnreachable = errors.New("unreachable")
	ErrorInternal    = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
