package session

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnreachable        = errors.New("server unreachable")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrNotSignedIn        = errors.New("not signed in")
)

// AuthError is returned by Login. Err is ErrInvalidCredentials or
// ErrUnreachable; Message is the server's explanation when it gave one.
type AuthError struct {
	Err     error
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
