package client

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ServerError is an explicit answer from the server. Err, when set, is one
// of the package sentinels so callers can use errors.Is.
type ServerError struct {
	Code    codes.Code
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%s): %s", e.Code, e.Message)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
