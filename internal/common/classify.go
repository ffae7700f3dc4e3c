package common

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ClassifyCollaboratorError tags a failure returned by an external
// collaborator (object store, record store, cache) with ErrorUnreachable
// when it is a transport-level problem and with ErrorInternal otherwise.
// Errors already carrying one of the package sentinels are returned as is.
func ClassifyCollaboratorError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrorNotFound, ErrorUnauthorized, ErrorServiceUnavailable, ErrorInvalidInput, ErrorUnreachable, ErrorInternal} {
		if errors.Is(err, known) {
			return err
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrorUnreachable, err)
	}
	return fmt.Errorf("%w: %v", ErrorInternal, err)
}
