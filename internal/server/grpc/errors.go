package grpc

import (
	"errors"

	"github.com/dmitrijs2005/aura/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC status codes. Internal failures
// are reported without detail.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrorServiceUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, common.ErrorInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorUnreachable):
		return status.Error(codes.Unavailable, "upstream unreachable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
