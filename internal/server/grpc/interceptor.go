package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
	pb "github.com/dmitrijs2005/aura/internal/proto"
	"github.com/dmitrijs2005/aura/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods are reachable without a bearer token.
var publicMethods = map[string]struct{}{
	pb.AuraService_Ping_FullMethodName:  {},
	pb.AuraService_Login_FullMethodName: {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	var authorization string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			authorization = values[0]
		}
	}

	p, err := s.gate.Authenticate(ctx, authorization)
	if err != nil {
		if cause := auth.Outage(err); cause != nil {
			return nil, toStatus(cause)
		}
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	ctx = logging.ContextWith(auth.WithPrincipal(ctx, p), "subject", p.SubjectID)
	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	ctx = logging.ContextWith(ctx, "request_id", uuid.NewString())
	l := s.logger.With("method", info.FullMethod)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	if code == codes.Internal || code == codes.Unknown {
		l.Error(ctx, "request failed", "code", code.String(), "duration", time.Since(start))
	} else {
		l.Info(ctx, "request", "code", code.String(), "duration", time.Since(start))
	}
	return resp, err
}
