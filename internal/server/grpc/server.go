// Package grpc exposes the aura service over gRPC for the CLI client.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/aura/internal/logging"
	pb "github.com/dmitrijs2005/aura/internal/proto"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/dmitrijs2005/aura/internal/server/services"
	"google.golang.org/grpc"
)

// Authenticator resolves an Authorization value to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (models.Principal, error)
}

type UserService interface {
	Login(ctx context.Context, handle string, secret []byte) (*services.LoginResult, error)
	CurrentPrincipal(ctx context.Context, subject string) (models.Principal, error)
}

type ResourceService interface {
	Create(ctx context.Context, p models.Principal, title, storageKey string) (*models.Resource, error)
	List(ctx context.Context, p models.Principal) ([]*models.Resource, error)
}

type TransferBroker interface {
	IssueUploadGrant(ctx context.Context, p models.Principal, fileName, contentType string) (*models.TransferGrant, error)
	UploadDirect(ctx context.Context, p models.Principal, fileName, contentType string, data []byte) (*models.UploadReceipt, error)
	IssueDownloadGrant(ctx context.Context, p models.Principal, resourceID string) (*models.TransferGrant, error)
}

type GRPCServer struct {
	pb.UnimplementedAuraServiceServer
	address   string
	gate      Authenticator
	users     UserService
	resources ResourceService
	broker    TransferBroker
	logger    logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, gate Authenticator, us UserService, rs ResourceService, b TransferBroker) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		gate:      gate,
		users:     us,
		resources: rs,
		broker:    b,
	}
}

// newServer builds the grpc.Server with interceptors and the service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
		grpc.MaxRecvMsgSize(pb.MaxMessageSize),
		grpc.MaxSendMsgSize(pb.MaxMessageSize),
	)
	pb.RegisterAuraServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
