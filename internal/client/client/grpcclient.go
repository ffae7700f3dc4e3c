package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/common"
	pb "github.com/dmitrijs2005/aura/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type GRPCClient struct {
	endpointURL    string
	requestTimeout time.Duration
	conn           *grpc.ClientConn
	client         pb.AuraServiceClient

	mu          sync.RWMutex
	tokenSource func() string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AuthorizationHeaderName)
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewAuraClient prepares a lazy connection to endpointURL. extra dial
// options are appended after the defaults.
func NewAuraClient(endpointURL string, requestTimeout time.Duration, extra ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, requestTimeout: requestTimeout}
	if err := c.InitGRPCClient(extra...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(extra ...grpc.DialOption) error {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(pb.MaxMessageSize),
			grpc.MaxCallSendMsgSize(pb.MaxMessageSize),
		),
	}
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAuraServiceClient(conn)
	return nil
}

// SetTokenSource installs the function consulted for the bearer token on
// every call. A nil source or an empty token sends no authorization.
func (s *GRPCClient) SetTokenSource(f func() string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenSource = f
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	f := s.tokenSource
	s.mu.RUnlock()
	if f == nil {
		return ""
	}
	return f()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Ping(ctx, &emptypb.Empty{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, handle string, secret []byte) (*LoginResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Handle: handle, Secret: secret})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &LoginResult{Token: resp.Token, Principal: principalFromPB(resp.Principal)}, nil
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (models.Principal, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CurrentUser(ctx, &pb.CurrentUserRequest{})
	if err != nil {
		return models.Principal{}, s.mapError(err)
	}
	return principalFromPB(resp.Principal), nil
}

func (s *GRPCClient) IssueUploadGrant(ctx context.Context, fileName, contentType string) (*models.Grant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.IssueUploadGrant(ctx, &pb.IssueUploadGrantRequest{FileName: fileName, ContentType: contentType})
	if err != nil {
		return nil, s.mapError(err)
	}
	return grantFromPB(resp.Grant)
}

func (s *GRPCClient) UploadResource(ctx context.Context, fileName, contentType string, data []byte) (*models.UploadReceipt, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UploadResource(ctx, &pb.UploadResourceRequest{FileName: fileName, ContentType: contentType, Data: data})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.UploadReceipt{StorageKey: resp.StorageKey, ContentType: resp.ContentType, Size: resp.Size}, nil
}

func (s *GRPCClient) IssueDownloadGrant(ctx context.Context, resourceID string) (*models.Grant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.IssueDownloadGrant(ctx, &pb.IssueDownloadGrantRequest{ResourceId: resourceID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return grantFromPB(resp.Grant)
}

func (s *GRPCClient) CreateResource(ctx context.Context, title, storageKey string) (*models.Resource, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreateResource(ctx, &pb.CreateResourceRequest{Title: title, StorageKey: storageKey})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Resource == nil {
		return nil, errEmptyResponse
	}
	return resourceFromPB(resp.Resource), nil
}

func (s *GRPCClient) ListResources(ctx context.Context) ([]*models.Resource, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListResources(ctx, &pb.ListResourcesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]*models.Resource, 0, len(resp.Resources))
	for _, r := range resp.Resources {
		if r != nil {
			out = append(out, resourceFromPB(r))
		}
	}
	return out, nil
}

var errEmptyResponse = &ServerError{Code: codes.Internal, Message: "empty response"}

// mapError turns a gRPC failure into a package error. Anything that is not
// a gRPC status, such as a local deadline, counts as unreachable.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}

	st, ok := status.FromError(err)
	if !ok {
		return ErrUnavailable
	}

	se := &ServerError{Code: st.Code(), Message: st.Message()}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		se.Err = ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		se.Err = ErrUnavailable
	case codes.NotFound:
		se.Err = ErrNotFound
	case codes.InvalidArgument:
		se.Err = ErrInvalidInput
	}
	return se
}

func principalFromPB(p *pb.Principal) models.Principal {
	if p == nil {
		return models.Principal{}
	}
	return models.Principal{
		SubjectID:   p.SubjectId,
		DisplayName: p.DisplayName,
		Handle:      p.Handle,
		Role:        common.Role(p.Role),
		Active:      p.Active,
	}
}

func grantFromPB(g *pb.TransferGrant) (*models.Grant, error) {
	if g == nil || g.Url == "" {
		return nil, errEmptyResponse
	}
	return &models.Grant{
		URL:                g.Url,
		Method:             g.Method,
		SignedHeaders:      g.SignedHeaders,
		StorageKey:         g.StorageKey,
		Operation:          g.Operation,
		ContentType:        g.ContentType,
		ContentDisposition: g.ContentDisposition,
		FileName:           g.FileName,
		IssuedAt:           asTime(g.IssuedAt),
		ExpiresAt:          asTime(g.ExpiresAt),
	}, nil
}

func resourceFromPB(r *pb.Resource) *models.Resource {
	return &models.Resource{
		ID:         r.Id,
		Title:      r.Title,
		StorageKey: r.StorageKey,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  asTime(r.CreatedAt),
	}
}

func asTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}
