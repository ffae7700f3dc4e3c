package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/aura/internal/common"
	pb "github.com/dmitrijs2005/aura/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var issuedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

/*************
 * Fake server
 *************/

type fakeServer struct {
	pb.UnimplementedAuraServiceServer

	mu      sync.Mutex
	authz   []string
	err     error
	upload  *pb.UploadResourceRequest
	created *pb.CreateResourceRequest
}

func (f *fakeServer) record(ctx context.Context) {
	md, _ := metadata.FromIncomingContext(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authz = append(f.authz, md.Get(common.AuthorizationHeaderName)...)
}

func (f *fakeServer) lastAuthz() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.authz...)
}

func (f *fakeServer) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	f.record(ctx)
	return &emptypb.Empty{}, f.err
}

func (f *fakeServer) Login(ctx context.Context, in *pb.LoginRequest) (*pb.LoginResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	if string(in.Secret) != "pw" {
		return nil, status.Error(codes.Unauthenticated, "Invalid credentials")
	}
	return &pb.LoginResponse{Token: "a.b.c", Principal: &pb.Principal{SubjectId: "u1", DisplayName: "Ann", Handle: in.Handle, Role: "admin", Active: true}}, nil
}

func (f *fakeServer) CurrentUser(ctx context.Context, _ *pb.CurrentUserRequest) (*pb.CurrentUserResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &pb.CurrentUserResponse{Principal: &pb.Principal{SubjectId: "u1", Handle: "ann", Role: "user", Active: true}}, nil
}

func (f *fakeServer) IssueUploadGrant(ctx context.Context, in *pb.IssueUploadGrantRequest) (*pb.IssueUploadGrantResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &pb.IssueUploadGrantResponse{Grant: &pb.TransferGrant{
		Url: "https://s3/put", Method: "PUT", StorageKey: "resources/1_" + in.FileName, Operation: "put",
		ContentType: in.ContentType, SignedHeaders: map[string]string{"Content-Type": in.ContentType},
		IssuedAt: timestamppb.New(issuedAt), ExpiresAt: timestamppb.New(issuedAt.Add(900 * time.Second)),
	}}, nil
}

func (f *fakeServer) UploadResource(ctx context.Context, in *pb.UploadResourceRequest) (*pb.UploadResourceResponse, error) {
	f.record(ctx)
	f.mu.Lock()
	f.upload = in
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &pb.UploadResourceResponse{StorageKey: "resources/1_" + in.FileName, ContentType: in.ContentType, Size: int64(len(in.Data))}, nil
}

func (f *fakeServer) IssueDownloadGrant(ctx context.Context, in *pb.IssueDownloadGrantRequest) (*pb.IssueDownloadGrantResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &pb.IssueDownloadGrantResponse{Grant: &pb.TransferGrant{
		Url: "https://s3/get/" + in.ResourceId, Method: "GET", StorageKey: "resources/123_report.pdf", Operation: "get",
		ContentDisposition: `attachment; filename="report.pdf"`, FileName: "report.pdf",
		IssuedAt: timestamppb.New(issuedAt), ExpiresAt: timestamppb.New(issuedAt.Add(time.Hour)),
	}}, nil
}

func (f *fakeServer) CreateResource(ctx context.Context, in *pb.CreateResourceRequest) (*pb.CreateResourceResponse, error) {
	f.record(ctx)
	f.mu.Lock()
	f.created = in
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &pb.CreateResourceResponse{Resource: &pb.Resource{Id: "r-1", Title: in.Title, StorageKey: in.StorageKey, CreatedAt: timestamppb.New(issuedAt)}}, nil
}

func (f *fakeServer) ListResources(ctx context.Context, _ *pb.ListResourcesRequest) (*pb.ListResourcesResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &pb.ListResourcesResponse{Resources: []*pb.Resource{
		{Id: "r-1", Title: "A", CreatedAt: timestamppb.New(issuedAt)},
		nil,
		{Id: "r-2", Title: "B", StorageKey: "resources/1_b.pdf"},
	}}, nil
}

func startClient(t *testing.T, f *fakeServer) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterAuraServiceServer(srv, f)
	go func() { _ = srv.Serve(lis) }()

	c, err := NewAuraClient("passthrough:///bufnet", 5*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		srv.Stop()
	})
	return c
}

/*************
 * Round trips
 *************/

func TestLogin_Success(t *testing.T) {
	f := &fakeServer{}
	c := startClient(t, f)

	res, err := c.Login(context.Background(), "ann", []byte("pw"))

	require.NoError(t, err)
	assert.Equal(t, "a.b.c", res.Token)
	assert.Equal(t, "u1", res.Principal.SubjectID)
	assert.Equal(t, common.RoleAdmin, res.Principal.Role)
	assert.Equal(t, "ann", res.Principal.Handle)
	assert.Empty(t, f.lastAuthz(), "no token source, no authorization header")
}

func TestLogin_RejectedCarriesServerMessage(t *testing.T) {
	c := startClient(t, &fakeServer{})

	_, err := c.Login(context.Background(), "ann", []byte("wrong"))

	require.ErrorIs(t, err, ErrUnauthorized)
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codes.Unauthenticated, se.Code)
	assert.Equal(t, "Invalid credentials", se.Message)
}

func TestTokenSource_AttachesBearer(t *testing.T) {
	f := &fakeServer{}
	c := startClient(t, f)
	token := "t1"
	c.SetTokenSource(func() string { return token })

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)

	token = ""
	require.NoError(t, c.Ping(context.Background()))

	assert.Equal(t, []string{"Bearer t1"}, f.lastAuthz())
}

func TestCurrentUser(t *testing.T) {
	c := startClient(t, &fakeServer{})

	p, err := c.CurrentUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, common.RoleUser, p.Role)
	assert.True(t, p.Active)
}

func TestGrants(t *testing.T) {
	c := startClient(t, &fakeServer{})
	ctx := context.Background()

	up, err := c.IssueUploadGrant(ctx, "a.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://s3/put", up.URL)
	assert.Equal(t, "resources/1_a.pdf", up.StorageKey)
	assert.Equal(t, map[string]string{"Content-Type": "application/pdf"}, up.SignedHeaders)
	assert.Equal(t, 900*time.Second, up.ExpiresAt.Sub(up.IssuedAt))

	down, err := c.IssueDownloadGrant(ctx, "r-9")
	require.NoError(t, err)
	assert.Equal(t, "https://s3/get/r-9", down.URL)
	assert.Equal(t, "report.pdf", down.FileName)
	assert.Equal(t, time.Hour, down.ExpiresAt.Sub(down.IssuedAt))
}

func TestUploadResource(t *testing.T) {
	f := &fakeServer{}
	c := startClient(t, f)

	r, err := c.UploadResource(context.Background(), "a.pdf", "application/pdf", []byte("%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, int64(8), r.Size)
	assert.Equal(t, []byte("%PDF-1.4"), f.upload.Data)
}

func TestResources(t *testing.T) {
	f := &fakeServer{}
	c := startClient(t, f)
	ctx := context.Background()

	created, err := c.CreateResource(ctx, "Doc", "resources/1_a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "r-1", created.ID)
	assert.Equal(t, issuedAt, created.CreatedAt)
	assert.Equal(t, "Doc", f.created.Title)

	list, err := c.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r-2", list[1].ID)
	assert.True(t, list[0].CreatedAt.Equal(issuedAt))
	assert.True(t, list[1].CreatedAt.IsZero())
}

func TestErrorsMapped(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "Unauthorized"), ErrUnauthorized},
		{"permission denied", status.Error(codes.PermissionDenied, "no"), ErrUnauthorized},
		{"unavailable", status.Error(codes.Unavailable, "object storage is not configured"), ErrUnavailable},
		{"not found", status.Error(codes.NotFound, "Resource or file not found"), ErrNotFound},
		{"invalid", status.Error(codes.InvalidArgument, "bad type"), ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := startClient(t, &fakeServer{err: tt.err})

			_, err := c.IssueUploadGrant(context.Background(), "a.pdf", "application/pdf")

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestErrorsMapped_Internal(t *testing.T) {
	c := startClient(t, &fakeServer{err: status.Error(codes.Internal, "internal error")})

	_, err := c.ListResources(context.Background())

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codes.Internal, se.Code)
	assert.Nil(t, errors.Unwrap(err))
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestUnreachableServer(t *testing.T) {
	lis := bufconn.Listen(1 << 10)
	require.NoError(t, lis.Close())

	c, err := NewAuraClient("passthrough:///bufnet", 200*time.Millisecond,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
	)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Login(context.Background(), "ann", []byte("pw"))

	assert.ErrorIs(t, err, ErrUnavailable)
}

/*************
 * Interceptor and mapError units
 *************/

func TestInterceptor_ReplacesExistingAuthorization(t *testing.T) {
	c := &GRPCClient{}
	c.SetTokenSource(func() string { return "A2" })

	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AuthorizationHeaderName, "Bearer A1")
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		assert.Equal(t, []string{"Bearer A2"}, md.Get(common.AuthorizationHeaderName))
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(ctx, "/svc/Method", nil, nil, nil, invoker))
}

func TestMapError_NonStatus(t *testing.T) {
	c := &GRPCClient{}

	assert.Nil(t, c.mapError(nil))
	assert.ErrorIs(t, c.mapError(context.DeadlineExceeded), ErrUnavailable)
	assert.ErrorIs(t, c.mapError(errors.New("dial tcp: refused")), ErrUnavailable)
}
