package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "aura.service.AuraService"

const (
	AuraService_Ping_FullMethodName               = "/" + ServiceName + "/Ping"
	AuraService_Login_FullMethodName              = "/" + ServiceName + "/Login"
	AuraService_CurrentUser_FullMethodName        = "/" + ServiceName + "/CurrentUser"
	AuraService_IssueUploadGrant_FullMethodName   = "/" + ServiceName + "/IssueUploadGrant"
	AuraService_UploadResource_FullMethodName     = "/" + ServiceName + "/UploadResource"
	AuraService_IssueDownloadGrant_FullMethodName = "/" + ServiceName + "/IssueDownloadGrant"
	AuraService_CreateResource_FullMethodName     = "/" + ServiceName + "/CreateResource"
	AuraService_ListResources_FullMethodName      = "/" + ServiceName + "/ListResources"
)

// AuraServiceClient is the client API for AuraService.
type AuraServiceClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	CurrentUser(ctx context.Context, in *CurrentUserRequest, opts ...grpc.CallOption) (*CurrentUserResponse, error)
	IssueUploadGrant(ctx context.Context, in *IssueUploadGrantRequest, opts ...grpc.CallOption) (*IssueUploadGrantResponse, error)
	UploadResource(ctx context.Context, in *UploadResourceRequest, opts ...grpc.CallOption) (*UploadResourceResponse, error)
	IssueDownloadGrant(ctx context.Context, in *IssueDownloadGrantRequest, opts ...grpc.CallOption) (*IssueDownloadGrantResponse, error)
	CreateResource(ctx context.Context, in *CreateResourceRequest, opts ...grpc.CallOption) (*CreateResourceResponse, error)
	ListResources(ctx context.Context, in *ListResourcesRequest, opts ...grpc.CallOption) (*ListResourcesResponse, error)
}

type auraServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAuraServiceClient binds a client to cc. Every call is sent with the
// json content subtype so the server picks Codec.
func NewAuraServiceClient(cc grpc.ClientConnInterface) AuraServiceClient {
	return &auraServiceClient{cc}
}

func (c *auraServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, AuraService_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auraServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := new(LoginResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, AuraService_Login_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auraServiceClient) CurrentUser(ctx context.Context, in *CurrentUserRequest, opts ...grpc.CallOption) (*CurrentUserResponse, error) {
	out := new(CurrentUserResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, AuraService_CurrentUser_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auraServiceClient) IssueUploadGrant(ctx context.Context, in *IssueUploadGrantRequest, opts ...grpc.CallOption) (*IssueUploadGrantResponse, error) {
	out := new(IssueUploadGrantResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, AuraService_IssueUploadGrant_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auraServiceClient) UploadResource(ctx context.Context, in *UploadResourceRequest, opts ...grpc.CallOption) (*UploadResourceResponse, error) {
	out := new(UploadResourceResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, AuraService_UploadResource_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auraServiceClient) IssueDownloadGrant(ctx context.Context, in *IssueDownloadGrantRequest, opts ...grpc.CallOption) (*IssueDownloadGrantResponse, error) {
	out := new(IssueDownloadGrantResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, AuraService_IssueDownloadGrant_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auraServiceClient) CreateResource(ctx context.Context, in *CreateResourceRequest, opts ...grpc.CallOption) (*CreateResourceResponse, error) {
	out := new(CreateResourceResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, AuraService_CreateResource_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auraServiceClient) ListResources(ctx context.Context, in *ListResourcesRequest, opts ...grpc.CallOption) (*ListResourcesResponse, error) {
	out := new(ListResourcesResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, AuraService_ListResources_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AuraServiceServer is the server API for AuraService. Implementations must
// embed UnimplementedAuraServiceServer for forward compatibility.
type AuraServiceServer interface {
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	CurrentUser(context.Context, *CurrentUserRequest) (*CurrentUserResponse, error)
	IssueUploadGrant(context.Context, *IssueUploadGrantRequest) (*IssueUploadGrantResponse, error)
	UploadResource(context.Context, *UploadResourceRequest) (*UploadResourceResponse, error)
	IssueDownloadGrant(context.Context, *IssueDownloadGrantRequest) (*IssueDownloadGrantResponse, error)
	CreateResource(context.Context, *CreateResourceRequest) (*CreateResourceResponse, error)
	ListResources(context.Context, *ListResourcesRequest) (*ListResourcesResponse, error)
	mustEmbedUnimplementedAuraServiceServer()
}

// UnimplementedAuraServiceServer answers every method with codes.Unimplemented.
type UnimplementedAuraServiceServer struct{}

func (UnimplementedAuraServiceServer) Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedAuraServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAuraServiceServer) CurrentUser(context.Context, *CurrentUserRequest) (*CurrentUserResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CurrentUser not implemented")
}

func (UnimplementedAuraServiceServer) IssueUploadGrant(context.Context, *IssueUploadGrantRequest) (*IssueUploadGrantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method IssueUploadGrant not implemented")
}

func (UnimplementedAuraServiceServer) UploadResource(context.Context, *UploadResourceRequest) (*UploadResourceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UploadResource not implemented")
}

func (UnimplementedAuraServiceServer) IssueDownloadGrant(context.Context, *IssueDownloadGrantRequest) (*IssueDownloadGrantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method IssueDownloadGrant not implemented")
}

func (UnimplementedAuraServiceServer) CreateResource(context.Context, *CreateResourceRequest) (*CreateResourceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateResource not implemented")
}

func (UnimplementedAuraServiceServer) ListResources(context.Context, *ListResourcesRequest) (*ListResourcesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListResources not implemented")
}

func (UnimplementedAuraServiceServer) mustEmbedUnimplementedAuraServiceServer() {}

// RegisterAuraServiceServer attaches srv to s.
func RegisterAuraServiceServer(s grpc.ServiceRegistrar, srv AuraServiceServer) {
	s.RegisterService(&AuraService_ServiceDesc, srv)
}

func _AuraService_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuraServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuraService_Ping_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuraServiceServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuraService_Login_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuraServiceServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuraService_Login_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuraServiceServer).Login(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuraService_CurrentUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CurrentUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuraServiceServer).CurrentUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuraService_CurrentUser_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuraServiceServer).CurrentUser(ctx, req.(*CurrentUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuraService_IssueUploadGrant_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(IssueUploadGrantRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuraServiceServer).IssueUploadGrant(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuraService_IssueUploadGrant_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuraServiceServer).IssueUploadGrant(ctx, req.(*IssueUploadGrantRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuraService_UploadResource_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UploadResourceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuraServiceServer).UploadResource(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuraService_UploadResource_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuraServiceServer).UploadResource(ctx, req.(*UploadResourceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuraService_IssueDownloadGrant_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(IssueDownloadGrantRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuraServiceServer).IssueDownloadGrant(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuraService_IssueDownloadGrant_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuraServiceServer).IssueDownloadGrant(ctx, req.(*IssueDownloadGrantRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuraService_CreateResource_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateResourceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuraServiceServer).CreateResource(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuraService_CreateResource_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuraServiceServer).CreateResource(ctx, req.(*CreateResourceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AuraService_ListResources_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListResourcesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuraServiceServer).ListResources(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuraService_ListResources_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuraServiceServer).ListResources(ctx, req.(*ListResourcesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// AuraService_ServiceDesc is the grpc.ServiceDesc for AuraService.
var AuraService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuraServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler:    _AuraService_Ping_Handler,
		},
		{
			MethodName: "Login",
			Handler:    _AuraService_Login_Handler,
		},
		{
			MethodName: "CurrentUser",
			Handler:    _AuraService_CurrentUser_Handler,
		},
		{
			MethodName: "IssueUploadGrant",
			Handler:    _AuraService_IssueUploadGrant_Handler,
		},
		{
			MethodName: "UploadResource",
			Handler:    _AuraService_UploadResource_Handler,
		},
		{
			MethodName: "IssueDownloadGrant",
			Handler:    _AuraService_IssueDownloadGrant_Handler,
		},
		{
			MethodName: "CreateResource",
			Handler:    _AuraService_CreateResource_Handler,
		},
		{
			MethodName: "ListResources",
			Handler:    _AuraService_ListResources_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "aura/service.proto",
}
