package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/aura/internal/proto"
	"github.com/dmitrijs2005/aura/internal/server/auth"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	res, err := s.users.Login(ctx, req.Handle, req.Secret)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.LoginResponse{Token: res.Token, Principal: principalToPB(res.Principal)}, nil
}

func (s *GRPCServer) CurrentUser(ctx context.Context, _ *pb.CurrentUserRequest) (*pb.CurrentUserResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.users.CurrentPrincipal(ctx, p.SubjectID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.CurrentUserResponse{Principal: principalToPB(current)}, nil
}

func (s *GRPCServer) IssueUploadGrant(ctx context.Context, req *pb.IssueUploadGrantRequest) (*pb.IssueUploadGrantResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	g, err := s.broker.IssueUploadGrant(ctx, p, req.FileName, req.ContentType)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.IssueUploadGrantResponse{Grant: grantToPB(g)}, nil
}

func (s *GRPCServer) UploadResource(ctx context.Context, req *pb.UploadResourceRequest) (*pb.UploadResourceResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.broker.UploadDirect(ctx, p, req.FileName, req.ContentType, req.Data)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.UploadResourceResponse{StorageKey: r.StorageKey, ContentType: r.ContentType, Size: r.Size}, nil
}

func (s *GRPCServer) IssueDownloadGrant(ctx context.Context, req *pb.IssueDownloadGrantRequest) (*pb.IssueDownloadGrantResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	g, err := s.broker.IssueDownloadGrant(ctx, p, req.ResourceId)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.IssueDownloadGrantResponse{Grant: grantToPB(g)}, nil
}

func (s *GRPCServer) CreateResource(ctx context.Context, req *pb.CreateResourceRequest) (*pb.CreateResourceResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.resources.Create(ctx, p, req.Title, req.StorageKey)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.CreateResourceResponse{Resource: resourceToPB(r)}, nil
}

func (s *GRPCServer) ListResources(ctx context.Context, _ *pb.ListResourcesRequest) (*pb.ListResourcesResponse, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.resources.List(ctx, p)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]*pb.Resource, 0, len(items))
	for _, r := range items {
		out = append(out, resourceToPB(r))
	}
	return &pb.ListResourcesResponse{Resources: out}, nil
}

func principal(ctx context.Context) (models.Principal, error) {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return models.Principal{}, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return p, nil
}

func principalToPB(p models.Principal) *pb.Principal {
	return &pb.Principal{
		SubjectId:   p.SubjectID,
		DisplayName: p.DisplayName,
		Handle:      p.Handle,
		Role:        string(p.Role),
		Active:      p.Active,
	}
}

func grantToPB(g *models.TransferGrant) *pb.TransferGrant {
	return &pb.TransferGrant{
		Url:                g.URL,
		Method:             g.Method,
		SignedHeaders:      g.SignedHeaders,
		StorageKey:         g.StorageKey,
		Operation:          string(g.Operation),
		ContentType:        g.ContentType,
		ContentDisposition: g.ContentDisposition,
		FileName:           g.FileName,
		IssuedAt:           timestamppb.New(g.IssuedAt),
		ExpiresAt:          timestamppb.New(g.ExpiresAt),
	}
}

func resourceToPB(r *models.Resource) *pb.Resource {
	return &pb.Resource{
		Id:         r.ID,
		Title:      r.Title,
		StorageKey: r.StorageKey,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  timestamppb.New(r.CreatedAt),
	}
}
