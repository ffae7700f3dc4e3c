package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/dmitrijs2005/aura/internal/server/services"
)

const goodToken = "Bearer aaa.bbb.ccc"

var (
	testAdmin = models.Principal{SubjectID: "u-admin", DisplayName: "Admin", Handle: "admin", Role: common.RoleAdmin, Active: true}
	issuedAt  = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fakeGate struct {
	principal models.Principal
	err       error
	seen      string
}

func (g *fakeGate) Authenticate(ctx context.Context, authorization string) (models.Principal, error) {
	g.seen = authorization
	if g.err != nil {
		return models.Principal{}, g.err
	}
	if authorization != goodToken {
		return models.Principal{}, common.ErrorUnauthorized
	}
	return g.principal, nil
}

type fakeUsers struct {
	loginErr   error
	currentErr error
}

func (f *fakeUsers) Login(ctx context.Context, handle string, secret []byte) (*services.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.LoginResult{Token: "a.b.c", Principal: testAdmin}, nil
}

func (f *fakeUsers) CurrentPrincipal(ctx context.Context, subject string) (models.Principal, error) {
	if f.currentErr != nil {
		return models.Principal{}, f.currentErr
	}
	p := testAdmin
	p.SubjectID = subject
	return p, nil
}

type fakeResources struct {
	err error
}

func (f *fakeResources) Create(ctx context.Context, p models.Principal, title, storageKey string) (*models.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Resource{ID: "r-1", Title: title, StorageKey: storageKey, CreatedBy: p.SubjectID, CreatedAt: issuedAt}, nil
}

func (f *fakeResources) List(ctx context.Context, p models.Principal) ([]*models.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Resource{{ID: "r-1", Title: "A", CreatedAt: issuedAt}, {ID: "r-2", Title: "B", CreatedAt: issuedAt}}, nil
}

type fakeBroker struct {
	err      error
	uploaded []byte
}

func (f *fakeBroker) IssueUploadGrant(ctx context.Context, p models.Principal, fileName, contentType string) (*models.TransferGrant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TransferGrant{
		URL: "https://s3/put", Method: "PUT", StorageKey: "resources/1_" + fileName, Operation: models.OperationPut,
		ContentType: contentType, SignedHeaders: map[string]string{"Content-Type": contentType},
		IssuedAt: issuedAt, ExpiresAt: issuedAt.Add(900 * time.Second),
	}, nil
}

func (f *fakeBroker) UploadDirect(ctx context.Context, p models.Principal, fileName, contentType string, data []byte) (*models.UploadReceipt, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploaded = data
	return &models.UploadReceipt{StorageKey: "resources/1_" + fileName, ContentType: contentType, Size: int64(len(data))}, nil
}

func (f *fakeBroker) IssueDownloadGrant(ctx context.Context, p models.Principal, resourceID string) (*models.TransferGrant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TransferGrant{
		URL: "https://s3/get", Method: "GET", StorageKey: "resources/123_report.pdf", Operation: models.OperationGet,
		ContentDisposition: `attachment; filename="report.pdf"`, FileName: "report.pdf",
		IssuedAt: issuedAt, ExpiresAt: issuedAt.Add(time.Hour),
	}, nil
}

func newTestServer(users *fakeUsers, res *fakeResources, b *fakeBroker) (*GRPCServer, *fakeGate) {
	gate := &fakeGate{principal: testAdmin}
	return NewGRPCServer("127.0.0.1:0", logging.NewNopLogger(), gate, users, res, b), gate
}
