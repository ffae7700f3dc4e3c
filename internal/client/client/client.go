package client

import (
	"context"

	"github.com/dmitrijs2005/aura/internal/client/models"
)

// LoginResult is what a successful authentication exchange returns.
type LoginResult struct {
	Token     string
	Principal models.Principal
}

// Client is the CLI's view of the aura server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, handle string, secret []byte) (*LoginResult, error)
	CurrentUser(ctx context.Context) (models.Principal, error)
	IssueUploadGrant(ctx context.Context, fileName, contentType string) (*models.Grant, error)
	UploadResource(ctx context.Context, fileName, contentType string, data []byte) (*models.UploadReceipt, error)
	IssueDownloadGrant(ctx context.Context, resourceID string) (*models.Grant, error)
	CreateResource(ctx context.Context, title, storageKey string) (*models.Resource, error)
	ListResources(ctx context.Context) ([]*models.Resource, error)
}
