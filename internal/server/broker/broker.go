// Package broker issues short-lived, scoped presigned URLs for uploading
// and downloading resources, and accepts small direct uploads. Bytes only
// pass through the server on the direct path.
package broker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/auth"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/dmitrijs2005/aura/internal/server/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ObjectStore is implemented by storage.S3Store.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (*storage.Presigned, error)
	PresignGet(ctx context.Context, key, contentDisposition string, expires time.Duration) (*storage.Presigned, error)
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// ResourceLookup finds resource records by id.
type ResourceLookup interface {
	GetByID(ctx context.Context, id string) (*models.Resource, error)
}

type Broker struct {
	cfg       Config
	store     ObjectStore
	resources ResourceLookup
	logger    logging.Logger
	now       func() time.Time
}

// New builds a Broker. A nil store means object storage is not configured;
// every operation then fails with common.ErrorServiceUnavailable.
func New(cfg Config, store ObjectStore, resources ResourceLookup, l logging.Logger) *Broker {
	return &Broker{
		cfg:       cfg,
		store:     store,
		resources: resources,
		logger:    l.With("module", "transfer_broker"),
		now:       time.Now,
	}
}

// Configured reports whether an object store is attached.
func (b *Broker) Configured() bool {
	return b.store != nil
}

func (b *Broker) checkConfigured() error {
	if b.store == nil {
		return fmt.Errorf("%w: object storage is not configured", common.ErrorServiceUnavailable)
	}
	return nil
}

// CheckUpload runs the upload preconditions that do not depend on the
// payload: storage must be configured and p must be an admin. Transports
// call it before reading a request body.
func (b *Broker) CheckUpload(p models.Principal) error {
	if err := b.checkConfigured(); err != nil {
		return err
	}
	return auth.RequireRole(p, common.RoleAdmin)
}

// IssueUploadGrant returns a presigned PUT for a fresh key derived from
// fileName. Only admins may upload.
func (b *Broker) IssueUploadGrant(ctx context.Context, p models.Principal, fileName, contentType string) (*models.TransferGrant, error) {
	if err := b.CheckUpload(p); err != nil {
		return nil, err
	}
	if fileName == "" || contentType == "" {
		return nil, fmt.Errorf("%w: fileName and contentType are required", common.ErrorInvalidInput)
	}
	if !b.cfg.allowed(contentType) {
		return nil, fmt.Errorf("%w: content type %q is not allowed", common.ErrorInvalidInput, contentType)
	}

	issuedAt := b.now()
	sanitized := sanitizeFileName(fileName, b.cfg.MaxFileNameLength)
	key := uploadKey(issuedAt, sanitized)

	req, err := b.store.PresignPut(ctx, key, contentType, b.cfg.UploadWindow)
	if err != nil {
		b.logger.Error(ctx, "presign put failed", "key", key, "error", err)
		return nil, common.ClassifyCollaboratorError(err)
	}

	b.logger.Info(ctx, "upload grant issued", "key", key, "subject", p.SubjectID)

	return &models.TransferGrant{
		URL:           req.URL,
		Method:        methodOr(req.Method, http.MethodPut),
		SignedHeaders: req.SignedHeaders,
		StorageKey:    key,
		Operation:     models.OperationPut,
		ContentType:   contentType,
		FileName:      sanitized,
		IssuedAt:      issuedAt,
		ExpiresAt:     issuedAt.Add(b.cfg.UploadWindow),
	}, nil
}

// UploadDirect writes data to the object store in one request after
// validating size and sniffing the content against the declared type.
func (b *Broker) UploadDirect(ctx context.Context, p models.Principal, fileName, contentType string, data []byte) (*models.UploadReceipt, error) {
	if err := b.CheckUpload(p); err != nil {
		return nil, err
	}
	if fileName == "" || contentType == "" {
		return nil, fmt.Errorf("%w: file name and content type are required", common.ErrorInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", common.ErrorInvalidInput)
	}
	if int64(len(data)) > b.cfg.MaxUploadSize {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", common.ErrorInvalidInput, b.cfg.MaxUploadSize)
	}
	if !b.cfg.allowed(contentType) {
		return nil, fmt.Errorf("%w: content type %q is not allowed", common.ErrorInvalidInput, contentType)
	}
	if detected := mimetype.Detect(data); !sniffMatches(detected, contentType) {
		return nil, fmt.Errorf("%w: content looks like %s, not %s", common.ErrorInvalidInput, detected.String(), contentType)
	}

	key := uploadKey(b.now(), sanitizeFileName(fileName, b.cfg.MaxFileNameLength))

	if err := b.store.Put(ctx, key, contentType, data); err != nil {
		b.logger.Error(ctx, "direct upload failed", "key", key, "error", err)
		return nil, common.ClassifyCollaboratorError(err)
	}

	b.logger.Info(ctx, "direct upload stored", "key", key, "size", len(data), "subject", p.SubjectID)

	return &models.UploadReceipt{StorageKey: key, ContentType: contentType, Size: int64(len(data))}, nil
}

// IssueDownloadGrant returns a presigned GET for the file attached to the
// resource. Any authenticated role may download.
func (b *Broker) IssueDownloadGrant(ctx context.Context, p models.Principal, resourceID string) (*models.TransferGrant, error) {
	if err := b.checkConfigured(); err != nil {
		return nil, err
	}
	if !p.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", common.ErrorUnauthorized)
	}
	if _, err := uuid.Parse(resourceID); err != nil {
		return nil, fmt.Errorf("%w: resource %q", common.ErrorNotFound, resourceID)
	}

	res, err := b.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: resource %s", common.ErrorNotFound, resourceID)
		}
		b.logger.Error(ctx, "resource lookup failed", "id", resourceID, "error", err)
		return nil, common.ClassifyCollaboratorError(err)
	}
	if res.StorageKey == "" {
		return nil, fmt.Errorf("%w: resource %s has no file", common.ErrorNotFound, resourceID)
	}

	name := displayName(res.StorageKey)
	disposition := contentDisposition(name)
	issuedAt := b.now()

	req, err := b.store.PresignGet(ctx, res.StorageKey, disposition, b.cfg.DownloadWindow)
	if err != nil {
		b.logger.Error(ctx, "presign get failed", "key", res.StorageKey, "error", err)
		return nil, common.ClassifyCollaboratorError(err)
	}

	b.logger.Info(ctx, "download grant issued", "resource", resourceID, "subject", p.SubjectID)

	return &models.TransferGrant{
		URL:                req.URL,
		Method:             methodOr(req.Method, http.MethodGet),
		SignedHeaders:      req.SignedHeaders,
		StorageKey:         res.StorageKey,
		Operation:          models.OperationGet,
		ContentDisposition: disposition,
		FileName:           name,
		IssuedAt:           issuedAt,
		ExpiresAt:          issuedAt.Add(b.cfg.DownloadWindow),
	}, nil
}

func methodOr(m, fallback string) string {
	if m == "" {
		return fallback
	}
	return m
}

// sniffMatches accepts the detected type or any of its ancestors.
func sniffMatches(detected *mimetype.MIME, contentType string) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(contentType) {
			return true
		}
	}
	return false
}
