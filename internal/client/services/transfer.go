// Package services contains application services for the aura CLI. This
// file implements transfers: uploads through a presigned PUT or the direct
// path, downloads through a presigned GET, and the resource catalogue.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/aura/internal/client/client"
	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/filex"
	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/netx"
	"github.com/gabriel-vasile/mimetype"
)

// MaxDirectUpload matches the server's limit for the direct path.
const MaxDirectUpload = 50 << 20

var ErrTooLarge = errors.New("file exceeds the direct upload limit")

type UploadOptions struct {
	// ContentType overrides detection from the file's content.
	ContentType string
	// Direct sends the bytes through the server instead of a presigned URL.
	Direct bool
	// Title, when set, registers a resource pointing at the uploaded file.
	Title string
}

type UploadResult struct {
	StorageKey  string
	ContentType string
	Size        int64
	Resource    *models.Resource
}

type TransferService struct {
	api    client.Client
	http   *http.Client
	logger logging.Logger
}

func NewTransferService(api client.Client, hc *http.Client, l logging.Logger) *TransferService {
	return &TransferService{api: api, http: hc, logger: l.With("module", "transfer")}
}

// DetectContentType sniffs the media type of the file at path, without
// parameters such as charset.
func DetectContentType(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	ct, _, _ := strings.Cut(m.String(), ";")
	return strings.TrimSpace(ct), nil
}

func (s *TransferService) Upload(ctx context.Context, path string, o UploadOptions) (*UploadResult, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	contentType := o.ContentType
	if contentType == "" {
		if contentType, err = DetectContentType(path); err != nil {
			return nil, fmt.Errorf("detect content type: %w", err)
		}
	}
	name := filepath.Base(path)

	var res *UploadResult
	if o.Direct {
		res, err = s.uploadDirect(ctx, path, name, contentType, fi.Size())
	} else {
		res, err = s.uploadPresigned(ctx, path, name, contentType, fi.Size())
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "uploaded", "key", res.StorageKey, "size", res.Size, "direct", o.Direct)

	if o.Title != "" {
		r, err := s.api.CreateResource(ctx, o.Title, res.StorageKey)
		if err != nil {
			return res, fmt.Errorf("file uploaded as %s but the resource was not created: %w", res.StorageKey, err)
		}
		res.Resource = r
	}
	return res, nil
}

func (s *TransferService) uploadPresigned(ctx context.Context, path, name, contentType string, size int64) (*UploadResult, error) {
	g, err := s.api.IssueUploadGrant(ctx, name, contentType)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(g.SignedHeaders)+1)
	for k, v := range g.SignedHeaders {
		headers[k] = v
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = contentType
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := netx.PutPresigned(ctx, s.http, g.URL, headers, f, size); err != nil {
		return nil, err
	}
	return &UploadResult{StorageKey: g.StorageKey, ContentType: contentType, Size: size}, nil
}

func (s *TransferService) uploadDirect(ctx context.Context, path, name, contentType string, size int64) (*UploadResult, error) {
	if size > MaxDirectUpload {
		return nil, ErrTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := s.api.UploadResource(ctx, name, contentType, data)
	if err != nil {
		return nil, err
	}
	return &UploadResult{StorageKey: r.StorageKey, ContentType: r.ContentType, Size: r.Size}, nil
}

// Download fetches the file attached to resourceID into out (see
// filex.ResolveTarget) and returns the written path and size.
func (s *TransferService) Download(ctx context.Context, resourceID, out string) (string, int64, error) {
	g, err := s.api.IssueDownloadGrant(ctx, resourceID)
	if err != nil {
		return "", 0, err
	}

	target, err := filex.ResolveTarget(out, g.FileName)
	if err != nil {
		return "", 0, err
	}

	var n int64
	err = filex.WriteAtomic(target, func(w io.Writer) error {
		var err error
		n, err = netx.GetPresigned(ctx, s.http, g.URL, w)
		return err
	})
	if err != nil {
		return "", 0, err
	}

	s.logger.Info(ctx, "downloaded", "resource", resourceID, "path", target, "size", n)
	return target, n, nil
}

func (s *TransferService) List(ctx context.Context) ([]*models.Resource, error) {
	return s.api.ListResources(ctx)
}

func (s *TransferService) Create(ctx context.Context, title, storageKey string) (*models.Resource, error) {
	return s.api.CreateResource(ctx, title, storageKey)
}
