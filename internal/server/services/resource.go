package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/auth"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/dmitrijs2005/aura/internal/server/repositories/repomanager"
)

// ResourceKeyPrefix is the namespace the transfer broker writes uploads to.
const ResourceKeyPrefix = "resources/"

// ResourceService manages the resource catalogue.
type ResourceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewResourceService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *ResourceService {
	return &ResourceService{db: db, repomanager: m, logger: l.With("module", "resource_service")}
}

// Create records a resource. storageKey may be empty (no file yet) or must
// be a single segment under resources/. Admin only.
func (s *ResourceService) Create(ctx context.Context, p models.Principal, title, storageKey string) (*models.Resource, error) {
	if err := auth.RequireRole(p, common.RoleAdmin); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorInvalidInput)
	}
	if storageKey != "" && !validStorageKey(storageKey) {
		return nil, fmt.Errorf("%w: storage key must live under %s", common.ErrorInvalidInput, ResourceKeyPrefix)
	}

	res, err := s.repomanager.Resources(s.db).Create(ctx, &models.Resource{
		Title:      title,
		StorageKey: storageKey,
		CreatedBy:  p.SubjectID,
	})
	if err != nil {
		s.logger.Error(ctx, "resource create failed", "error", err)
		return nil, common.ClassifyCollaboratorError(err)
	}

	s.logger.Info(ctx, "resource created", "id", res.ID, "subject", p.SubjectID)
	return res, nil
}

// List returns every resource, newest first. Any authenticated role.
func (s *ResourceService) List(ctx context.Context, p models.Principal) ([]*models.Resource, error) {
	if !p.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", common.ErrorUnauthorized)
	}

	items, err := s.repomanager.Resources(s.db).List(ctx)
	if err != nil {
		return nil, common.ClassifyCollaboratorError(err)
	}
	return items, nil
}

func validStorageKey(key string) bool {
	name, ok := strings.CutPrefix(key, ResourceKeyPrefix)
	if !ok || name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
