// Package resources persists the resource catalogue.
package resources

import (
	"context"

	"github.com/dmitrijs2005/aura/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Resource) (*models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	List(ctx context.Context) ([]*models.Resource, error)
}
