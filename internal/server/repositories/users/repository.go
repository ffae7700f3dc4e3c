// Package users persists accounts. Lookups by id back the access gate,
// lookups by handle back the login exchange.
package users

import (
	"context"

	"github.com/dmitrijs2005/aura/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
