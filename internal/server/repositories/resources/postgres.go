package resources

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/dbx"
	"github.com/dmitrijs2005/aura/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, res *models.Resource) (*models.Resource, error) {
	query :=
		`INSERT INTO resources (title, storage_key, created_by)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	var createdBy any
	if res.CreatedBy != "" {
		createdBy = res.CreatedBy
	}

	err := r.db.QueryRowContext(ctx, query, res.Title, res.StorageKey, createdBy).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return res, nil
}

// GetByID returns common.ErrorNotFound for unknown ids. Callers validate the
// id format beforehand; a malformed uuid reaching PostgreSQL is a db error.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	query :=
		`SELECT id, title, storage_key, created_by, created_at FROM resources
		 WHERE id = $1
		 `

	res := &models.Resource{}
	var createdBy sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&res.ID, &res.Title, &res.StorageKey, &createdBy, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	res.CreatedBy = createdBy.String

	return res, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Resource, error) {
	query :=
		`SELECT id, title, storage_key, created_by, created_at FROM resources
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Resource, 0)
	for rows.Next() {
		res := &models.Resource{}
		var createdBy sql.NullString
		if err := rows.Scan(&res.ID, &res.Title, &res.StorageKey, &createdBy, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		res.CreatedBy = createdBy.String
		result = append(result, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
