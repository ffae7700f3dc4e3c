package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/aura/internal/dbx"
	"github.com/dmitrijs2005/aura/internal/server/repositories/resources"
	"github.com/dmitrijs2005/aura/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Resources(db dbx.DBTX) resources.Repository
}
