// Package credentials persists the signed-in session (token and principal)
// in the CLI's local database so it survives restarts.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/aura/internal/dbx"
)

const (
	tokenKey     = "session_token"
	principalKey = "session_principal"
)

// Credentials is a saved session.
type Credentials struct {
	Token     string
	Principal models.Principal
}

type Store struct {
	db   *sql.DB
	repo func(dbx.DBTX) metadata.Repository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:   db,
		repo: func(tx dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(tx) },
	}
}

// Save writes the token and principal together; either both are stored or
// neither is.
func (s *Store) Save(ctx context.Context, token string, p models.Principal) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode principal: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, tokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, principalKey, payload)
	})
}

// Load returns the saved session, or nil when nothing usable is stored.
// A missing entry or a principal that does not decode and validate is
// treated as absent. Only storage failures are returned as errors.
func (s *Store) Load(ctx context.Context) (*Credentials, error) {
	entries, err := s.repo(s.db).GetMany(ctx, tokenKey, principalKey)
	if err != nil {
		return nil, err
	}
	token, payload := entries[tokenKey], entries[principalKey]
	if len(token) == 0 || len(payload) == 0 {
		return nil, nil
	}

	var p models.Principal
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, nil
	}
	if p.Validate() != nil {
		return nil, nil
	}

	return &Credentials{Token: string(token), Principal: p}, nil
}

// Clear removes both entries.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, tokenKey, principalKey)
}
