// Package services contains server-side business logic. This file implements
// UserService: the login exchange, current-principal lookup and the
// bootstrap admin account.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/auth"
	"github.com/dmitrijs2005/aura/internal/server/config"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/dmitrijs2005/aura/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

var bcryptCost = bcrypt.DefaultCost

// dummyHash is compared against when the handle is unknown so that both
// paths spend the same time in bcrypt.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("aura-dummy-password"), bcrypt.DefaultCost)

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	Token     string
	Principal models.Principal
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	cache                       auth.PrincipalCache
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	logger                      logging.Logger
}

// NewUserService constructs a UserService. cache may be nil.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cache auth.PrincipalCache, cfg *config.Config, l logging.Logger) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		cache:                       cache,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		logger:                      l.With("module", "user_service"),
	}
}

// Login checks handle/secret and mints an access token. Unknown handles,
// wrong secrets and disabled accounts all yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, handle string, secret []byte) (*LoginResult, error) {
	if handle == "" || len(secret) == 0 {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, secret)
			return nil, fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ClassifyCollaboratorError(err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, secret); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: account is disabled", common.ErrorUnauthorized)
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	p := user.Principal()
	s.remember(ctx, p)

	s.logger.Info(ctx, "user logged in", "subject", user.ID)
	return &LoginResult{Token: token, Principal: p}, nil
}

// CurrentPrincipal reads the canonical user record, bypassing the cache,
// and refreshes the cache with it.
func (s *UserService) CurrentPrincipal(ctx context.Context, subject string) (models.Principal, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// a deleted account must not keep authenticating from the cache
			s.forget(ctx, subject)
			return models.Principal{}, fmt.Errorf("%w: unknown subject", common.ErrorUnauthorized)
		}
		return models.Principal{}, common.ClassifyCollaboratorError(err)
	}

	p := user.Principal()
	s.remember(ctx, p)

	if !p.Active {
		return models.Principal{}, fmt.Errorf("%w: account is disabled", common.ErrorUnauthorized)
	}
	return p, nil
}

// EnsureAdmin creates an admin account for handle unless one exists. Empty
// handle or password is a no-op.
func (s *UserService) EnsureAdmin(ctx context.Context, handle, password string) error {
	if handle == "" || password == "" {
		return nil
	}

	repo := s.repomanager.Users(s.db)
	_, err := repo.GetByHandle(ctx, handle)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u, err := repo.Create(ctx, &models.User{
		Handle:       handle,
		DisplayName:  handle,
		PasswordHash: hash,
		Role:         common.RoleAdmin,
		Active:       true,
	})
	if err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}

	s.logger.Info(ctx, "bootstrap admin created", "subject", u.ID, "handle", handle)
	return nil
}

func (s *UserService) remember(ctx context.Context, p models.Principal) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.logger.Warn(ctx, "principal cache write failed", "error", err)
	}
}

func (s *UserService) forget(ctx context.Context, subject string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, subject); err != nil {
		s.logger.Warn(ctx, "principal cache delete failed", "subject", subject, "error", err)
	}
}
