package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/models"
)

// IdentityVerifier resolves a bearer token to the principal it belongs to.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (models.Principal, error)
}

// UserLookup is the slice of the users repository the verifier needs.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// PrincipalCache memoises principals by subject. Get returns (nil, nil) on a miss.
type PrincipalCache interface {
	Get(ctx context.Context, subject string) (*models.Principal, error)
	Set(ctx context.Context, p models.Principal) error
	Delete(ctx context.Context, subject string) error
}

// JWTVerifier checks the token signature and expiry, then loads the
// principal from the cache or, on a miss, from the users repository.
type JWTVerifier struct {
	secret []byte
	users  UserLookup
	cache  PrincipalCache
	logger logging.Logger
}

// NewJWTVerifier builds a verifier. cache may be nil.
func NewJWTVerifier(secret []byte, users UserLookup, cache PrincipalCache, l logging.Logger) *JWTVerifier {
	return &JWTVerifier{secret: secret, users: users, cache: cache, logger: l.With("module", "jwt_verifier")}
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (models.Principal, error) {
	claims, err := ParseToken(token, v.secret)
	if err != nil {
		return models.Principal{}, err
	}

	if v.cache != nil {
		p, err := v.cache.Get(ctx, claims.Subject)
		if err != nil {
			v.logger.Warn(ctx, "principal cache read failed", "error", err)
		} else if p != nil {
			if !p.Active {
				return models.Principal{}, fmt.Errorf("%w: inactive user", common.ErrInvalidToken)
			}
			return *p, nil
		}
	}

	user, err := v.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Principal{}, fmt.Errorf("%w: unknown subject", common.ErrInvalidToken)
		}
		return models.Principal{}, common.ClassifyCollaboratorError(err)
	}

	p := user.Principal()

	if v.cache != nil {
		if err := v.cache.Set(ctx, p); err != nil {
			v.logger.Warn(ctx, "principal cache write failed", "error", err)
		}
	}

	if !p.Active {
		return models.Principal{}, fmt.Errorf("%w: inactive user", common.ErrInvalidToken)
	}
	if !p.Role.Valid() {
		return models.Principal{}, fmt.Errorf("%w: unknown role", common.ErrInvalidToken)
	}

	return p, nil
}
