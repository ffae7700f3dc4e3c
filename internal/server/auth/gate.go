package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/models"
)

// Gate authenticates inbound requests. Every failure comes back as
// common.ErrorUnauthorized; when a collaborator failed, Outage recovers
// that cause.
type Gate struct {
	verifier IdentityVerifier
	logger   logging.Logger
}

func NewGate(v IdentityVerifier, l logging.Logger) *Gate {
	return &Gate{verifier: v, logger: l.With("module", "access_gate")}
}

// Authenticate resolves the raw Authorization value to a principal.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (models.Principal, error) {
	token, err := BearerToken(authorization)
	if err != nil {
		return models.Principal{}, err
	}

	p, err := g.verifier.Verify(ctx, token)
	if err != nil {
		if Outage(err) != nil {
			g.logger.Warn(ctx, "identity verification failed", "error", err)
		}
		return models.Principal{}, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	return p, nil
}

// Outage returns common.ErrorUnreachable or common.ErrorInternal when err
// was caused by a failing collaborator rather than by the token, and nil
// otherwise. Transports use it to report an outage instead of a rejection.
func Outage(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnreachable):
		return common.ErrorUnreachable
	case errors.Is(err, common.ErrorInternal):
		return common.ErrorInternal
	}
	return nil
}

// RequireRole rejects p unless it carries role.
func RequireRole(p models.Principal, role common.Role) error {
	if p.Role != role {
		return fmt.Errorf("%w: %s role required", common.ErrorUnauthorized, role)
	}
	return nil
}

type ctxKey struct{}

// WithPrincipal stores p on ctx for downstream handlers.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(models.Principal)
	return p, ok
}
