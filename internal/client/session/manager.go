// Package session owns the CLI's signed-in state. A Manager restores it
// from the credential store at startup, keeps it consistent with the server
// and persists every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/aura/internal/client/client"
	"github.com/dmitrijs2005/aura/internal/client/credentials"
	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Session is a snapshot of the signed-in state. Token, Principal and
// Authenticated are always set or cleared together.
type Session struct {
	Token         string
	Principal     models.Principal
	Authenticated bool
	Hydrated      bool
}

// Authenticator is the part of the server API the manager talks to.
// CurrentUser must send the manager's current token.
type Authenticator interface {
	Login(ctx context.Context, handle string, secret []byte) (*client.LoginResult, error)
	CurrentUser(ctx context.Context) (models.Principal, error)
}

type Store interface {
	Save(ctx context.Context, token string, p models.Principal) error
	Load(ctx context.Context) (*credentials.Credentials, error)
	Clear(ctx context.Context) error
}

type Manager struct {
	api    Authenticator
	store  Store
	logger logging.Logger

	// ops serializes Login, Logout, RefreshPrincipal and the bootstrap.
	ops sync.Mutex

	mu      sync.RWMutex
	session Session

	init     singleflight.Group
	hydrated atomic.Bool
}

func NewManager(api Authenticator, store Store, l logging.Logger) *Manager {
	return &Manager{
		api:    api,
		store:  store,
		logger: l.With("module", "session"),
	}
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Token returns the current bearer token, or "" when signed out. It is
// safe to use as a client.GRPCClient token source.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Token
}

func (m *Manager) replace(s Session) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
}

// Login performs one authentication exchange. On failure the session is
// left exactly as it was.
func (m *Manager) Login(ctx context.Context, handle string, secret []byte) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	res, err := m.api.Login(ctx, handle, secret)
	if err != nil {
		return loginError(err)
	}
	if res.Token == "" || res.Principal.Validate() != nil {
		return &AuthError{Err: ErrInvalidCredentials, Message: "malformed login response"}
	}

	cur := m.Snapshot()
	m.replace(Session{Token: res.Token, Principal: res.Principal, Authenticated: true, Hydrated: cur.Hydrated})

	m.persistLocked(ctx, res.Token, res.Principal)

	m.logger.Info(ctx, "signed in", "subject", res.Principal.SubjectID)
	return nil
}

func loginError(err error) error {
	if errors.Is(err, client.ErrUnavailable) {
		return &AuthError{Err: ErrUnreachable}
	}

	var se *client.ServerError
	if errors.As(err, &se) {
		return &AuthError{Err: ErrInvalidCredentials, Message: se.Message}
	}
	return &AuthError{Err: ErrUnreachable}
}

// Logout forgets the session locally. It never fails and makes no network
// call; a store failure is only logged.
func (m *Manager) Logout(ctx context.Context) {
	m.ops.Lock()
	defer m.ops.Unlock()

	m.logoutLocked(ctx)
}

func (m *Manager) logoutLocked(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn(ctx, "failed to clear stored session", "error", err)
	}
	m.replace(Session{Hydrated: m.Snapshot().Hydrated})
}

// Initialize restores a saved session and confirms it with the server.
// Concurrent calls share one bootstrap; calls after the first completion
// return immediately. Hydrated is set when the bootstrap finishes, whatever
// its outcome. Only a credential store read failure is returned.
func (m *Manager) Initialize(ctx context.Context) error {
	if m.hydrated.Load() {
		return nil
	}

	_, err, _ := m.init.Do("initialize", func() (any, error) {
		if m.hydrated.Load() {
			return nil, nil
		}

		m.ops.Lock()
		defer m.ops.Unlock()

		defer func() {
			s := m.Snapshot()
			s.Hydrated = true
			m.replace(s)
			m.hydrated.Store(true)
		}()

		return nil, m.bootstrapLocked(ctx)
	})
	return err
}

func (m *Manager) bootstrapLocked(ctx context.Context) error {
	creds, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "failed to load stored session", "error", err)
		return err
	}
	if creds == nil {
		return nil
	}

	m.replace(Session{Token: creds.Token, Principal: creds.Principal, Authenticated: true})

	if err := m.refreshLocked(ctx); err != nil {
		m.logger.Info(ctx, "stored session not confirmed", "error", err)
	}
	return nil
}

// RefreshPrincipal asks the server who the current token belongs to. An
// explicit rejection signs the user out and returns ErrSessionRevoked. A
// transport failure leaves the session alone and returns ErrUnreachable.
func (m *Manager) RefreshPrincipal(ctx context.Context) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	return m.refreshLocked(ctx)
}

func (m *Manager) refreshLocked(ctx context.Context) error {
	cur := m.Snapshot()
	if !cur.Authenticated {
		return ErrNotSignedIn
	}

	p, err := m.api.CurrentUser(ctx)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrUnauthorized):
		m.logger.Info(ctx, "session rejected by server, signing out", "subject", cur.Principal.SubjectID)
		m.logoutLocked(ctx)
		return ErrSessionRevoked
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	default:
		return err
	}

	if err := p.Validate(); err != nil {
		return fmt.Errorf("current user: %w", err)
	}

	m.replace(Session{Token: cur.Token, Principal: p, Authenticated: true, Hydrated: cur.Hydrated})

	m.persistLocked(ctx, cur.Token, p)
	return nil
}

// persistLocked saves the session. When the save fails the store is
// cleared instead, so a later start never restores an older identity.
func (m *Manager) persistLocked(ctx context.Context, token string, p models.Principal) {
	err := m.store.Save(ctx, token, p)
	if err == nil {
		return
	}
	m.logger.Warn(ctx, "failed to persist session, clearing stored credentials", "error", err)
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error(ctx, "failed to clear stored credentials", "error", err)
	}
}
