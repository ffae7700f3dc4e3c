package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/aura/internal/client/client"
	"github.com/dmitrijs2005/aura/internal/client/config"
	"github.com/dmitrijs2005/aura/internal/client/credentials"
	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/client/services"
	"github.com/dmitrijs2005/aura/internal/client/session"
	"github.com/dmitrijs2005/aura/internal/logging"
)

// SessionManager is the part of session.Manager the commands use.
type SessionManager interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, handle string, secret []byte) error
	Logout(ctx context.Context)
	RefreshPrincipal(ctx context.Context) error
	Snapshot() session.Session
}

// Transfers is the part of services.TransferService the commands use.
type Transfers interface {
	Upload(ctx context.Context, path string, o services.UploadOptions) (*services.UploadResult, error)
	Download(ctx context.Context, resourceID, out string) (string, int64, error)
	List(ctx context.Context) ([]*models.Resource, error)
	Create(ctx context.Context, title, storageKey string) (*models.Resource, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	session   SessionManager
	transfers Transfers
	pinger    Pinger
	reader    *bufio.Reader
	closers   []io.Closer
}

// NewApp opens the local database, dials the server and restores the
// persisted session.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, c.LogLevel).With("module", "cli")

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewAuraClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating client: %w", err)
	}

	m := session.NewManager(api, credentials.NewStore(db), logger)
	api.SetTokenSource(m.Token)

	app := &App{
		config:    c,
		logger:    logger,
		session:   m,
		transfers: services.NewTransferService(api, &http.Client{Timeout: c.TransferTimeout}, logger),
		pinger:    api,
		reader:    bufio.NewReader(os.Stdin),
		closers:   []io.Closer{api, db},
	}

	if err := m.Initialize(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("error restoring session: %w", err)
	}

	return app, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// requireSession fails fast when nobody is signed in, so commands that need
// a token never reach the network without one.
func (a *App) requireSession() (session.Session, error) {
	s := a.session.Snapshot()
	if !s.Authenticated {
		return s, fmt.Errorf("%w: run 'aura login' first", session.ErrNotSignedIn)
	}
	return s, nil
}

// checkRevoked drops the local session when the server rejects the token
// mid-command.
func (a *App) checkRevoked(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		a.logger.Warn(ctx, "token rejected, signing out", "error", err)
		a.session.Logout(ctx)
		return fmt.Errorf("%w: sign in again", session.ErrSessionRevoked)
	}
	return err
}
