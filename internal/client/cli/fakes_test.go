package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/aura/internal/client/config"
	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/client/services"
	"github.com/dmitrijs2005/aura/internal/client/session"
	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
)

var alice = models.Principal{
	SubjectID:   "u-1",
	DisplayName: "Alice",
	Handle:      "alice",
	Role:        common.RoleAdmin,
	Active:      true,
}

type fakeSession struct {
	s          session.Session
	loginErr   error
	refreshErr error

	handle     string
	secret     []byte
	secretSeen string
	logouts    int
	refreshes  int
}

func signedIn(p models.Principal) *fakeSession {
	return &fakeSession{s: session.Session{Token: "tok", Principal: p, Authenticated: true, Hydrated: true}}
}

func (f *fakeSession) Initialize(context.Context) error { return nil }

func (f *fakeSession) Login(_ context.Context, handle string, secret []byte) error {
	f.handle, f.secret, f.secretSeen = handle, secret, string(secret)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.s = session.Session{Token: "tok", Principal: alice, Authenticated: true, Hydrated: true}
	return nil
}

func (f *fakeSession) Logout(context.Context) {
	f.logouts++
	f.s = session.Session{Hydrated: true}
}

func (f *fakeSession) RefreshPrincipal(context.Context) error {
	f.refreshes++
	if errors.Is(f.refreshErr, session.ErrSessionRevoked) {
		f.s = session.Session{Hydrated: true}
	}
	return f.refreshErr
}

func (f *fakeSession) Snapshot() session.Session { return f.s }

type fakeTransfers struct {
	items     []*models.Resource
	upload    *services.UploadResult
	err       error
	gotPath   string
	gotOpts   services.UploadOptions
	gotID     string
	gotOut    string
	gotTitle  string
	gotKey    string
	savedPath string
	savedN    int64
}

func (f *fakeTransfers) Upload(_ context.Context, path string, o services.UploadOptions) (*services.UploadResult, error) {
	f.gotPath, f.gotOpts = path, o
	return f.upload, f.err
}

func (f *fakeTransfers) Download(_ context.Context, id, out string) (string, int64, error) {
	f.gotID, f.gotOut = id, out
	if f.err != nil {
		return "", 0, f.err
	}
	return f.savedPath, f.savedN, nil
}

func (f *fakeTransfers) List(context.Context) ([]*models.Resource, error) {
	return f.items, f.err
}

func (f *fakeTransfers) Create(_ context.Context, title, key string) (*models.Resource, error) {
	f.gotTitle, f.gotKey = title, key
	if f.err != nil {
		return nil, f.err
	}
	return &models.Resource{ID: "r-9", Title: title, StorageKey: key, CreatedAt: time.Now()}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type harness struct {
	session   *fakeSession
	transfers *fakeTransfers
	pinger    fakePinger
	stdin     string
	builds    int
	buildErr  error
}

// isolateConfig keeps the default config file lookup away from the real
// home directory.
func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

// run executes the command tree with args and returns stdout, stderr and
// the command error.
func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	isolateConfig(t)

	if h.session == nil {
		h.session = &fakeSession{s: session.Session{Hydrated: true}}
	}
	if h.transfers == nil {
		h.transfers = &fakeTransfers{}
	}

	st := &state{build: func(_ context.Context, c *config.Config) (*App, error) {
		h.builds++
		if h.buildErr != nil {
			return nil, h.buildErr
		}
		return &App{
			config:    c,
			logger:    logging.NewNopLogger(),
			session:   h.session,
			transfers: h.transfers,
			pinger:    h.pinger,
			reader:    rdr(h.stdin),
		}, nil
	}}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(st)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())
	if cerr := st.close(); cerr != nil && err == nil {
		err = cerr
	}
	return out.String(), errOut.String(), err
}
