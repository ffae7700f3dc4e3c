package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/aura/internal/client/client"
	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/client/services"
	"github.com/dmitrijs2005/aura/internal/client/session"
)

func TestLogin_HandleArgAndPipedPassword(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	h := &harness{stdin: "hunter2\n"}

	out, _, err := h.run(t, "login", "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", h.session.handle)
	assert.Equal(t, "hunter2", h.session.secretSeen)
	assert.Equal(t, make([]byte, len("hunter2")), h.session.secret, "password must be wiped")
	assert.Contains(t, out, "Signed in as Alice (admin)")
}

func TestLogin_PromptsForHandle(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	h := &harness{stdin: "alice\npw\n"}

	out, _, err := h.run(t, "login")
	require.NoError(t, err)
	assert.Equal(t, "alice", h.session.handle)
	assert.Equal(t, "pw", h.session.secretSeen)
	assert.Contains(t, out, "Enter handle")
}

func TestLogin_TerminalPassword(t *testing.T) {
	stubTerminal(t, true, []byte("from-tty"), nil)
	h := &harness{}

	_, _, err := h.run(t, "login", "alice")
	require.NoError(t, err)
	assert.Equal(t, "from-tty", h.session.secretSeen)
}

func TestLogin_EmptyHandle(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	h := &harness{stdin: "\npw\n"}

	_, _, err := h.run(t, "login")
	require.Error(t, err)
	assert.Empty(t, h.session.handle, "login must not be attempted")
}

func TestLogin_Rejected(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	h := &harness{
		stdin:   "wrong\n",
		session: &fakeSession{loginErr: &session.AuthError{Err: session.ErrInvalidCredentials, Message: "Invalid credentials"}},
	}

	_, _, err := h.run(t, "login", "alice")
	require.ErrorIs(t, err, session.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.False(t, h.session.Snapshot().Authenticated)
}

func TestLogin_Unreachable(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	h := &harness{
		stdin:   "pw\n",
		session: &fakeSession{loginErr: &session.AuthError{Err: session.ErrUnreachable}},
	}

	_, _, err := h.run(t, "login", "alice")
	require.ErrorIs(t, err, session.ErrUnreachable)
}

func TestLogout(t *testing.T) {
	h := &harness{session: signedIn(alice)}

	out, _, err := h.run(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, 1, h.session.logouts)
	assert.False(t, h.session.Snapshot().Authenticated)
	assert.Equal(t, "Signed out\n", out)
}

func TestWhoami(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		h := &harness{session: signedIn(alice)}

		out, errOut, err := h.run(t, "whoami")
		require.NoError(t, err)
		assert.Equal(t, 1, h.session.refreshes)
		assert.Contains(t, out, "Handle:  alice")
		assert.Contains(t, out, "Role:    admin")
		assert.Empty(t, errOut)
	})

	t.Run("not signed in", func(t *testing.T) {
		h := &harness{}

		_, _, err := h.run(t, "whoami")
		require.ErrorIs(t, err, session.ErrNotSignedIn)
		assert.Zero(t, h.session.refreshes)
	})

	t.Run("unreachable shows saved identity", func(t *testing.T) {
		s := signedIn(alice)
		s.refreshErr = fmt.Errorf("%w: dial", session.ErrUnreachable)
		h := &harness{session: s}

		out, errOut, err := h.run(t, "whoami")
		require.NoError(t, err)
		assert.Contains(t, out, "Name:    Alice")
		assert.Contains(t, errOut, "server unreachable")
	})

	t.Run("revoked", func(t *testing.T) {
		s := signedIn(alice)
		s.refreshErr = session.ErrSessionRevoked
		h := &harness{session: s}

		_, _, err := h.run(t, "whoami")
		require.ErrorIs(t, err, session.ErrSessionRevoked)
		assert.False(t, h.session.Snapshot().Authenticated)
	})
}

func TestPing(t *testing.T) {
	h := &harness{}
	out, _, err := h.run(t, "ping", "-a", "aura.test:9000")
	require.NoError(t, err)
	assert.Equal(t, "aura.test:9000 is reachable\n", out)

	h = &harness{pinger: fakePinger{err: client.ErrUnavailable}}
	_, _, err = h.run(t, "ping")
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestResources_Table(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &harness{
		session: signedIn(alice),
		transfers: &fakeTransfers{items: []*models.Resource{
			{ID: "r-1", Title: "Report", StorageKey: "resources/1_report.pdf", CreatedAt: created},
			{ID: "r-2", Title: "Draft"},
		}},
	}

	out, _, err := h.run(t, "resources")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "resources/1_report.pdf")
	assert.Contains(t, out, "r-2")
	assert.Contains(t, out, "Draft")
}

func TestResources_Empty(t *testing.T) {
	h := &harness{session: signedIn(alice)}

	out, _, err := h.run(t, "ls")
	require.NoError(t, err)
	assert.Equal(t, "No resources\n", out)
}

func TestResources_JSON(t *testing.T) {
	h := &harness{
		session:   signedIn(alice),
		transfers: &fakeTransfers{items: []*models.Resource{{ID: "r-1", Title: "Report"}}},
	}

	out, _, err := h.run(t, "resources", "--json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "r-1", got[0]["id"])
	assert.NotContains(t, got[0], "storageKey")
}

func TestResources_RequireSession(t *testing.T) {
	for _, args := range [][]string{
		{"resources"},
		{"resources", "create", "t", "resources/1_a.pdf"},
		{"upload", "a.pdf"},
		{"download", "r-1"},
	} {
		h := &harness{}
		_, _, err := h.run(t, args...)
		require.ErrorIs(t, err, session.ErrNotSignedIn, "%v", args)
	}
}

func TestResources_RevokedTokenSignsOut(t *testing.T) {
	h := &harness{
		session:   signedIn(alice),
		transfers: &fakeTransfers{err: &client.ServerError{Message: "Unauthorized", Err: client.ErrUnauthorized}},
	}

	_, _, err := h.run(t, "resources")
	require.ErrorIs(t, err, session.ErrSessionRevoked)
	assert.Equal(t, 1, h.session.logouts)
}

func TestCreateResource(t *testing.T) {
	h := &harness{session: signedIn(alice)}

	out, _, err := h.run(t, "resources", "create", "Report", "resources/1_report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Report", h.transfers.gotTitle)
	assert.Equal(t, "resources/1_report.pdf", h.transfers.gotKey)
	assert.Equal(t, "Created resource r-9\n", out)
}

func TestUpload(t *testing.T) {
	h := &harness{
		session: signedIn(alice),
		transfers: &fakeTransfers{upload: &services.UploadResult{
			StorageKey:  "resources/1_a.pdf",
			ContentType: "application/pdf",
			Size:        42,
			Resource:    &models.Resource{ID: "r-5"},
		}},
	}

	out, _, err := h.run(t, "upload", "a.pdf", "--direct", "--title", "A", "--content-type", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "a.pdf", h.transfers.gotPath)
	assert.Equal(t, services.UploadOptions{ContentType: "application/pdf", Direct: true, Title: "A"}, h.transfers.gotOpts)
	assert.Contains(t, out, "Uploaded resources/1_a.pdf (application/pdf, 42 bytes)")
	assert.Contains(t, out, "Created resource r-5")
}

func TestUpload_StoredButNotRegistered(t *testing.T) {
	h := &harness{
		session: signedIn(alice),
		transfers: &fakeTransfers{
			upload: &services.UploadResult{StorageKey: "resources/1_a.pdf", ContentType: "application/pdf", Size: 1},
			err:    errors.New("file uploaded as resources/1_a.pdf but the resource was not created"),
		},
	}

	out, _, err := h.run(t, "upload", "a.pdf", "--title", "A")
	require.Error(t, err)
	assert.Contains(t, out, "Uploaded resources/1_a.pdf")
	assert.Zero(t, h.session.logouts)
}

func TestUpload_Failure(t *testing.T) {
	h := &harness{session: signedIn(alice), transfers: &fakeTransfers{err: services.ErrTooLarge}}

	out, _, err := h.run(t, "upload", "big.mp4", "--direct")
	require.ErrorIs(t, err, services.ErrTooLarge)
	assert.Empty(t, out)
}

func TestDownload(t *testing.T) {
	h := &harness{
		session:   signedIn(alice),
		transfers: &fakeTransfers{savedPath: "/tmp/report.pdf", savedN: 7},
	}

	out, _, err := h.run(t, "download", "r-1", "-o", "/tmp")
	require.NoError(t, err)
	assert.Equal(t, "r-1", h.transfers.gotID)
	assert.Equal(t, "/tmp", h.transfers.gotOut)
	assert.Equal(t, "Saved /tmp/report.pdf (7 bytes)\n", out)
}

func TestDownload_NotFound(t *testing.T) {
	h := &harness{
		session:   signedIn(alice),
		transfers: &fakeTransfers{err: &client.ServerError{Message: "Resource or file not found", Err: client.ErrNotFound}},
	}

	_, _, err := h.run(t, "download", "missing")
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Zero(t, h.session.logouts)
}

func TestConfigCmd_DoesNotBuildApp(t *testing.T) {
	h := &harness{buildErr: errors.New("must not be called")}

	out, _, err := h.run(t, "config", "-a", "aura.test:9000", "--timeout", "5s")
	require.NoError(t, err)
	assert.Zero(t, h.builds)
	assert.Contains(t, out, `server_endpoint_addr = "aura.test:9000"`)
	assert.Contains(t, out, `request_timeout = "5s"`)
}

func TestConfigFile_AppliedBeforeFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aura.toml")
	require.NoError(t, os.WriteFile(path, []byte("server_endpoint_addr = \"file:1\"\nlog_level = \"info\"\n"), 0o600))

	h := &harness{}
	out, _, err := h.run(t, "config", "--config", path, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, `server_endpoint_addr = "file:1"`)
	assert.Contains(t, out, `log_level = "debug"`)
}

func TestBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aura.toml")
	require.NoError(t, os.WriteFile(path, []byte("sever = \"typo\"\n"), 0o600))

	h := &harness{}
	_, _, err := h.run(t, "whoami", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.Zero(t, h.builds)
}

func TestBuildError(t *testing.T) {
	h := &harness{buildErr: errors.New("database locked")}

	_, _, err := h.run(t, "whoami")
	require.EqualError(t, err, "database locked")
}

func TestNeedsApp(t *testing.T) {
	root := newRootCmd(&state{})
	for _, c := range root.Commands() {
		want := c.Name() != "config"
		assert.Equal(t, want, needsApp(c), c.Name())
	}
	assert.False(t, needsApp(&cobra.Command{Use: "help"}))
}
