package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/client/session"
	"github.com/dmitrijs2005/aura/internal/common"
)

func newLoginCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "login [handle]",
		Short: "Sign in and remember the session",
		Long: `Sign in with a handle and password. The password is read from the
terminal without echo, or from the first line of stdin when it is piped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := st.mustApp()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var handle string
			if len(args) == 1 {
				handle = args[0]
			} else {
				handle, err = GetSimpleText(app.reader, "Enter handle", out)
				if err != nil {
					return err
				}
			}
			if handle == "" {
				return errors.New("handle must not be empty")
			}

			password, err := GetSecret(app.reader, out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if err := app.session.Login(cmd.Context(), handle, password); err != nil {
				return loginFailure(err)
			}

			fmt.Fprintf(out, "Signed in as %s\n", describePrincipal(app.session.Snapshot().Principal))
			return nil
		},
	}
}

// loginFailure keeps the server's explanation for a rejected login and
// the sentinel for errors.Is.
func loginFailure(err error) error {
	var ae *session.AuthError
	if errors.As(err, &ae) {
		return fmt.Errorf("login failed: %w", ae)
	}
	return err
}

func newLogoutCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := st.mustApp()
			if err != nil {
				return err
			}
			app.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := st.mustApp()
			if err != nil {
				return err
			}
			if _, err := app.requireSession(); err != nil {
				return err
			}

			// A server that cannot be reached leaves the cached identity in place.
			if err := app.session.RefreshPrincipal(cmd.Context()); err != nil {
				if !errors.Is(err, session.ErrUnreachable) {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: server unreachable, showing the saved identity")
			}

			s := app.session.Snapshot()
			if !s.Authenticated {
				return session.ErrNotSignedIn
			}
			printPrincipal(cmd.OutOrStdout(), s.Principal)
			return nil
		},
	}
}

func newPingCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := st.mustApp()
			if err != nil {
				return err
			}
			if err := app.pinger.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping %s: %w", app.config.ServerEndpointAddr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is reachable\n", app.config.ServerEndpointAddr)
			return nil
		},
	}
}

func describePrincipal(p models.Principal) string {
	name := p.DisplayName
	if name == "" {
		name = p.Handle
	}
	return fmt.Sprintf("%s (%s)", name, p.Role)
}

func printPrincipal(w io.Writer, p models.Principal) {
	fmt.Fprintf(w, "Name:    %s\n", p.DisplayName)
	fmt.Fprintf(w, "Handle:  %s\n", p.Handle)
	fmt.Fprintf(w, "Role:    %s\n", p.Role)
	fmt.Fprintf(w, "Subject: %s\n", p.SubjectID)
}
