package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/aura/internal/client/config"
)

// version is set at build time via ldflags.
var version = "dev"

// annotationNoApp marks commands that run without a local database or a
// server connection.
const annotationNoApp = "aura/no-app"

type rootOptions struct {
	configPath string
	server     string
	dbPath     string
	timeout    time.Duration
	verbose    bool
}

// state is shared by the command tree of one invocation. build is replaced
// in tests.
type state struct {
	opts  rootOptions
	cfg   *config.Config
	app   *App
	build func(ctx context.Context, c *config.Config) (*App, error)
}

func (s *state) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

// Execute runs the aura command line against os.Args.
func Execute(ctx context.Context) error {
	st := &state{build: NewApp}
	cmd := newRootCmd(st)

	err := cmd.ExecuteContext(ctx)
	if cerr := st.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "aura",
		Short:   "Aura resource library client",
		Long:    "Sign in to an Aura server, then upload and download its resources.",
		Version: version,
		// main prints the error once.
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&st.opts.configPath, "config", "", "config file path (default "+config.DefaultConfigPath()+")")
	cmd.PersistentFlags().StringVarP(&st.opts.server, "server", "a", "", "server gRPC address")
	cmd.PersistentFlags().StringVar(&st.opts.dbPath, "db", "", "local database path")
	cmd.PersistentFlags().DurationVar(&st.opts.timeout, "timeout", 0, "per-request timeout")
	cmd.PersistentFlags().BoolVarP(&st.opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newLoginCmd(st))
	cmd.AddCommand(newLogoutCmd(st))
	cmd.AddCommand(newWhoamiCmd(st))
	cmd.AddCommand(newPingCmd(st))
	cmd.AddCommand(newResourcesCmd(st))
	cmd.AddCommand(newUploadCmd(st))
	cmd.AddCommand(newDownloadCmd(st))
	cmd.AddCommand(newConfigCmd(st))

	return cmd
}

// load resolves the configuration and, unless the command opts out, builds
// the App with the restored session.
func (s *state) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(s.opts.configPath, config.Overrides{
		ServerEndpointAddr: s.opts.server,
		DatabasePath:       s.opts.dbPath,
		RequestTimeout:     s.opts.timeout,
		Verbose:            s.opts.verbose,
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	s.cfg = cfg

	if !needsApp(cmd) {
		return nil
	}

	app, err := s.build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	s.app = app
	return nil
}

func needsApp(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoApp] == "true" {
			return false
		}
	}
	return true
}

var errNoApp = errors.New("client is not initialized")

func (s *state) mustApp() (*App, error) {
	if s.app == nil {
		return nil, errNoApp
	}
	return s.app, nil
}
