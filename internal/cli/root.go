// Package cli contains the tracker CLI commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/api"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/apperrors"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/config"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/credstore"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/output"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/session"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/store"
)

var (
	cfg     *config.Config
	printer *output.Printer
	logger  *slog.Logger
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Financial portfolio tracker CLI",
	Long: `tracker manages investment portfolios against a portfolio tracker server.

Sign in once and the session is kept on disk, encrypted, until you log
out or the server expires it.

Example usage:
  tracker register alice       # Create an account and sign in
  tracker login alice          # Sign in to an existing account
  tracker list                 # List your portfolios
  tracker create "Tech"        # Create a portfolio
  tracker add 1 AAPL 10        # Add 10 shares of AAPL to portfolio 1
  tracker insights 1           # Analyze portfolio 1`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logLevel := slog.LevelWarn
		if verbose {
			logLevel = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logLevel,
		}))

		printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// app bundles the session-aware pieces a command operates on.
type app struct {
	creds   *credstore.Store
	client  *api.Client
	session *session.Manager
	store   *store.Store
}

// newApp opens the credential store and restores the persisted session, if
// any. Callers must Close it.
func newApp(ctx context.Context) (*app, error) {
	creds, err := credstore.Open(cfg.Session.DatabasePath, cfg.Session.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	mgr := session.NewManager(creds, session.WithExpiryHandler(func() {
		printer.Warning("Session expired, please log in again")
	}))
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, nil)
	mgr.SetClient(client)

	logger.Debug("restoring session", "api", cfg.API.BaseURL)
	if err := mgr.Initialize(ctx); err != nil {
		creds.Close()
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	logger.Debug("session restored", "phase", mgr.Phase().String(), "user", mgr.Username())

	return &app{
		creds:   creds,
		client:  client,
		session: mgr,
		store:   store.New(client),
	}, nil
}

func (a *app) Close() {
	if err := a.creds.Close(); err != nil {
		printer.Warning("Failed to close credential store: %v", err)
	}
}

// requireAuth fails fast when no session is active, before any network call.
func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return apperrors.ErrNotAuthenticated
	}
	return nil
}

// readPassword returns the flag value when set, otherwise prompts on the
// command's input stream.
func readPassword(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	password = strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}
