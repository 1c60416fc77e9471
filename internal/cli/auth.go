package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/apperrors"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in to the tracker server",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the saved session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().String("password", "", "password (prompted when omitted)")
	registerCmd.Flags().String("password", "", "password (prompted when omitted)")
	registerCmd.Flags().String("email", "", "email address")
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	if _, err := app.session.Login(cmd.Context(), args[0], password); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			printer.Error("Invalid username or password")
		}
		return err
	}

	printer.Success("Signed in as %s", app.session.Username())
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	email, _ := cmd.Flags().GetString("email")

	if _, err := app.session.Register(cmd.Context(), args[0], password, email); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			printer.Error("Registration rejected: %v", err)
		}
		return err
	}

	printer.Success("Account created, signed in as %s", app.session.Username())
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.session.Logout(); err != nil {
		return err
	}
	printer.Success("Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.session.IsAuthenticated() {
		printer.Print("Not signed in")
		return nil
	}
	printer.Print("%s", app.session.Username())
	return nil
}
