package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/99minutos/order-portal/internal/core/domain"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := app.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return failed("login", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.User.Email, sess.User.UserType)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return failed("logout", err)
			}
			app.Sessions.Wait()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is signed in and what they may see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			sess := app.Sessions.Session()
			if !sess.IsAuthenticated || sess.User == nil {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			fmt.Fprintf(out, "Logged in as %s\n", sess.User.Email)
			fmt.Fprintf(out, "Role: %s (%s)\n", sess.User.Role, sess.User.UserType)
			var granted []string
			for _, module := range tabModules {
				if app.Sessions.HasPermission(module, domain.ActionRead) {
					granted = append(granted, module)
				}
			}
			if len(granted) == 0 {
				granted = []string{"none"}
			}
			fmt.Fprintf(out, "Readable modules: %s\n", strings.Join(granted, ", "))
			return nil
		},
	}
}

func newRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new token pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.Auth.Refresh(cmd.Context())
			if errors.Is(err, domain.ErrNotAuthenticated) {
				return errors.New("not logged in, run `portal login` first")
			}
			if err != nil {
				return failed("refresh", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tokens refreshed")
			return nil
		},
	}
}
