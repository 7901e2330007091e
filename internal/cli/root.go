package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/infrastructure/httpclient"
)

// refreshWindow is how close to expiry an access token may get before a
// command refreshes it first.
const refreshWindow = time.Minute

// NewRootCmd builds the portal command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Customer order portal client",
		Long:          "portal signs in to the customer order dashboard and lists orders and their details.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newRefreshCmd(app),
		newOrdersCmd(app),
		newOrderCmd(app),
	)
	return root
}

// requireSession is a PreRunE for commands that call the dashboard. It
// refreshes an access token that is about to expire.
func requireSession(app *App) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if !app.Sessions.IsAuthenticated() {
			return errors.New("not logged in, run `portal login` first")
		}
		refreshed, err := app.Auth.RefreshIfExpiring(cmd.Context(), refreshWindow)
		if err != nil && !errors.Is(err, domain.ErrNotAuthenticated) {
			app.Log.Warn().Err(err).Msg("token refresh failed")
		}
		if refreshed {
			app.Log.Debug().Msg("access token refreshed")
		}
		return nil
	}
}

// failed wraps err for display, adding the message or detail the backend
// sent with a non-2xx status.
func failed(op string, err error) error {
	if se, ok := httpclient.AsStatus(err); ok {
		for _, field := range []string{"message", "detail"} {
			if msg := se.Field(field); msg != "" {
				return fmt.Errorf("%s: %s: %w", op, msg, err)
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
