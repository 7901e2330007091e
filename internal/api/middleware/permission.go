package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
)

// Permission enforces module-level access. It must run after Auth; the
// account is reloaded so revoked permissions apply to live tokens.
func Permission(accounts ports.AccountRepository, module string, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(KeyAccountID).(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			account, err := accounts.FindByID(c.Request().Context(), id)
			if errors.Is(err, domain.ErrUserNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			if err != nil {
				return err
			}

			if !account.Can(module, action) {
				return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to perform this action.")
			}
			return next(c)
		}
	}
}
