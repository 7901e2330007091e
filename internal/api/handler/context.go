package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/order-portal/internal/api/backend"
	"github.com/99minutos/order-portal/internal/api/middleware"
	"github.com/99minutos/order-portal/internal/core/domain"
)

// ctxViewer extracts the claims injected by the Auth middleware and
// fast-fails before any backend call:
//   - account_id must be non-empty (presence proves the middleware ran).
//   - a customer account without customer_id cannot be scoped; reject with 401.
func ctxViewer(c echo.Context) (backend.Viewer, error) {
	v := backend.Viewer{}
	v.AccountID, _ = c.Get(middleware.KeyAccountID).(string)
	v.Role, _ = c.Get(middleware.KeyRole).(string)
	v.CustomerID, _ = c.Get(middleware.KeyCustomerID).(string)

	if v.AccountID == "" {
		return v, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if v.Role != domain.RoleAdmin && v.CustomerID == "" {
		return v, echo.NewHTTPError(http.StatusUnauthorized, "token missing customer identity")
	}
	return v, nil
}
