package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/order-portal/internal/api/backend"
)

// Context keys set by Auth.
const (
	KeyAccountID  = "account_id"
	KeyRole       = "role"
	KeyCustomerID = "customer_id"
)

// Auth validates the bearer access token and injects its claims into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	secret := []byte(jwtSecret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication credentials were not provided.")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := backend.ParseAccessToken(secret, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Given token not valid for any token type")
			}

			c.Set(KeyAccountID, claims.Subject)
			c.Set(KeyRole, claims.Role)
			c.Set(KeyCustomerID, claims.CustomerID)

			return next(c)
		}
	}
}
