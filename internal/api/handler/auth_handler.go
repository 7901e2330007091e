package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/order-portal/internal/api/backend"
	"github.com/99minutos/order-portal/internal/core/domain"
)

// AuthBackend is the use-case surface the auth endpoints need.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (backend.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type AuthHandler struct {
	auth AuthBackend
}

// NewAuthHandler returns the handler for the /auth endpoints.
func NewAuthHandler(auth AuthBackend) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	LoginVia string `json:"loginVia" validate:"omitempty,oneof=password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type authorizationData struct {
	UserType    string              `json:"user_type"`
	Permissions []domain.Permission `json:"permissions"`
}

type authInfo struct {
	Permissions []domain.Permission `json:"permissions"`
}

type loginResponse struct {
	UserID                string            `json:"user_id"`
	Email                 string            `json:"email"`
	Access                string            `json:"access"`
	Refresh               string            `json:"refresh"`
	Role                  string            `json:"role"`
	FirstTimeLogin        bool              `json:"first_time_login"`
	UserAuthorizationData authorizationData `json:"user_authorization_data"`
	UserAuthInfo          authInfo          `json:"user_auth_info"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login handles POST /auth/login/.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return err
	}

	perms := res.Account.Permissions
	if perms == nil {
		perms = []domain.Permission{}
	}
	return ok(c, loginResponse{
		UserID:  res.Account.ID,
		Email:   res.Account.Email,
		Access:  res.Tokens.Access,
		Refresh: res.Tokens.Refresh,
		Role:    res.Account.Role,
		UserAuthorizationData: authorizationData{
			UserType:    res.Account.UserType,
			Permissions: []domain.Permission{},
		},
		UserAuthInfo: authInfo{Permissions: perms},
	})
}

// Refresh handles POST /auth/refresh/.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	pair, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token is invalid or expired")
	}
	if err != nil {
		return err
	}
	return ok(c, tokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// Logout handles POST /auth/logout/. It needs no bearer token: the refresh
// token in the body is what gets revoked.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	if err := h.auth.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return err
	}
	return ok[any](c, nil)
}
