package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/order-portal/internal/core/domain"
)

const loginViaPassword = "password"

// AuthService drives the backend auth endpoints and keeps the session store
// in step with them.
type AuthService struct {
	api      API
	sessions *SessionStore
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService returns an AuthService that keeps sessions up to date.
func NewAuthService(api API, sessions *SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		validate: validator.New(),
		log:      log.With().Str("component", "auth").Logger(),
		now:      time.Now,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	LoginVia string `json:"loginVia"`
}

type loginResponse struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	Access         string `json:"access"`
	Refresh        string `json:"refresh"`
	Role           string `json:"role"`
	FirstTimeLogin bool   `json:"first_time_login"`

	UserAuthorizationData struct {
		UserType string `json:"user_type"`
	} `json:"user_authorization_data"`

	UserAuthInfo *struct {
		Permissions []domain.Permission `json:"permissions"`
	} `json:"user_auth_info"`
}

func (r loginResponse) loginData() domain.LoginData {
	perms := []domain.Permission{}
	if r.UserAuthInfo != nil && r.UserAuthInfo.Permissions != nil {
		perms = r.UserAuthInfo.Permissions
	}
	return domain.LoginData{
		UserID:       r.UserID,
		Email:        r.Email,
		AccessToken:  r.Access,
		RefreshToken: r.Refresh,
		Role:         r.Role,
		UserType:     r.UserAuthorizationData.UserType,
		Permissions:  perms,
	}
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login signs in with email and password and starts a session.
// Malformed credentials fail with domain.ErrInvalidCredentials before any
// request is made; a {"success": false} reply fails with *domain.APIError.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	req := loginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
		LoginVia: loginViaPassword,
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, describe(err))
	}

	var env domain.Envelope[loginResponse]
	if err := s.api.Post(ctx, pathLogin, req, nil, &env); err != nil {
		return domain.Session{}, err
	}
	if err := env.Err(); err != nil {
		s.log.Info().Str("email", req.Email).Str("message", env.Message).Msg("login rejected")
		return domain.Session{}, err
	}
	if env.Data.Access == "" || env.Data.Refresh == "" {
		return domain.Session{}, &domain.APIError{Message: "login response is missing tokens"}
	}

	if err := s.sessions.Login(ctx, env.Data.loginData()); err != nil {
		return domain.Session{}, err
	}
	return s.sessions.Session(), nil
}

// Refresh exchanges the stored refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context) error {
	if !s.sessions.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	refresh := s.sessions.RefreshToken()
	if refresh == "" {
		return domain.ErrNoRefreshToken
	}

	var env domain.Envelope[tokenPair]
	if err := s.api.Post(ctx, pathRefresh, refreshTokenBody{RefreshToken: refresh}, nil, &env); err != nil {
		return err
	}
	if err := env.Err(); err != nil {
		return err
	}
	if env.Data.Access == "" || env.Data.Refresh == "" {
		return &domain.APIError{Message: "refresh response is missing tokens"}
	}
	return s.sessions.UpdateToken(ctx, env.Data.Access, env.Data.Refresh)
}

// RefreshIfExpiring refreshes when the access token expires within window.
// Tokens that are not JWTs, or carry no exp claim, are left alone.
func (s *AuthService) RefreshIfExpiring(ctx context.Context, window time.Duration) (bool, error) {
	access := s.sessions.AccessToken()
	if access == "" {
		return false, domain.ErrNotAuthenticated
	}

	exp, ok := expiry(access)
	if !ok {
		return false, nil
	}
	if exp.Sub(s.now()) > window {
		return false, nil
	}

	s.log.Debug().Time("expires_at", exp).Msg("access token about to expire, refreshing")
	if err := s.Refresh(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Logout ends the session. See SessionStore.Logout.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// expiry reads the exp claim without verifying the signature; the client
// holds no key and only uses the value to schedule a refresh.
func expiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func describe(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
