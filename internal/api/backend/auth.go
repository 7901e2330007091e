// Package backend implements the use cases of the sandbox order backend: the
// auth endpoints and the customer dashboard reads.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
	"github.com/99minutos/order-portal/internal/metrics"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// AccessClaims are carried by sandbox access tokens.
type AccessClaims struct {
	Role       string `json:"role"`
	CustomerID string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly issued access/refresh token pair.
type TokenPair struct {
	Access  string
	Refresh string
}

// LoginResult is a successful login.
type LoginResult struct {
	Account *domain.Account
	Tokens  TokenPair
}

// AuthBackend verifies credentials and issues, rotates and revokes tokens.
type AuthBackend struct {
	accounts   ports.AccountRepository
	tokens     ports.RefreshTokenRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

// NewAuthBackend returns an AuthBackend that signs access tokens with jwtSecret.
func NewAuthBackend(accounts ports.AccountRepository, tokens ports.RefreshTokenRepository, jwtSecret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *AuthBackend {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &AuthBackend{
		accounts:   accounts,
		tokens:     tokens,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
		now:        time.Now,
	}
}

// Login checks email and password. Unknown accounts and wrong passwords both
// report domain.ErrInvalidCredentials.
func (s *AuthBackend) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		metrics.SandboxLoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.SandboxLoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.SandboxLoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.SandboxLoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, account)
	if err != nil {
		metrics.SandboxLoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SandboxLoginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", account.ID).Msg("login")
	return &LoginResult{Account: account, Tokens: pair}, nil
}

// Refresh rotates a refresh token: the presented token is spent and a new
// pair is issued.
func (s *AuthBackend) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, domain.ErrInvalidCredentials
	}
	accountID, err := s.tokens.Consume(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return TokenPair{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}

	pair, err := s.issue(ctx, account)
	if err != nil {
		return TokenPair{}, err
	}
	metrics.SandboxTokensRefreshedTotal.Inc()
	return pair, nil
}

// Logout revokes refreshToken. Unknown tokens are not an error.
func (s *AuthBackend) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, refreshToken)
}

// ParseAccessToken verifies an HS256 access token and returns its claims.
func (s *AuthBackend) ParseAccessToken(token string) (*AccessClaims, error) {
	return ParseAccessToken(s.jwtSecret, token)
}

func ParseAccessToken(secret []byte, token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrInvalidCredentials)
	}
	return claims, nil
}

func (s *AuthBackend) issue(ctx context.Context, account *domain.Account) (TokenPair, error) {
	now := s.now()
	claims := AccessClaims{
		Role:       account.Role,
		CustomerID: account.CustomerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh := uuid.NewString()
	if err := s.tokens.Save(ctx, refresh, account.ID, now.Add(s.refreshTTL)); err != nil {
		return TokenPair{}, fmt.Errorf("save refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}
