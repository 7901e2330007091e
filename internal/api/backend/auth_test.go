package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/infrastructure/db/memory"
)

func newTestAuthBackend(t *testing.T) *AuthBackend {
	t.Helper()
	accounts, err := memory.SeedAccounts(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed accounts: %v", err)
	}
	return NewAuthBackend(
		memory.NewAccountRepository(accounts...),
		memory.NewRefreshTokenRepository(),
		"secret", time.Minute, time.Hour, zerolog.Nop(),
	)
}

func TestAuthBackend_Login_Success(t *testing.T) {
	svc := newTestAuthBackend(t)

	res, err := svc.Login(context.Background(), "buyer@acme.test", memory.SeedPassword)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Account.ID != "u-buyer" {
		t.Fatalf("unexpected account %q", res.Account.ID)
	}
	if res.Tokens.Access == "" || res.Tokens.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", res.Tokens)
	}

	claims, err := svc.ParseAccessToken(res.Tokens.Access)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if claims.Subject != "u-buyer" || claims.Role != domain.RoleCustomer || claims.CustomerID != "C-100" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Sub(time.Now()) > time.Minute {
		t.Fatalf("expected exp within the access ttl, got %v", claims.ExpiresAt)
	}
}

func TestAuthBackend_Login_InvalidCredentials(t *testing.T) {
	svc := newTestAuthBackend(t)

	cases := []struct{ email, password string }{
		{"buyer@acme.test", "wrong"},
		{"nobody@acme.test", memory.SeedPassword},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%q/%q: expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

func TestAuthBackend_RefreshRotates(t *testing.T) {
	svc := newTestAuthBackend(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "buyer@acme.test", memory.SeedPassword)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	pair, err := svc.Refresh(ctx, res.Tokens.Refresh)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if pair.Refresh == res.Tokens.Refresh {
		t.Fatalf("expected a new refresh token")
	}
	if _, err := svc.ParseAccessToken(pair.Access); err != nil {
		t.Fatalf("refreshed access token invalid: %v", err)
	}

	if _, err := svc.Refresh(ctx, res.Tokens.Refresh); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected spent token to be rejected, got %v", err)
	}
}

func TestAuthBackend_LogoutRevokes(t *testing.T) {
	svc := newTestAuthBackend(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "buyer@acme.test", memory.SeedPassword)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if err := svc.Logout(ctx, res.Tokens.Refresh); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Refresh(ctx, res.Tokens.Refresh); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
	if err := svc.Logout(ctx, "unknown"); err != nil {
		t.Fatalf("Logout of unknown token returned error: %v", err)
	}
}

func TestParseAccessToken_Rejects(t *testing.T) {
	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	cases := map[string]string{
		"wrong secret": sign(jwt.SigningMethodHS256, []byte("other"), AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: future}}),
		"expired":      sign(jwt.SigningMethodHS256, []byte("secret"), AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: past}}),
		"no exp":       sign(jwt.SigningMethodHS256, []byte("secret"), AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}),
		"no subject":   sign(jwt.SigningMethodHS256, []byte("secret"), AccessClaims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}),
		"wrong alg":    sign(jwt.SigningMethodHS512, []byte("secret"), AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: future}}),
		"garbage":      "not-a-token",
	}
	for name, token := range cases {
		if _, err := ParseAccessToken([]byte("secret"), token); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
}
