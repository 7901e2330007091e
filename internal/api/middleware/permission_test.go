package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/infrastructure/db/memory"
)

func permissionRepo() *memory.AccountRepository {
	return memory.NewAccountRepository(
		domain.Account{ID: "u-viewer", Email: "viewer@acme.test", Permissions: []domain.Permission{
			domain.Grant(domain.ModuleOrders, domain.ActionRead),
		}},
	)
}

func runPermission(t *testing.T, accountID, module string) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if accountID != "" {
		c.Set(KeyAccountID, accountID)
	}

	called := false
	handler := Permission(permissionRepo(), module, domain.ActionRead)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, called
}

func TestPermission_Allows(t *testing.T) {
	code, called := runPermission(t, "u-viewer", domain.ModuleOrders)
	if !called {
		t.Fatalf("next handler not called")
	}
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestPermission_Forbids(t *testing.T) {
	code, called := runPermission(t, "u-viewer", domain.ModuleDocuments)
	if called {
		t.Fatalf("next handler should not be called")
	}
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestPermission_RequiresAuth(t *testing.T) {
	if code, _ := runPermission(t, "", domain.ModuleOrders); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", code)
	}
	if code, _ := runPermission(t, "u-gone", domain.ModuleOrders); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown account, got %d", code)
	}
}
