package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
)

func seededOrders() *OrderRepository {
	return NewOrderRepository(SeedOrders(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))...)
}

func TestOrderRepository_ListPaginatesPerCustomer(t *testing.T) {
	repo := seededOrders()
	ctx := context.Background()

	first, total, err := repo.List(ctx, ports.ListOrdersFilter{CustomerID: "C-100", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 12 || len(first) != 10 {
		t.Fatalf("expected 10 of 12, got %d of %d", len(first), total)
	}
	if first[0].OrderID != "ord-001" {
		t.Fatalf("expected newest order first, got %s", first[0].OrderID)
	}

	second, _, err := repo.List(ctx, ports.ListOrdersFilter{CustomerID: "C-100", Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("expected 2 orders on page 2, got %d", len(second))
	}

	beyond, _, err := repo.List(ctx, ports.ListOrdersFilter{CustomerID: "C-100", Page: 9})
	if err != nil || len(beyond) != 0 {
		t.Fatalf("expected empty page, got %d (%v)", len(beyond), err)
	}

	_, all, _ := repo.List(ctx, ports.ListOrdersFilter{})
	if all != 15 {
		t.Fatalf("expected unscoped list to see 15 orders, got %d", all)
	}
}

func TestOrderRepository_Search(t *testing.T) {
	repo := seededOrders()

	got, total, err := repo.List(context.Background(), ports.ListOrdersFilter{Search: "ord-1003"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 || got[0].OrderID != "ord-003" {
		t.Fatalf("unexpected search result: %d %+v", total, got)
	}

	_, total, _ = repo.List(context.Background(), ports.ListOrdersFilter{Search: "glycerine"})
	if total == 0 {
		t.Fatalf("expected product name search to match")
	}
}

func TestOrderRepository_FindIsScoped(t *testing.T) {
	repo := seededOrders()
	ctx := context.Background()

	if _, err := repo.Find(ctx, "ord-013", "C-100"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
	res, err := repo.Find(ctx, "ord-013", "C-200")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if res.Details.OrderID != "ord-013" {
		t.Fatalf("unexpected details %+v", res.Details)
	}
	if _, err := repo.Find(ctx, "ord-013", ""); err != nil {
		t.Fatalf("unscoped Find returned error: %v", err)
	}
}

func TestSeedOrders_StageMatchesTimeline(t *testing.T) {
	for _, fx := range SeedOrders(time.Now()) {
		stage, ok := domain.OrderStage(fx.Order.OrderStage)
		if !ok {
			t.Fatalf("%s: unknown stage code %q", fx.Order.OrderID, fx.Order.OrderStage)
		}
		if stage != domain.TimelineStage(fx.Resources.Details) {
			t.Fatalf("%s: list stage %s disagrees with timeline", fx.Order.OrderID, stage)
		}
	}
}

func TestAccountRepository(t *testing.T) {
	accounts, err := SeedAccounts(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("SeedAccounts returned error: %v", err)
	}
	repo := NewAccountRepository(accounts...)
	ctx := context.Background()

	a, err := repo.FindByEmail(ctx, " Buyer@ACME.test")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(SeedPassword)) != nil {
		t.Fatalf("seed password does not match hash")
	}
	if _, err := repo.FindByID(ctx, a.ID); err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "nobody@acme.test"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRefreshTokenRepository(t *testing.T) {
	repo := NewRefreshTokenRepository()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	_ = repo.Save(ctx, "r1", "u-buyer", now.Add(time.Hour))
	id, err := repo.Consume(ctx, "r1")
	if err != nil || id != "u-buyer" {
		t.Fatalf("Consume = %q, %v", id, err)
	}
	if _, err := repo.Consume(ctx, "r1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected reuse to fail, got %v", err)
	}

	_ = repo.Save(ctx, "r2", "u-buyer", now.Add(-time.Second))
	if _, err := repo.Consume(ctx, "r2"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}

	_ = repo.Save(ctx, "r3", "u-buyer", now.Add(time.Hour))
	_ = repo.Revoke(ctx, "r3")
	if _, err := repo.Consume(ctx, "r3"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected revoked token to fail, got %v", err)
	}
}
