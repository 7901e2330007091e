package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/infrastructure/db/memory"
)

func newTestOrderBackend() *OrderBackend {
	return NewOrderBackend(memory.NewOrderRepository(memory.SeedOrders(time.Now())...), 0)
}

func TestOrderBackend_ListPages(t *testing.T) {
	svc := newTestOrderBackend()
	buyer := Viewer{AccountID: "u-buyer", Role: domain.RoleCustomer, CustomerID: "C-100"}

	first, err := svc.List(context.Background(), buyer, 1, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if first.Count != 12 || len(first.Results) != 10 || first.PageSize != 10 || first.PageNumber != 1 {
		t.Fatalf("unexpected first page: count=%d len=%d", first.Count, len(first.Results))
	}
	if first.Next == nil || *first.Next != "?page=2" || first.Previous != nil {
		t.Fatalf("unexpected links: next=%v prev=%v", first.Next, first.Previous)
	}

	second, err := svc.List(context.Background(), buyer, 2, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(second.Results) != 2 || second.Next != nil || second.Previous == nil {
		t.Fatalf("unexpected second page: %+v", second)
	}
}

func TestOrderBackend_Scoping(t *testing.T) {
	svc := newTestOrderBackend()
	ctx := context.Background()
	other := Viewer{AccountID: "u-other", Role: domain.RoleCustomer, CustomerID: "C-200"}
	admin := Viewer{AccountID: "u-ops", Role: domain.RoleAdmin}

	page, err := svc.List(ctx, other, 1, "")
	if err != nil || page.Count != 3 {
		t.Fatalf("expected 3 orders for C-200, got %d (%v)", page.Count, err)
	}
	page, err = svc.List(ctx, admin, 1, "")
	if err != nil || page.Count != 15 {
		t.Fatalf("expected admin to see 15 orders, got %d (%v)", page.Count, err)
	}

	if _, err := svc.Resources(ctx, other, "ord-001"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected foreign order to be hidden, got %v", err)
	}
	if _, err := svc.Resources(ctx, admin, "ord-001"); err != nil {
		t.Fatalf("admin Resources returned error: %v", err)
	}

	orphan := Viewer{AccountID: "u-x", Role: domain.RoleCustomer}
	if _, err := svc.List(ctx, orphan, 1, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer without scope, got %v", err)
	}
}
