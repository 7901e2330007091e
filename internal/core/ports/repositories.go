package ports

import (
	"context"
	"time"

	"github.com/99minutos/order-portal/internal/core/domain"
)

// AccountRepository looks up sandbox backend accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}

// RefreshTokenRepository tracks refresh tokens the sandbox has issued.
type RefreshTokenRepository interface {
	Save(ctx context.Context, token, accountID string, expiresAt time.Time) error
	// Consume returns the owning account and revokes the token in one step.
	Consume(ctx context.Context, token string) (accountID string, err error)
	Revoke(ctx context.Context, token string) error
}

// ListOrdersFilter carries the query of the dashboard order list.
type ListOrdersFilter struct {
	CustomerID string // empty = every customer
	Search     string // partial match on order number, PO, PI or product name
	Page       int    // 1-based
	PageSize   int
}

// OrderResources bundles the per-order tabs.
type OrderResources struct {
	Details   domain.OrderDetails
	Contacts  []domain.POC
	Documents []domain.Document
	Tracking  domain.TrackingData
	Photos    []domain.Photo
	Activity  []domain.ActivityLog
}

// OrderRepository serves the sandbox order fixtures.
type OrderRepository interface {
	List(ctx context.Context, filter ListOrdersFilter) ([]domain.Order, int, error)
	// Find returns domain.ErrOrderNotFound when id is unknown or owned by
	// another customer (customerID non-empty).
	Find(ctx context.Context, id, customerID string) (*OrderResources, error)
}
