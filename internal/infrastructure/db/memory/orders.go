package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
)

// OrderFixture is one order together with its tabs and owner.
type OrderFixture struct {
	CustomerID string
	Order      domain.Order
	Resources  ports.OrderResources
}

// OrderRepository serves order fixtures, newest first.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []OrderFixture
}

// NewOrderRepository returns a repository holding fixtures, newest first.
func NewOrderRepository(fixtures ...OrderFixture) *OrderRepository {
	r := &OrderRepository{orders: append([]OrderFixture(nil), fixtures...)}
	sort.SliceStable(r.orders, func(i, j int) bool {
		return r.orders[i].Order.CreatedDate > r.orders[j].Order.CreatedDate
	})
	return r
}

func (r *OrderRepository) List(_ context.Context, f ports.ListOrdersFilter) ([]domain.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(f.Search))
	var matched []domain.Order
	for _, fx := range r.orders {
		if f.CustomerID != "" && fx.CustomerID != f.CustomerID {
			continue
		}
		if needle != "" && !matches(fx, needle) {
			continue
		}
		matched = append(matched, fx.Order)
	}

	size := f.PageSize
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(matched) {
		return []domain.Order{}, len(matched), nil
	}
	end := min(start+size, len(matched))
	return append([]domain.Order(nil), matched[start:end]...), len(matched), nil
}

func (r *OrderRepository) Find(_ context.Context, id, customerID string) (*ports.OrderResources, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, fx := range r.orders {
		if fx.Order.OrderID != id {
			continue
		}
		if customerID != "" && fx.CustomerID != customerID {
			return nil, domain.ErrOrderNotFound
		}
		res := fx.Resources
		return &res, nil
	}
	return nil, domain.ErrOrderNotFound
}

func matches(fx OrderFixture, needle string) bool {
	o := fx.Order
	fields := []string{o.OrderNumber, o.POReferenceNo, o.PIDocumentNo}
	fields = append(fields, o.OrderItems...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
