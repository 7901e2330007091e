package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
)

// Viewer is who a dashboard read is made for. An empty CustomerID means an
// internal user who sees every customer.
type Viewer struct {
	AccountID  string
	Role       string
	CustomerID string
}

func (v Viewer) scope() string {
	if v.Role == domain.RoleAdmin {
		return ""
	}
	return v.CustomerID
}

// OrderBackend serves the customer dashboard.
type OrderBackend struct {
	orders   ports.OrderRepository
	pageSize int
}

// NewOrderBackend returns an OrderBackend serving pages of pageSize orders.
func NewOrderBackend(orders ports.OrderRepository, pageSize int) *OrderBackend {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &OrderBackend{orders: orders, pageSize: pageSize}
}

// List returns one page of the viewer's orders. Next and Previous carry the
// query string of the neighbouring pages.
func (s *OrderBackend) List(ctx context.Context, v Viewer, page int, search string) (domain.Page[domain.Order], error) {
	if page < 1 {
		page = 1
	}
	if v.Role != domain.RoleAdmin && v.CustomerID == "" {
		return domain.Page[domain.Order]{}, domain.ErrForbidden
	}

	orders, total, err := s.orders.List(ctx, ports.ListOrdersFilter{
		CustomerID: v.scope(),
		Search:     search,
		Page:       page,
		PageSize:   s.pageSize,
	})
	if err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("list orders: %w", err)
	}

	info := domain.NewPageInfo(total, s.pageSize, page)
	out := domain.Page[domain.Order]{
		Count:      total,
		Results:    orders,
		PageSize:   s.pageSize,
		PageNumber: page,
	}
	if info.HasNext() {
		out.Next = pageLink(page+1, search)
	}
	if info.HasPrev() {
		out.Previous = pageLink(page-1, search)
	}
	return out, nil
}

// Resources returns every tab of one order. Orders that belong to another
// customer are reported as not found.
func (s *OrderBackend) Resources(ctx context.Context, v Viewer, id string) (*ports.OrderResources, error) {
	if v.Role != domain.RoleAdmin && v.CustomerID == "" {
		return nil, domain.ErrForbidden
	}
	return s.orders.Find(ctx, id, v.scope())
}

func pageLink(page int, search string) *string {
	link := fmt.Sprintf("?page=%d", page)
	if search != "" {
		link += "&search_text=" + url.QueryEscape(search)
	}
	return &link
}
