package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/order-portal/internal/api/backend"
	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
)

// OrderBackend is the use-case surface the dashboard endpoints need.
type OrderBackend interface {
	List(ctx context.Context, v backend.Viewer, page int, search string) (domain.Page[domain.Order], error)
	Resources(ctx context.Context, v backend.Viewer, id string) (*ports.OrderResources, error)
}

type OrderHandler struct {
	orders OrderBackend
}

// NewOrderHandler returns the handler for the dashboard order endpoints.
func NewOrderHandler(orders OrderBackend) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /customer/dashboard/orders/?page=&search_text=.
func (h *OrderHandler) List(c echo.Context) error {
	v, err := ctxViewer(c)
	if err != nil {
		return err
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return fail(c, http.StatusBadRequest, "page must be a positive integer")
		}
	}

	result, err := h.orders.List(c.Request().Context(), v, page, c.QueryParam("search_text"))
	if err != nil {
		return err
	}
	return ok(c, result)
}

// Overview handles GET /customer/dashboard/order/:id/overview/.
func (h *OrderHandler) Overview(c echo.Context) error {
	return h.tab(c, func(r *ports.OrderResources) error { return ok(c, r.Details) })
}

// Contacts handles GET /customer/dashboard/order/:id/pocs/.
func (h *OrderHandler) Contacts(c echo.Context) error {
	return h.tab(c, func(r *ports.OrderResources) error { return ok(c, nonNil(r.Contacts)) })
}

// Documents handles GET /customer/dashboard/order/:id/documents/.
func (h *OrderHandler) Documents(c echo.Context) error {
	return h.tab(c, func(r *ports.OrderResources) error { return ok(c, pageOf(r.Documents)) })
}

// Tracking handles GET /customer/dashboard/order/:id/shipment-tracking/.
func (h *OrderHandler) Tracking(c echo.Context) error {
	return h.tab(c, func(r *ports.OrderResources) error { return ok(c, r.Tracking) })
}

// StuffingPhotos handles GET /customer/dashboard/order/:id/stuffing-images/.
func (h *OrderHandler) StuffingPhotos(c echo.Context) error {
	return h.tab(c, func(r *ports.OrderResources) error { return ok(c, pageOf(r.Photos)) })
}

// Progress handles GET /customer/dashboard/order/:id/activity-logs/.
func (h *OrderHandler) Progress(c echo.Context) error {
	return h.tab(c, func(r *ports.OrderResources) error { return ok(c, nonNil(r.Activity)) })
}

func (h *OrderHandler) tab(c echo.Context, render func(*ports.OrderResources) error) error {
	v, err := ctxViewer(c)
	if err != nil {
		return err
	}
	res, err := h.orders.Resources(c.Request().Context(), v, c.Param("id"))
	if errors.Is(err, domain.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Not found.")
	}
	if err != nil {
		return err
	}
	return render(res)
}

// pageOf wraps a whole collection as a single page.
func pageOf[T any](items []T) domain.Page[T] {
	items = nonNil(items)
	return domain.Page[T]{Count: len(items), Results: items, PageSize: len(items), PageNumber: 1}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
