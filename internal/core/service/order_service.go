package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/infrastructure/httpclient"
)

var ErrMissingOrderID = errors.New("order id is required")

// OrderService fetches the customer dashboard resources. Envelopes with
// success=false come back as values; only transport and status failures are
// returned as errors.
type OrderService struct {
	api API
}

// NewOrderService returns an OrderService that calls api.
func NewOrderService(api API) *OrderService {
	return &OrderService{api: api}
}

// ListOrders returns one page of the order list. An empty search is left out
// of the query.
func (s *OrderService) ListOrders(ctx context.Context, page int, search string) (*domain.Envelope[domain.Page[domain.Order]], error) {
	if page < 1 {
		page = 1
	}
	params := httpclient.Params{"page": page}
	if search = strings.TrimSpace(search); search != "" {
		params["search_text"] = search
	}

	var env domain.Envelope[domain.Page[domain.Order]]
	if err := s.api.Get(ctx, pathOrders, params, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// SearchOrders is ListOrders with the search term first.
func (s *OrderService) SearchOrders(ctx context.Context, search string, page int) (*domain.Envelope[domain.Page[domain.Order]], error) {
	return s.ListOrders(ctx, page, search)
}

// Overview returns the overview tab of an order.
func (s *OrderService) Overview(ctx context.Context, id string) (*domain.Envelope[domain.OrderDetails], error) {
	return fetch[domain.OrderDetails](ctx, s.api, id, "overview")
}

// Contacts returns the points of contact of an order.
func (s *OrderService) Contacts(ctx context.Context, id string) (*domain.Envelope[[]domain.POC], error) {
	return fetch[[]domain.POC](ctx, s.api, id, "pocs")
}

// Documents returns the documents of an order.
func (s *OrderService) Documents(ctx context.Context, id string) (*domain.Envelope[domain.Page[domain.Document]], error) {
	return fetch[domain.Page[domain.Document]](ctx, s.api, id, "documents")
}

// Tracking returns the shipment tracking tab of an order.
func (s *OrderService) Tracking(ctx context.Context, id string) (*domain.Envelope[domain.TrackingData], error) {
	return fetch[domain.TrackingData](ctx, s.api, id, "shipment-tracking")
}

// StuffingPhotos returns the container stuffing images of an order.
func (s *OrderService) StuffingPhotos(ctx context.Context, id string) (*domain.Envelope[domain.Page[domain.Photo]], error) {
	return fetch[domain.Page[domain.Photo]](ctx, s.api, id, "stuffing-images")
}

// Progress returns the activity log of an order.
func (s *OrderService) Progress(ctx context.Context, id string) (*domain.Envelope[[]domain.ActivityLog], error) {
	return fetch[[]domain.ActivityLog](ctx, s.api, id, "activity-logs")
}

// OrderPath is the path of one per-order resource.
func OrderPath(id, resource string) string {
	return "/customer/dashboard/order/" + url.PathEscape(id) + "/" + resource + "/"
}

func fetch[T any](ctx context.Context, api API, id, resource string) (*domain.Envelope[T], error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingOrderID
	}
	var env domain.Envelope[T]
	if err := api.Get(ctx, OrderPath(id, resource), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
