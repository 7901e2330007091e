package service

import (
	"context"

	"github.com/99minutos/order-portal/internal/infrastructure/httpclient"
)

// API is the part of httpclient.Client the services call.
type API interface {
	Get(ctx context.Context, path string, params httpclient.Params, out any, opts ...httpclient.CallOption) error
	Post(ctx context.Context, path string, body any, params httpclient.Params, out any, opts ...httpclient.CallOption) error
}

const (
	pathLogin   = "/auth/login/"
	pathLogout  = "/auth/logout/"
	pathRefresh = "/auth/refresh/"
	pathOrders  = "/customer/dashboard/orders/"
)

type refreshTokenBody struct {
	RefreshToken string `json:"refresh_token"`
}
