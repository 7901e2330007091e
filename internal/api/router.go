package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/order-portal/internal/api/backend"
	"github.com/99minutos/order-portal/internal/api/handler"
	"github.com/99minutos/order-portal/internal/api/middleware"
	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
)

// Deps are what the sandbox router is built from.
type Deps struct {
	Accounts  ports.AccountRepository
	Orders    ports.OrderRepository
	JWTSecret string
	Auth      *backend.AuthBackend
	// Redis is pinged by the readiness probe when non-nil.
	Redis redis.Cmdable
	Log   zerolog.Logger
	// Metrics mounts echoprometheus and /metrics. Tests leave it off so the
	// default registry is not registered twice.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if d.Metrics {
		e.Use(echoprometheus.NewMiddleware("order_portal_sandbox"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	orderHandler := handler.NewOrderHandler(backend.NewOrderBackend(d.Orders, domain.DefaultPageSize))
	authMiddleware := middleware.Auth(d.JWTSecret)
	can := func(module string) echo.MiddlewareFunc {
		return middleware.Permission(d.Accounts, module, domain.ActionRead)
	}

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login/", authHandler.Login)
	auth.POST("/refresh/", authHandler.Refresh)
	auth.POST("/logout/", authHandler.Logout)

	// --- Customer dashboard ---
	dash := e.Group("/customer/dashboard", authMiddleware)
	dash.GET("/orders/", orderHandler.List, can(domain.ModuleOrders))
	order := dash.Group("/order/:id")
	order.GET("/overview/", orderHandler.Overview, can(domain.ModuleOrders))
	order.GET("/pocs/", orderHandler.Contacts, can(domain.ModuleContacts))
	order.GET("/documents/", orderHandler.Documents, can(domain.ModuleDocuments))
	order.GET("/shipment-tracking/", orderHandler.Tracking, can(domain.ModuleTracking))
	order.GET("/stuffing-images/", orderHandler.StuffingPhotos, can(domain.ModulePhotos))
	order.GET("/activity-logs/", orderHandler.Progress, can(domain.ModuleProgress))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: are dependencies up?

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
