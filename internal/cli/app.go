// Package cli is the terminal front end of the order portal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/order-portal/internal/core/ports"
	"github.com/99minutos/order-portal/internal/core/service"
	"github.com/99minutos/order-portal/internal/infrastructure/config"
	mongodb "github.com/99minutos/order-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/order-portal/internal/infrastructure/db/redis"
	"github.com/99minutos/order-portal/internal/infrastructure/httpclient"
	"github.com/99minutos/order-portal/internal/infrastructure/storage"
)

// App holds the services every command works with.
type App struct {
	Sessions *service.SessionStore
	Auth     *service.AuthService
	Orders   *service.OrderService
	Log      zerolog.Logger

	// DetailWorkers bounds concurrent overview fetches of orders --details.
	DetailWorkers int

	closers []func(context.Context) error
}

// NewApp wires the portal services over an already opened session storage.
func NewApp(baseURL string, store ports.Storage, notifyTimeout time.Duration, log zerolog.Logger) *App {
	opts := []httpclient.Option{httpclient.WithLogger(log)}
	notifier := service.NewLogoutNotifier(httpclient.New(baseURL, nil, opts...))
	sessions := service.NewSessionStore(store, log,
		service.WithLogoutNotifier(notifier),
		service.WithNotifyTimeout(notifyTimeout),
	)
	client := httpclient.New(baseURL, sessions, opts...)

	return &App{
		Sessions:      sessions,
		Auth:          service.NewAuthService(client, sessions, log),
		Orders:        service.NewOrderService(client),
		Log:           log,
		DetailWorkers: 4,
	}
}

// Open opens the storage backend named in cfg, wires the services and
// restores the persisted session.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, closer, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := NewApp(cfg.BaseURL, store, cfg.LogoutNotifyTimeout, log)
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	if err := app.Sessions.Restore(ctx); err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return app, nil
}

// Close waits for pending logout notifications, then releases storage.
func (a *App) Close(ctx context.Context) error {
	a.Sessions.Wait()
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c(ctx))
	}
	return errors.Join(errs...)
}

func openStorage(ctx context.Context, cfg *config.Config) (ports.Storage, func(context.Context) error, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		closer := func(context.Context) error { return client.Close() }
		return redisdb.NewSessionStorage(client, cfg.Redis.Prefix), closer, nil

	case config.StorageMongo:
		conn, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		return mongodb.NewSessionStorage(conn.DB), conn.Close, nil

	default:
		dir := cfg.StateDir
		if dir == "" {
			var err error
			if dir, err = storage.DefaultDir(); err != nil {
				return nil, nil, err
			}
		}
		return storage.NewFile(dir), nil, nil
	}
}
