package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/order-portal/internal/api"
	"github.com/99minutos/order-portal/internal/api/backend"
	"github.com/99minutos/order-portal/internal/core/ports"
	"github.com/99minutos/order-portal/internal/infrastructure/config"
	"github.com/99minutos/order-portal/internal/infrastructure/db/memory"
	redisdb "github.com/99minutos/order-portal/internal/infrastructure/db/redis"
	"github.com/99minutos/order-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	seeded, err := memory.SeedAccounts(bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("seed accounts")
	}
	accounts := memory.NewAccountRepository(seeded...)
	orders := memory.NewOrderRepository(memory.SeedOrders(time.Now())...)

	var (
		tokens ports.RefreshTokenRepository = memory.NewRefreshTokenRepository()
		rdb    redis.Cmdable
	)
	if cfg.Sandbox.TokenStore == config.StorageRedis {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		defer client.Close()
		tokens = redisdb.NewRefreshTokenRepository(client, cfg.Redis.Prefix)
		rdb = client
	}

	auth := backend.NewAuthBackend(accounts, tokens, cfg.Sandbox.JWTSecret,
		cfg.Sandbox.AccessTokenTTL, cfg.Sandbox.RefreshTokenTTL, logger.Component("auth"))

	e := api.NewRouter(api.Deps{
		Accounts:  accounts,
		Orders:    orders,
		JWTSecret: cfg.Sandbox.JWTSecret,
		Auth:      auth,
		Redis:     rdb,
		Log:       logger.Component("http"),
		Metrics:   true,
	})

	go func() {
		log.Info().Str("port", cfg.Sandbox.Port).Str("token_store", cfg.Sandbox.TokenStore).Msg("sandbox listening")
		if err := e.Start(":" + cfg.Sandbox.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
