package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/99minutos/order-portal/internal/cli"
	"github.com/99minutos/order-portal/internal/infrastructure/config"
	"github.com/99minutos/order-portal/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	app, err := cli.Open(ctx, cfg, logger.Component("portal"))
	if err != nil {
		log.Error().Err(err).Str("storage", cfg.Storage).Msg("failed to start portal")
		return 1
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("close storage")
		}
	}()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
