package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"posflow/internal/engine/orders"
	"posflow/internal/engine/tickets"
	"posflow/internal/engine/webhooks"
	"posflow/internal/pkg/logger"
	"posflow/internal/pkg/metrics"
	"posflow/internal/platform/config"
	"posflow/internal/platform/database"
	"posflow/internal/platform/queue"
	"posflow/internal/platform/repositories"
	"posflow/internal/workers"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	rootLog := logger.New(cfg.Logging)
	metrics.Register()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	q, err := queue.New(cfg.Queue)
	if err != nil {
		log.Fatalf("Failed to connect to event queue: %v", err)
	}
	defer q.Close()

	store := repositories.NewStore(db)

	// Provider adapters are registered by deployments that link the
	// provider clients in; the registry itself carries none.
	registry := orders.NewRegistry()

	processor := webhooks.NewProcessor(
		rootLog.With().Str("component", "processor").Logger(),
		store,
		registry,
		orders.NewReconciler(store),
		tickets.NewMachine(store),
		cfg.Providers.Environment,
	)

	pool := workers.NewPool(rootLog.With().Str("component", "worker_pool").Logger(), q, processor, cfg.Workers)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		rootLog.Info().Msg("shutdown signal received, draining workers")
		cancel()
	}()

	rootLog.Info().Int("workers", cfg.Workers.Count).Str("environment", cfg.Providers.Environment).Msg("worker pool starting")
	pool.Run(ctx)
}
