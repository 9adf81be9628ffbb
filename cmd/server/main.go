package main

import (
	"fmt"
	"log"
	"net/http"

	"posflow/internal/api"
	"posflow/internal/api/handlers"
	"posflow/internal/engine/webhooks"
	"posflow/internal/pkg/logger"
	"posflow/internal/pkg/metrics"
	"posflow/internal/platform/config"
	"posflow/internal/platform/database"
	"posflow/internal/platform/queue"
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

	policies := webhooks.Policies(cfg.Providers)

	webhookHandler := handlers.NewWebhookHandler(rootLog.With().Str("component", "webhook_handler").Logger(), policies, q)
	healthHandler := handlers.NewHealthHandler(db, q)
	metricsHandler := handlers.NewMetricsHandler()

	router := api.NewRouter(&api.Dependencies{
		WebhookHandler: webhookHandler,
		HealthHandler:  healthHandler,
		MetricsHandler: metricsHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	rootLog.Info().Str("addr", addr).Str("environment", cfg.Providers.Environment).Msg("webhook server starting")
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
