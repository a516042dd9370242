package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-lookup/config"
	httpapi "restaurant-lookup/notify-svc/internal/api/http"
	"restaurant-lookup/notify-svc/internal/service"
	"restaurant-lookup/notify-svc/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv("LOOKUP_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.PrintBanner("Notification Service")
	logger := config.InitLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := config.InitRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	store := storage.NewStore(rdb)

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()

	consumer := service.NewConsumer(reader, store, logger)
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(store, logger)
	addr := fmt.Sprintf(":%d", cfg.Ports.Notify)
	if err := httpapi.StartServer(ctx, addr, httpapi.NewRouter(handler), logger); err != nil {
		logger.Fatal().Err(err).Msg("Notification Service stopped")
	}
}
