package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-lookup/config"
	httpapi "restaurant-lookup/user-svc/internal/api/http"
	"restaurant-lookup/user-svc/internal/service"
	"restaurant-lookup/user-svc/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv("LOOKUP_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.PrintBanner("User Service")
	logger := config.InitLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repository service.UserRepository
	switch cfg.Users.Store {
	case "memory":
		logger.Warn().Msg("Using in-memory user store, accounts are lost on restart")
		repository = storage.NewMemoryRepository()
	default:
		db, err := config.InitPostgres(cfg.Postgres)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Postgres")
		}
		defer db.Close()

		postgres := storage.NewPostgresRepository(db)
		if err := postgres.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to prepare schema")
		}
		repository = postgres
	}

	rdb, err := config.InitRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	sessionTTL := config.Duration(cfg.Users.SessionTTL, service.DefaultSessionTTL)

	writer := config.NewKafkaWriter(cfg.Kafka, func(err error) {
		logger.Warn().Err(err).Str("topic", cfg.Kafka.SignupTopic).Msg("Failed to deliver signup event")
	})
	defer writer.Close()

	users := service.NewUserService(
		repository,
		storage.NewRedisSessionStore(rdb, sessionTTL),
		storage.NewKafkaPublisher(writer),
		sessionTTL,
		logger,
	)

	handler := httpapi.NewHandler(users, logger)
	addr := fmt.Sprintf(":%d", cfg.Ports.Users)
	if err := httpapi.StartServer(ctx, addr, httpapi.NewRouter(handler), logger); err != nil {
		logger.Fatal().Err(err).Msg("User Service stopped")
	}
}
