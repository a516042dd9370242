package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-lookup/config"
	httpapi "restaurant-lookup/maps-svc/internal/api/http"
	"restaurant-lookup/maps-svc/internal/geo"
	"restaurant-lookup/maps-svc/internal/index"
	"restaurant-lookup/maps-svc/internal/provider"
	"restaurant-lookup/maps-svc/internal/service"
)

func main() {
	cfg, err := config.Load(os.Getenv("LOOKUP_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.PrintBanner("Maps Service")
	logger := config.InitLogger(cfg)

	if cfg.Google.APIKey == "" {
		logger.Fatal().Msg("GOOGLE_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := config.InitRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	settings := service.LookupSettings{
		Restaurants:  cfg.Index.Restaurants,
		Details:      cfg.Index.Details,
		ProbeTimeout: config.Duration(cfg.Index.ProbeTimeout, 2*time.Second),
		WriteTimeout: config.Duration(cfg.Index.WriteTimeout, 5*time.Second),
	}
	indices := service.ActivityIndices{
		Interactions:  cfg.Index.Interactions,
		UserReviews:   cfg.Index.UserReviews,
		UserFavorites: cfg.Index.UserFavorites,
	}
	docs := index.NewRedisIndex(rdb, cfg.Index.Prefix, service.TermFields(settings, indices)...)

	google := provider.NewClient(cfg.Google.APIKey, logger,
		provider.WithBaseURL(cfg.Google.BaseURL),
		provider.WithTimeout(config.Duration(cfg.Google.RequestTimeout, provider.DefaultTimeout)),
		provider.WithRateLimit(cfg.Google.RateLimit),
	)

	activity := service.NewActivityService(docs, indices, logger)

	lookup := service.NewLookupService(
		geo.NewResolver(google, logger),
		google,
		docs,
		service.NewIndexWriter(docs, cfg.Index.Restaurants, cfg.Index.Details, logger),
		activity,
		service.DefaultQRGenerator{},
		settings,
		logger,
	)

	handler := httpapi.NewHandler(lookup, activity, logger)
	addr := fmt.Sprintf(":%d", cfg.Ports.Maps)
	if err := httpapi.StartServer(ctx, addr, httpapi.NewRouter(handler), logger); err != nil {
		logger.Fatal().Err(err).Msg("Maps Service stopped")
	}
}
