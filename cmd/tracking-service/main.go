package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/tourze/ganet-tracking-service/internal/client"
	"github.com/tourze/ganet-tracking-service/internal/config"
	delivery "github.com/tourze/ganet-tracking-service/internal/delivery/http"
	"github.com/tourze/ganet-tracking-service/internal/delivery/http/handlers"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/kafka"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/metrics"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/migrate"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres"
	"github.com/tourze/ganet-tracking-service/internal/infrastructure/postgres/repository"
	"github.com/tourze/ganet-tracking-service/internal/logging"
	"github.com/tourze/ganet-tracking-service/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	logging.New(cfg.LogConfig)

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.TrackingDB.MigrationsPath != "" {
		if err := migrate.Run(db, cfg.TrackingDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init kafka event publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	events, err := kafka.NewTrackingEventPublisher(brokers)
	if err != nil {
		log.Fatalf("failed to init kafka publisher: %v", err)
	}
	defer events.Close()

	trackingMetrics := metrics.NewTrackingMetrics()

	// Init repositories
	tagRepo := repository.NewDefaultRedirectTagRepository(db)
	txRepo := repository.NewDefaultTransactionRepository(db)
	publisherRepo := repository.NewDefaultPublisherRepository(db)
	campaignRepo := repository.NewDefaultCampaignRepository(db)

	// Init usecases
	tagUsecase := usecase.NewDefaultRedirectTagUsecase(tagRepo, events, trackingMetrics)
	txUsecase := usecase.NewDefaultTransactionTagUsecase(txRepo, tagRepo, publisherRepo, events, trackingMetrics)

	ganetClient := client.NewGANetClient(cfg.GaNetAPI.BaseURL, cfg.GaNetAPI.APIKey)
	syncUsecase := usecase.NewDefaultSyncUsecase(ganetClient, txRepo, campaignRepo, txUsecase, trackingMetrics)

	// Init HTTP delivery
	trackingHandler := handlers.NewTrackingHandler(tagUsecase, cfg.Tracking.TagTTL)
	statsHandler := handlers.NewStatsHandler(tagUsecase, txUsecase)
	router := delivery.NewRouter(trackingHandler, statsHandler)

	// Periodic expiry cleanup sweep
	go func() {
		ticker := time.NewTicker(cfg.Tracking.CleanupInterval)
		defer ticker.Stop()

		for range ticker.C {
			removed, err := tagUsecase.CleanupExpiredTags(nil)
			if err != nil {
				slog.Error("expiry cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("expired redirect tags removed", "count", removed)
			}
		}
	}()

	// Periodic partner sync: transactions first, campaigns after
	go func() {
		ticker := time.NewTicker(cfg.Tracking.SyncInterval)
		defer ticker.Stop()

		for range ticker.C {
			since := time.Now().Add(-2 * cfg.Tracking.SyncInterval)
			result, err := syncUsecase.PullTransactions(context.Background(), since)
			if err != nil {
				slog.Error("transaction sync failed", "error", err)
			} else {
				slog.Info("transactions synced",
					"fetched", result.Fetched, "upserted", result.Upserted, "linked", result.Linked)
			}

			if _, err := syncUsecase.PullCampaigns(context.Background()); err != nil {
				slog.Error("campaign sync failed", "error", err)
			}
		}
	}()

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("tracking service started", "addr", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
