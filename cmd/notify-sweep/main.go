package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musicbrainz/database"
	"musicbrainz/internal/config"
	"musicbrainz/internal/http-api/repository"
	"musicbrainz/internal/sweep"
)

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logger := cfg.Logger()

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	sweeper := sweep.NewSweeper(
		repository.NewCollectionRepository(db),
		repository.NewReleaseRepository(db),
		repository.NewNotificationRepository(db),
		sweep.Config{
			WorkerCount: cfg.SweepWorkers,
			NotifierURL: cfg.NotifierURL,
			Logger:      logger,
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	if *once {
		if _, err := sweeper.Run(ctx); err != nil {
			log.Fatalf("sweep failed: %v", err)
		}
		return
	}

	logger.Info("notification sweep service running", "interval", cfg.SweepInterval)

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	// First sweep fires immediately, then on every tick.
	for {
		if _, err := sweeper.Run(ctx); err != nil {
			logger.Error("sweep failed", "error", err)
		}

		select {
		case <-ctx.Done():
			logger.Info("sweep service stopped")
			return
		case <-ticker.C:
		}
	}
}
