package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	upstreamapi "startinsight/adapters/api"
	"startinsight/adapters/postgres"
	"startinsight/app"
	"startinsight/internal/config"
	"startinsight/internal/errors"
	"startinsight/internal/migration"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig.Collector.BaseURL == "" {
		log.Fatal(errors.ConfigInvalid("UPSTREAM_API_URL is required for the collector"))
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := upstreamapi.NewClient(appConfig.Collector)
	defer client.Close()

	sync := app.NewSyncService(
		client,
		postgres.NewInsightRepository(db),
		appConfig.Collector.MaxPages,
		appConfig.Collector.Concurrency,
	)

	report, err := sync.Run(ctx)
	if err != nil {
		log.Fatalf("Collector run failed after %d pages: %v", report.Pages, err)
	}
	log.Printf("Collector finished: %d pages, %d stored, %d rejected",
		report.Pages, report.Stored, report.Rejected)
}
