package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"startinsight/adapters/postgres"
	"startinsight/internal/config"
	"startinsight/internal/errors"
	"startinsight/internal/migration"
	"startinsight/ui"
)

// initDatabase initializes the PostgreSQL connection and runs migrations
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewInsightRepository(db)

	app, err := ui.NewApp(repo)
	if err != nil {
		log.Fatalf("Failed to initialize UI application: %v", err)
	}

	log.Printf("Starting StartInsight UI server on port %s", appConfig.Server.Port)
	log.Fatal(app.Start(":" + appConfig.Server.Port))
}
