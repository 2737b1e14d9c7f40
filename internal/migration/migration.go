package migration

import (
	"context"

	"startinsight/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createInsightsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create insights table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createInsightsTable(ctx context.Context, db *sqlx.DB) error {
	// created_at keeps the upstream RFC3339 string verbatim; the pattern is
	// enforced at the ingestion boundary, and renderers format from the
	// string components rather than a parsed time.
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS insights (
			id UUID PRIMARY KEY,
			problem_statement TEXT NOT NULL,
			proposed_solution TEXT NOT NULL DEFAULT '',
			market_size_estimate TEXT NOT NULL DEFAULT '',
			relevance_score DOUBLE PRECISION NOT NULL,
			competitor_analysis JSONB,
			enhanced_scores JSONB,
			community_signals JSONB,
			trend_keywords JSONB,
			trend_series JSONB,
			raw_signal JSONB,
			created_at TEXT NOT NULL,
			stored_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_insights_created_at ON insights (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_insights_source ON insights ((raw_signal->>'source'))`,
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
