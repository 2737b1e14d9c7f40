package ports

import (
	"context"

	"startinsight/domain/core"
	"startinsight/domain/insight"
)

// InsightFilters narrows List queries.
type InsightFilters struct {
	Source string // match rawSignal.source, empty = any
	Limit  int
	Offset int
}

// InsightRepository provides persistence for validated insights.
// Implementations may assume every record passed Validate; they never
// re-check domain invariants.
type InsightRepository interface {
	// Save upserts an insight by ID.
	Save(ctx context.Context, ins *insight.Insight) error

	// GetByID returns core.ErrInsightNotFound when no record exists.
	GetByID(ctx context.Context, id core.InsightID) (*insight.Insight, error)

	// List returns insights newest-first.
	List(ctx context.Context, filters InsightFilters) ([]*insight.Insight, error)

	// Count returns the total number of stored insights.
	Count(ctx context.Context) (int, error)

	// Delete removes an insight by ID.
	Delete(ctx context.Context, id core.InsightID) error
}
