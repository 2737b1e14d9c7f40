package ports

import (
	"context"

	"startinsight/domain/insight"
)

// InsightPage is one page of upstream results.
type InsightPage struct {
	Insights   []*insight.Insight
	NextCursor string
	// Rejected counts records on this page that failed boundary
	// validation and were dropped.
	Rejected int
}

// InsightSource fetches insight records from the upstream analysis API.
// Implementations validate each record at the boundary and drop (with a
// log line) anything violating the ingestion contract.
type InsightSource interface {
	// FetchPage retrieves one page; an empty cursor starts from the top.
	FetchPage(ctx context.Context, cursor string) (*InsightPage, error)

	// FetchByID retrieves one insight record.
	FetchByID(ctx context.Context, id string) (*insight.Insight, error)
}
