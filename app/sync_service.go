package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"startinsight/internal"
	"startinsight/ports"
)

// SyncReport summarizes one collector run.
type SyncReport struct {
	Pages    int
	Stored   int
	Rejected int
}

// SyncService pulls insight pages from the upstream API and persists the
// records that survive boundary validation.
type SyncService struct {
	source      ports.InsightSource
	repo        ports.InsightRepository
	maxPages    int
	concurrency int
	log         *internal.Logger
}

// NewSyncService creates a sync service.
func NewSyncService(source ports.InsightSource, repo ports.InsightRepository, maxPages, concurrency int) *SyncService {
	if maxPages <= 0 {
		maxPages = 1
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &SyncService{
		source:      source,
		repo:        repo,
		maxPages:    maxPages,
		concurrency: concurrency,
		log:         internal.DefaultLogger.WithTag("sync"),
	}
}

// Run walks upstream pages until the cursor runs out or maxPages is hit.
// Pages are fetched sequentially (the cursor chains them); stores within a
// page run concurrently.
func (s *SyncService) Run(ctx context.Context) (*SyncReport, error) {
	report := &SyncReport{}
	cursor := ""

	for page := 0; page < s.maxPages; page++ {
		result, err := s.source.FetchPage(ctx, cursor)
		if err != nil {
			return report, fmt.Errorf("fetch page %d: %w", page, err)
		}
		report.Pages++
		report.Rejected += result.Rejected

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(s.concurrency)
		for _, ins := range result.Insights {
			ins := ins
			group.Go(func() error {
				return s.repo.Save(groupCtx, ins)
			})
		}
		if err := group.Wait(); err != nil {
			return report, fmt.Errorf("store page %d: %w", page, err)
		}
		report.Stored += len(result.Insights)

		s.log.Info("page %d: stored %d, rejected %d", page, len(result.Insights), result.Rejected)

		if result.NextCursor == "" {
			break
		}
		cursor = result.NextCursor
	}

	return report, nil
}
