package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"startinsight/domain/core"
	"startinsight/domain/insight"
	"startinsight/ports"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchPage(ctx context.Context, cursor string) (*ports.InsightPage, error) {
	args := m.Called(ctx, cursor)
	if page := args.Get(0); page != nil {
		return page.(*ports.InsightPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSource) FetchByID(ctx context.Context, id string) (*insight.Insight, error) {
	args := m.Called(ctx, id)
	if ins := args.Get(0); ins != nil {
		return ins.(*insight.Insight), args.Error(1)
	}
	return nil, args.Error(1)
}

type memoryRepo struct {
	mu      sync.Mutex
	saved   map[core.InsightID]*insight.Insight
	saveErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{saved: make(map[core.InsightID]*insight.Insight)}
}

func (r *memoryRepo) Save(_ context.Context, ins *insight.Insight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved[ins.ID] = ins
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id core.InsightID) (*insight.Insight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ins, ok := r.saved[id]; ok {
		return ins, nil
	}
	return nil, core.ErrInsightNotFound
}

func (r *memoryRepo) List(_ context.Context, _ ports.InsightFilters) ([]*insight.Insight, error) {
	return nil, nil
}

func (r *memoryRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved), nil
}

func (r *memoryRepo) Delete(_ context.Context, _ core.InsightID) error { return nil }

func testInsight(id string) *insight.Insight {
	return &insight.Insight{
		ID:        core.InsightID(id),
		CreatedAt: "2026-01-25T12:00:00Z",
	}
}

func TestSyncService_FollowsCursorChain(t *testing.T) {
	source := new(mockSource)
	repo := newMemoryRepo()

	source.On("FetchPage", mock.Anything, "").Return(&ports.InsightPage{
		Insights:   []*insight.Insight{testInsight("0198f4a2-0000-7000-8000-000000000001")},
		NextCursor: "page-2",
		Rejected:   1,
	}, nil).Once()
	source.On("FetchPage", mock.Anything, "page-2").Return(&ports.InsightPage{
		Insights: []*insight.Insight{
			testInsight("0198f4a2-0000-7000-8000-000000000002"),
			testInsight("0198f4a2-0000-7000-8000-000000000003"),
		},
		NextCursor: "",
		Rejected:   0,
	}, nil).Once()

	svc := NewSyncService(source, repo, 10, 4)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 3, report.Stored)
	assert.Equal(t, 1, report.Rejected)

	count, _ := repo.Count(context.Background())
	assert.Equal(t, 3, count)
	source.AssertExpectations(t)
}

func TestSyncService_StopsAtMaxPages(t *testing.T) {
	source := new(mockSource)
	repo := newMemoryRepo()

	// Every page advertises another one; maxPages must cap the walk.
	source.On("FetchPage", mock.Anything, mock.Anything).Return(&ports.InsightPage{
		Insights:   []*insight.Insight{testInsight("0198f4a2-0000-7000-8000-000000000004")},
		NextCursor: "more",
	}, nil)

	svc := NewSyncService(source, repo, 3, 1)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Pages)
	source.AssertNumberOfCalls(t, "FetchPage", 3)
}

func TestSyncService_FetchErrorStopsRun(t *testing.T) {
	source := new(mockSource)
	repo := newMemoryRepo()

	source.On("FetchPage", mock.Anything, "").Return(nil, errors.New("upstream down"))

	svc := NewSyncService(source, repo, 5, 2)
	report, err := svc.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch page 0")
	assert.Equal(t, 0, report.Pages)
}

func TestSyncService_SaveErrorStopsRun(t *testing.T) {
	source := new(mockSource)
	repo := newMemoryRepo()
	repo.saveErr = errors.New("database unavailable")

	source.On("FetchPage", mock.Anything, "").Return(&ports.InsightPage{
		Insights:   []*insight.Insight{testInsight("0198f4a2-0000-7000-8000-000000000005")},
		NextCursor: "page-2",
	}, nil)

	svc := NewSyncService(source, repo, 5, 2)
	report, err := svc.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store page 0")
	assert.Equal(t, 0, report.Stored)
}

func TestSyncService_DefaultsGuardZeroConfig(t *testing.T) {
	source := new(mockSource)
	repo := newMemoryRepo()

	source.On("FetchPage", mock.Anything, "").Return(&ports.InsightPage{
		NextCursor: "ignored",
	}, nil).Once()

	// Non-positive limits collapse to 1 instead of looping forever.
	svc := NewSyncService(source, repo, 0, -3)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Pages)
}
