package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startinsight/domain/core"
	"startinsight/domain/insight"
	"startinsight/ports"
)

type stubRepo struct {
	insights map[core.InsightID]*insight.Insight
	order    []core.InsightID
}

func newStubRepo(insights ...*insight.Insight) *stubRepo {
	r := &stubRepo{insights: make(map[core.InsightID]*insight.Insight)}
	for _, ins := range insights {
		r.insights[ins.ID] = ins
		r.order = append(r.order, ins.ID)
	}
	return r
}

func (r *stubRepo) Save(_ context.Context, ins *insight.Insight) error {
	if _, ok := r.insights[ins.ID]; !ok {
		r.order = append(r.order, ins.ID)
	}
	r.insights[ins.ID] = ins
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id core.InsightID) (*insight.Insight, error) {
	if ins, ok := r.insights[id]; ok {
		return ins, nil
	}
	return nil, core.NewNotFoundError("insight", id.String())
}

func (r *stubRepo) List(_ context.Context, filters ports.InsightFilters) ([]*insight.Insight, error) {
	var out []*insight.Insight
	for _, id := range r.order {
		out = append(out, r.insights[id])
	}
	return out, nil
}

func (r *stubRepo) Count(_ context.Context) (int, error) { return len(r.insights), nil }

func (r *stubRepo) Delete(_ context.Context, id core.InsightID) error {
	delete(r.insights, id)
	return nil
}

const detailID = "0198f4a2-0000-7000-8000-000000000001"

func detailInsight() *insight.Insight {
	return &insight.Insight{
		ID:                 detailID,
		ProblemStatement:   "Indie founders drown in **scattered** market research",
		ProposedSolution:   "One pipeline that scores raw signals",
		MarketSizeEstimate: "$4.2 billion TAM",
		RelevanceScore:     0.95,
		EnhancedScores: insight.ScoreMap{
			{Key: "opportunity", Value: 9},
			{Key: "problem", Value: 8},
		},
		CommunitySignals: []insight.CommunitySignal{
			{Platform: insight.PlatformReddit, Score: 8, MemberCount: 125000, EngagementRate: 0.34},
		},
		TrendKeywords: []insight.TrendKeyword{
			{Keyword: "ai agents", Volume: "12K", Growth: "+1900%"},
			{Keyword: "prompt tooling", Volume: "3.1K", Growth: "-12%"},
		},
		TrendSeries: []insight.TrendKeywordSeries{
			{
				TrendKeyword: insight.TrendKeyword{Keyword: "ai agents", Volume: "12K", Growth: "+1900%"},
				Points: []insight.TrendDataPoint{
					{Date: "2025-10-01", Value: 20},
					{Date: "2025-11-01", Value: 45},
					{Date: "2025-12-01", Value: 80},
				},
			},
			{
				TrendKeyword: insight.TrendKeyword{Keyword: "prompt tooling", Volume: "3.1K", Growth: "-12%"},
				Points: []insight.TrendDataPoint{
					{Date: "2025-10-01", Value: 60},
					{Date: "2025-11-01", Value: 55},
				},
			},
		},
		RawSignal: &insight.RawSignal{
			ID:        "0198f4a2-0000-7000-8000-00000000000a",
			Source:    "reddit",
			URL:       "https://reddit.com/r/startups/abc",
			CreatedAt: "2026-01-25T10:00:00Z",
		},
		CreatedAt: "2026-01-25T12:52:29Z",
	}
}

func newTestApp(t *testing.T, repo ports.InsightRepository) *App {
	t.Helper()
	app, err := NewApp(repo)
	require.NoError(t, err)
	return app
}

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	app := newTestApp(t, newStubRepo(detailInsight()))

	rec := get(t, app, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Indie founders drown")
	assert.Contains(t, body, "/insights/"+detailID)
	assert.Contains(t, body, "badge-market-large")
}

func TestHandleIndex_Empty(t *testing.T) {
	app := newTestApp(t, newStubRepo())
	rec := get(t, app, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleInsightDetail(t *testing.T) {
	app := newTestApp(t, newStubRepo(detailInsight()))

	rec := get(t, app, "/insights/"+detailID)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	// Markdown emphasis survives rendering.
	assert.Contains(t, body, "<strong>scattered</strong>")
	// First keyword is selected by default.
	assert.Contains(t, body, "ai agents")
	assert.Contains(t, body, "<svg")
	// Two series means the switcher renders.
	assert.Contains(t, body, "prompt tooling")
	assert.Contains(t, body, "hx-get")
	// Provenance section.
	assert.Contains(t, body, "reddit")
}

func TestHandleInsightDetail_KeywordSelection(t *testing.T) {
	app := newTestApp(t, newStubRepo(detailInsight()))

	rec := get(t, app, "/insights/"+detailID+"?kw=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "-12%")
}

func TestHandleInsightDetail_NoTrendData(t *testing.T) {
	ins := detailInsight()
	ins.TrendSeries = nil
	ins.TrendKeywords = nil
	app := newTestApp(t, newStubRepo(ins))

	rec := get(t, app, "/insights/"+detailID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No trend data available")
}

func TestHandleInsightDetail_Missing(t *testing.T) {
	app := newTestApp(t, newStubRepo())
	rec := get(t, app, "/insights/0198f4a2-0000-7000-8000-0000000000ff")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleInsightDetail_BadID(t *testing.T) {
	app := newTestApp(t, newStubRepo())
	rec := get(t, app, "/insights/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTrendFragment(t *testing.T) {
	app := newTestApp(t, newStubRepo(detailInsight()))

	rec := get(t, app, "/fragments/insights/"+detailID+"/trend?kw=1")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "prompt tooling")
	assert.Contains(t, body, "<svg")
	// The fragment is a partial, not a full document.
	assert.NotContains(t, body, "<html")
}

func TestHandleTrendFragment_ClampsSelection(t *testing.T) {
	app := newTestApp(t, newStubRepo(detailInsight()))

	rec := get(t, app, "/fragments/insights/"+detailID+"/trend?kw=99")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "+1900%")
}

func TestHandleExport(t *testing.T) {
	app := newTestApp(t, newStubRepo(detailInsight()))

	rec := get(t, app, "/export/insights.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, rec.Body.Len())
}
