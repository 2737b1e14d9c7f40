package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startinsight/internal/config"
)

const validRecord = `{
	"id": "0198f4a2-0000-7000-8000-000000000001",
	"problemStatement": "No tooling",
	"proposedSolution": "Build tooling",
	"relevanceScore": 0.9,
	"createdAt": "2026-01-25T12:52:29Z"
}`

// relevanceScore out of range: must be rejected, not clamped.
const invalidRecord = `{
	"id": "0198f4a2-0000-7000-8000-000000000002",
	"relevanceScore": 7.5,
	"createdAt": "2026-01-25T12:52:29Z"
}`

func newTestClient(baseURL string) *Client {
	return NewClient(config.CollectorConfig{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		PageSize:  10,
		RateLimit: 100,
		Timeout:   5 * time.Second,
	})
}

func TestFetchPage_ValidatesEachRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [` + validRecord + `,` + invalidRecord + `], "next_cursor": "abc123"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	page, err := client.FetchPage(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, page.Insights, 1)
	assert.Equal(t, "0198f4a2-0000-7000-8000-000000000001", page.Insights[0].ID.String())
	assert.Equal(t, 1, page.Rejected)
	assert.Equal(t, "abc123", page.NextCursor)
}

func TestFetchPage_PassesCursor(t *testing.T) {
	var gotCursor string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCursor = r.URL.Query().Get("cursor")
		w.Write([]byte(`{"data": [], "next_cursor": ""}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	page, err := client.FetchPage(context.Background(), "page-2")
	require.NoError(t, err)
	assert.Equal(t, "page-2", gotCursor)
	assert.Empty(t, page.Insights)
	assert.Empty(t, page.NextCursor)
}

func TestFetchPage_MissingDataArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "maintenance"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	_, err := client.FetchPage(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data array")
}

func TestFetchPage_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	_, err := client.FetchPage(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestFetchByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/insights/0198f4a2-0000-7000-8000-000000000001", r.URL.Path)
		w.Write([]byte(validRecord))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	ins, err := client.FetchByID(context.Background(), "0198f4a2-0000-7000-8000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "No tooling", ins.ProblemStatement)
}

func TestFetchByID_InvalidRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(invalidRecord))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	_, err := client.FetchByID(context.Background(), "0198f4a2-0000-7000-8000-000000000002")
	require.Error(t, err)
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Stop()

	// Burn the only token.
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(2)
	defer rl.Stop()

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	assert.NoError(t, rl.Wait(ctx))
}
