package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"startinsight/domain/insight"
	"startinsight/internal"
	"startinsight/internal/config"
	apperrors "startinsight/internal/errors"
	"startinsight/ports"
)

// Client fetches insight records from the upstream StartInsight analysis
// API. Every record crosses the ingestion boundary here: anything failing
// domain validation is dropped and counted, never patched up.
type Client struct {
	cfg         config.CollectorConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
	log         *internal.Logger
}

// NewClient creates an upstream API client.
func NewClient(cfg config.CollectorConfig) *Client {
	return &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: NewRateLimiter(cfg.RateLimit),
		log:         internal.DefaultLogger.WithTag("collector"),
	}
}

// Close releases the client's rate limiter.
func (c *Client) Close() {
	c.rateLimiter.Stop()
}

// FetchPage retrieves one page of insights; an empty cursor starts from
// the top.
func (c *Client) FetchPage(ctx context.Context, cursor string) (*ports.InsightPage, error) {
	body, err := c.get(ctx, c.pageURL(cursor))
	if err != nil {
		return nil, err
	}

	dataResult := gjson.GetBytes(body, "data")
	if !dataResult.Exists() || !dataResult.IsArray() {
		return nil, apperrors.ExternalServiceError("upstream",
			fmt.Errorf("response has no data array"))
	}

	page := &ports.InsightPage{
		NextCursor: gjson.GetBytes(body, "next_cursor").String(),
	}
	for _, item := range dataResult.Array() {
		ins, err := decodeInsight([]byte(item.Raw))
		if err != nil {
			page.Rejected++
			c.log.Warn("rejected upstream record %s: %v",
				item.Get("id").String(), err)
			continue
		}
		page.Insights = append(page.Insights, ins)
	}
	return page, nil
}

// FetchByID retrieves one insight record.
func (c *Client) FetchByID(ctx context.Context, id string) (*insight.Insight, error) {
	body, err := c.get(ctx, c.cfg.BaseURL+"/api/insights/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeInsight(body)
}

func (c *Client) pageURL(cursor string) string {
	params := url.Values{}
	params.Set("page_size", strconv.Itoa(c.cfg.PageSize))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	return c.cfg.BaseURL + "/api/insights?" + params.Encode()
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ExternalServiceError("upstream", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ExternalServiceError("upstream",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}
	return body, nil
}

// decodeInsight parses and validates one upstream record.
func decodeInsight(raw []byte) (*insight.Insight, error) {
	var ins insight.Insight
	if err := json.Unmarshal(raw, &ins); err != nil {
		return nil, fmt.Errorf("malformed insight payload: %w", err)
	}
	if err := ins.Validate(); err != nil {
		return nil, err
	}
	return &ins, nil
}
