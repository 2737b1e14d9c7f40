package insight

import (
	"startinsight/domain/core"
)

// MarketPosition classifies a competitor's footprint
type MarketPosition string

const (
	PositionSmall  MarketPosition = "Small"
	PositionMedium MarketPosition = "Medium"
	PositionLarge  MarketPosition = "Large"
)

// Platform identifies the origin of a community signal
type Platform string

const (
	PlatformReddit   Platform = "Reddit"
	PlatformFacebook Platform = "Facebook"
	PlatformYouTube  Platform = "YouTube"
	PlatformOther    Platform = "Other"
)

// KnownPlatforms is the closed set accepted at the ingestion boundary.
var KnownPlatforms = []Platform{PlatformReddit, PlatformFacebook, PlatformYouTube, PlatformOther}

// Competitor is one entry of an insight's competitive landscape
type Competitor struct {
	Name           string         `json:"name"`
	URL            string         `json:"url"`
	Description    string         `json:"description"`
	MarketPosition MarketPosition `json:"marketPosition,omitempty"`
}

// CommunitySignal summarizes engagement on one external platform
type CommunitySignal struct {
	Platform       Platform `json:"platform"`
	Score          float64  `json:"score"`
	MemberCount    int64    `json:"memberCount"`
	EngagementRate float64  `json:"engagementRate"`
	TopURL         string   `json:"topUrl,omitempty"`
}

// TrendKeyword carries the pre-formatted summary metrics for one search keyword.
// Volume and Growth arrive as display strings from the upstream analyzer
// (e.g. "1.0K", "+1900%") and are never re-derived here.
type TrendKeyword struct {
	Keyword string `json:"keyword"`
	Volume  string `json:"volume"`
	Growth  string `json:"growth"`
}

// TrendDataPoint is one sample of search interest for a keyword.
// Date is a calendar date string "YYYY-MM-DD"; Value is nominally 0-100
// but the range is not enforced downstream.
type TrendDataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TrendKeywordSeries binds one keyword's summary metrics to its time series.
type TrendKeywordSeries struct {
	TrendKeyword
	Points []TrendDataPoint `json:"points"`
}

// RawSignal is the provenance back-reference to the scraped source record
type RawSignal struct {
	ID            core.SignalID `json:"id"`
	Source        string        `json:"source"`
	URL           string        `json:"url"`
	CreatedAt     string        `json:"createdAt"`
	ExtraMetadata Metadata      `json:"extraMetadata,omitempty"`
}

// Insight is a scored, analyzed startup-opportunity record.
// All fields past the free-text trio are optional; renderers must tolerate
// any subset. Records are read-only once past Validate.
type Insight struct {
	ID                 core.InsightID       `json:"id"`
	ProblemStatement   string               `json:"problemStatement"`
	ProposedSolution   string               `json:"proposedSolution"`
	MarketSizeEstimate string               `json:"marketSizeEstimate"`
	RelevanceScore     float64              `json:"relevanceScore"`
	CompetitorAnalysis []Competitor         `json:"competitorAnalysis,omitempty"`
	EnhancedScores     ScoreMap             `json:"enhancedScores,omitempty"`
	CommunitySignals   []CommunitySignal    `json:"communitySignalsChart,omitempty"`
	TrendKeywords      []TrendKeyword       `json:"trendKeywords,omitempty"`
	TrendSeries        []TrendKeywordSeries `json:"trendSeries,omitempty"`
	RawSignal          *RawSignal           `json:"rawSignal,omitempty"`
	CreatedAt          string               `json:"createdAt"`
}
