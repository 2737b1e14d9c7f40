package evidence

import (
	"fmt"

	"startinsight/domain/insight"
	"startinsight/domain/trend"
)

// CommunitySignalView is one platform card, ready to render.
type CommunitySignalView struct {
	Platform      insight.Platform
	BadgeClass    string
	Score         float64
	MemberLabel   string
	EngagementPct int
	TopURL        string
}

// CompetitorView is one competitor row, ready to render.
type CompetitorView struct {
	Name          string
	URL           string
	Description   string
	PositionLabel string
}

// KeywordView pairs a keyword badge with the direction derived from its
// series, when series data exists.
type KeywordView struct {
	Keyword   string
	Badge     KeywordBadge
	Direction trend.Display
}

// View is the fully normalized render model for one insight. Building it
// is pure: the same insight always yields the same view, and the input is
// never mutated.
type View struct {
	ID               string
	ProblemStatement string
	ProposedSolution string
	MarketSize       string
	MarketBadgeClass string
	RelevancePct     int
	RelevanceStars   int
	Dimensions       []DimensionBadge
	Signals          []CommunitySignalView
	Competitors      []CompetitorView
	Keywords         []KeywordView
	CreatedAt        string
}

// platformBadges styles each community platform; unknown platforms cannot
// reach here (the ingestion boundary enforces the closed set) but the
// lookup still falls back to the Other style.
var platformBadges = map[insight.Platform]string{
	insight.PlatformReddit:   "badge-platform-reddit",
	insight.PlatformFacebook: "badge-platform-facebook",
	insight.PlatformYouTube:  "badge-platform-youtube",
	insight.PlatformOther:    "badge-platform-other",
}

// PlatformBadgeClass returns the style token for a platform.
func PlatformBadgeClass(p insight.Platform) string {
	if class, ok := platformBadges[p]; ok {
		return class
	}
	return platformBadges[insight.PlatformOther]
}

// FormatMemberCount renders a member count compactly: 950 -> "950",
// 12400 -> "12.4K", 3100000 -> "3.1M".
func FormatMemberCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000))
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1fK", float64(n)/1_000))
	}
	return fmt.Sprintf("%d", n)
}

func trimZero(s string) string {
	if len(s) > 3 && s[len(s)-3:len(s)-1] == ".0" {
		return s[:len(s)-3] + s[len(s)-1:]
	}
	return s
}

// Normalize builds the render model for a validated insight. Missing
// optional sections become empty slices; nothing here can fail.
func Normalize(ins *insight.Insight) View {
	view := View{
		ID:               ins.ID.String(),
		ProblemStatement: ins.ProblemStatement,
		ProposedSolution: ins.ProposedSolution,
		MarketSize:       ins.MarketSizeEstimate,
		MarketBadgeClass: MarketSizeBadgeClass(ins.MarketSizeEstimate),
		RelevancePct:     RelevancePercent(ins.RelevanceScore),
		RelevanceStars:   RelevanceStars(ins.RelevanceScore),
		Dimensions:       DimensionBadges(ins.EnhancedScores),
		Signals:          make([]CommunitySignalView, 0, len(ins.CommunitySignals)),
		Competitors:      make([]CompetitorView, 0, len(ins.CompetitorAnalysis)),
		Keywords:         make([]KeywordView, 0, len(ins.TrendKeywords)),
		CreatedAt:        ins.CreatedAt,
	}

	for _, s := range ins.CommunitySignals {
		view.Signals = append(view.Signals, CommunitySignalView{
			Platform:      s.Platform,
			BadgeClass:    PlatformBadgeClass(s.Platform),
			Score:         s.Score,
			MemberLabel:   FormatMemberCount(s.MemberCount),
			EngagementPct: RelevancePercent(s.EngagementRate),
			TopURL:        s.TopURL,
		})
	}

	for _, c := range ins.CompetitorAnalysis {
		view.Competitors = append(view.Competitors, CompetitorView{
			Name:          c.Name,
			URL:           c.URL,
			Description:   c.Description,
			PositionLabel: string(c.MarketPosition),
		})
	}

	for _, kw := range ins.TrendKeywords {
		view.Keywords = append(view.Keywords, KeywordView{
			Keyword:   kw.Keyword,
			Badge:     TrendKeywordBadge(kw),
			Direction: trend.Classify(directionFor(ins, kw.Keyword)),
		})
	}

	return view
}

// directionFor derives the trend direction for a keyword from its series,
// or unknown when no series data was collected for it.
func directionFor(ins *insight.Insight, keyword string) trend.Direction {
	for _, series := range ins.TrendSeries {
		if series.Keyword != keyword {
			continue
		}
		values := make([]float64, len(series.Points))
		for i, p := range series.Points {
			values[i] = p.Value
		}
		return trend.DeriveDirection(values)
	}
	return trend.DirectionUnknown
}
