package evidence

import (
	"math"
	"strconv"
	"strings"

	"startinsight/domain/insight"
)

// Badge class tokens for the market-size heuristic buckets.
const (
	MarketBadgeLarge   = "badge-market-large"
	MarketBadgeMedium  = "badge-market-medium"
	MarketBadgeDefault = "badge-market-default"
)

// RelevanceStars maps a [0,1] relevance score onto a 0-5 star count,
// round half up, clamped.
func RelevanceStars(score float64) int {
	stars := int(math.Round(score * 5))
	if stars < 0 {
		return 0
	}
	if stars > 5 {
		return 5
	}
	return stars
}

// RelevancePercent maps a [0,1] relevance score onto 0-100, round half up.
func RelevancePercent(score float64) int {
	return int(math.Round(score * 100))
}

// MarketSizeBadgeClass buckets a free-text market-size estimate.
// "billion"/"large" take precedence over "million"/"medium"; anything
// else lands in the default bucket. Always returns a non-empty token.
func MarketSizeBadgeClass(estimate string) string {
	lower := strings.ToLower(estimate)
	if strings.Contains(lower, "billion") || strings.Contains(lower, "large") {
		return MarketBadgeLarge
	}
	if strings.Contains(lower, "million") || strings.Contains(lower, "medium") {
		return MarketBadgeMedium
	}
	return MarketBadgeDefault
}

// DimensionBadge is one renderable dimension-score chip.
type DimensionBadge struct {
	Label string
	Value float64
}

// Formatted returns the badge value as "N/10".
func (b DimensionBadge) Formatted() string {
	return strconv.FormatFloat(b.Value, 'f', -1, 64) + "/10"
}

// DimensionBadges turns an insight's score map into badges, one per
// dimension in insertion order. A nil map yields an empty slice, never nil
// dereferences and never an error.
func DimensionBadges(scores insight.ScoreMap) []DimensionBadge {
	badges := make([]DimensionBadge, 0, len(scores))
	for _, dim := range scores {
		badges = append(badges, DimensionBadge{
			Label: humanizeDimension(dim.Key),
			Value: dim.Value,
		})
	}
	return badges
}

// humanizeDimension turns "founder_fit" into "Founder Fit".
func humanizeDimension(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// KeywordBadge is the renderable summary for one trend keyword.
type KeywordBadge struct {
	VolumeLabel      string
	GrowthLabel      string
	IsPositiveGrowth bool
}

// TrendKeywordBadge derives the header badge for a trend keyword.
// Growth arrives as a display string ("+1900%", "-12%", sometimes
// garbage); the sign is recovered by stripping everything that is not a
// digit, sign or decimal point. Strings that still do not parse count as
// non-positive rather than failing the render.
func TrendKeywordBadge(kw insight.TrendKeyword) KeywordBadge {
	return KeywordBadge{
		VolumeLabel:      kw.Volume,
		GrowthLabel:      kw.Growth,
		IsPositiveGrowth: positiveGrowth(kw.Growth),
	}
}

func positiveGrowth(growth string) bool {
	var b strings.Builder
	for _, r := range growth {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(strings.TrimPrefix(b.String(), "+"), 64)
	if err != nil {
		return false
	}
	return value > 0
}
