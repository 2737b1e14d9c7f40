package insight

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"startinsight/domain/core"
)

// MaxDimensions caps how many score dimensions a single insight may carry.
const MaxDimensions = 8

// timestampPattern matches ISO-8601 datetimes with optional fractional
// seconds and offset: YYYY-MM-DDTHH:MM:SS[.ffffff](Z|+-HH:MM)
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)

// Validate enforces the ingestion contract. A record failing any rule is
// rejected whole; nothing is clamped or patched, because every renderer
// downstream assumes these invariants hold and does not re-check them.
func (i *Insight) Validate() error {
	if !core.ID(i.ID).IsUUID() {
		return core.NewValidationError("id", fmt.Sprintf("%q is not a UUID", i.ID))
	}
	if !timestampPattern.MatchString(i.CreatedAt) {
		return fmt.Errorf("%w: createdAt %q", core.ErrInvalidTimestamp, i.CreatedAt)
	}
	if i.RelevanceScore < 0 || i.RelevanceScore > 1 {
		return core.NewRangeError("relevanceScore", i.RelevanceScore, 0, 1)
	}

	if len(i.EnhancedScores) > MaxDimensions {
		return core.NewValidationError("enhancedScores",
			fmt.Sprintf("%d dimensions exceeds maximum of %d", len(i.EnhancedScores), MaxDimensions))
	}
	for _, dim := range i.EnhancedScores {
		if dim.Value < 1 || dim.Value > 10 {
			return core.NewRangeError("enhancedScores."+dim.Key, dim.Value, 1, 10)
		}
	}

	for idx, c := range i.CompetitorAnalysis {
		if err := validateURL(fmt.Sprintf("competitorAnalysis[%d].url", idx), c.URL); err != nil {
			return err
		}
		if c.MarketPosition != "" && !validPosition(c.MarketPosition) {
			return fmt.Errorf("%w: marketPosition %q", core.ErrInvalidEnum, c.MarketPosition)
		}
	}

	for idx, s := range i.CommunitySignals {
		if !validPlatform(s.Platform) {
			return fmt.Errorf("%w: platform %q", core.ErrInvalidEnum, s.Platform)
		}
		if s.Score < 1 || s.Score > 10 {
			return core.NewRangeError(fmt.Sprintf("communitySignalsChart[%d].score", idx), s.Score, 1, 10)
		}
		if s.MemberCount < 0 {
			return core.NewValidationError(fmt.Sprintf("communitySignalsChart[%d].memberCount", idx), "must be >= 0")
		}
		if s.EngagementRate < 0 || s.EngagementRate > 1 {
			return core.NewRangeError(fmt.Sprintf("communitySignalsChart[%d].engagementRate", idx), s.EngagementRate, 0, 1)
		}
		if s.TopURL != "" {
			if err := validateURL(fmt.Sprintf("communitySignalsChart[%d].topUrl", idx), s.TopURL); err != nil {
				return err
			}
		}
	}

	if rs := i.RawSignal; rs != nil {
		if _, err := core.ParseSignalID(rs.ID.String()); err != nil {
			return core.NewValidationError("rawSignal.id", err.Error())
		}
		if rs.CreatedAt != "" && !timestampPattern.MatchString(rs.CreatedAt) {
			return fmt.Errorf("%w: rawSignal.createdAt %q", core.ErrInvalidTimestamp, rs.CreatedAt)
		}
		if rs.URL != "" {
			if err := validateURL("rawSignal.url", rs.URL); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s %q", core.ErrInvalidURL, field, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s has scheme %q", core.ErrInvalidURL, field, u.Scheme)
	}
	return nil
}

func validPlatform(p Platform) bool {
	for _, known := range KnownPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

func validPosition(p MarketPosition) bool {
	switch p {
	case PositionSmall, PositionMedium, PositionLarge:
		return true
	}
	return false
}

// ValidTimestamp reports whether s matches the ingestion timestamp format.
// Exposed for callers that check timestamps outside a full record.
func ValidTimestamp(s string) bool {
	return timestampPattern.MatchString(strings.TrimSpace(s))
}
