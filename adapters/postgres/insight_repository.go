package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"startinsight/domain/core"
	"startinsight/domain/insight"
	"startinsight/ports"

	"github.com/jmoiron/sqlx"
)

// InsightRepositoryImpl implements InsightRepository for PostgreSQL
type InsightRepositoryImpl struct {
	db *sqlx.DB
}

// NewInsightRepository creates a new PostgreSQL insight repository
func NewInsightRepository(db *sqlx.DB) ports.InsightRepository {
	return &InsightRepositoryImpl{db: db}
}

// insightRow mirrors the insights table; the optional JSONB sections stay
// as raw bytes until decode.
type insightRow struct {
	ID                 string         `db:"id"`
	ProblemStatement   string         `db:"problem_statement"`
	ProposedSolution   string         `db:"proposed_solution"`
	MarketSizeEstimate string         `db:"market_size_estimate"`
	RelevanceScore     float64        `db:"relevance_score"`
	CompetitorAnalysis []byte         `db:"competitor_analysis"`
	EnhancedScores     []byte         `db:"enhanced_scores"`
	CommunitySignals   []byte         `db:"community_signals"`
	TrendKeywords      []byte         `db:"trend_keywords"`
	TrendSeries        []byte         `db:"trend_series"`
	RawSignal          []byte         `db:"raw_signal"`
	CreatedAt          string         `db:"created_at"`
	StoredAt           sql.NullString `db:"stored_at"`
}

// Save upserts an insight by ID.
func (r *InsightRepositoryImpl) Save(ctx context.Context, ins *insight.Insight) error {
	competitorsJSON, err := marshalSection(ins.CompetitorAnalysis)
	if err != nil {
		return fmt.Errorf("marshal competitor_analysis: %w", err)
	}
	scoresJSON, err := marshalSection(ins.EnhancedScores)
	if err != nil {
		return fmt.Errorf("marshal enhanced_scores: %w", err)
	}
	signalsJSON, err := marshalSection(ins.CommunitySignals)
	if err != nil {
		return fmt.Errorf("marshal community_signals: %w", err)
	}
	keywordsJSON, err := marshalSection(ins.TrendKeywords)
	if err != nil {
		return fmt.Errorf("marshal trend_keywords: %w", err)
	}
	seriesJSON, err := marshalSection(ins.TrendSeries)
	if err != nil {
		return fmt.Errorf("marshal trend_series: %w", err)
	}
	var rawSignalJSON []byte
	if ins.RawSignal != nil {
		rawSignalJSON, err = json.Marshal(ins.RawSignal)
		if err != nil {
			return fmt.Errorf("marshal raw_signal: %w", err)
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO insights (
			id, problem_statement, proposed_solution, market_size_estimate,
			relevance_score, competitor_analysis, enhanced_scores,
			community_signals, trend_keywords, trend_series, raw_signal, created_at, stored_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			problem_statement = EXCLUDED.problem_statement,
			proposed_solution = EXCLUDED.proposed_solution,
			market_size_estimate = EXCLUDED.market_size_estimate,
			relevance_score = EXCLUDED.relevance_score,
			competitor_analysis = EXCLUDED.competitor_analysis,
			enhanced_scores = EXCLUDED.enhanced_scores,
			community_signals = EXCLUDED.community_signals,
			trend_keywords = EXCLUDED.trend_keywords,
			trend_series = EXCLUDED.trend_series,
			raw_signal = EXCLUDED.raw_signal,
			created_at = EXCLUDED.created_at,
			stored_at = EXCLUDED.stored_at`,
		ins.ID.String(), ins.ProblemStatement, ins.ProposedSolution, ins.MarketSizeEstimate,
		ins.RelevanceScore, competitorsJSON, scoresJSON,
		signalsJSON, keywordsJSON, seriesJSON, rawSignalJSON, ins.CreatedAt,
		core.Now().Time())

	return err
}

// GetByID retrieves an insight by ID.
func (r *InsightRepositoryImpl) GetByID(ctx context.Context, id core.InsightID) (*insight.Insight, error) {
	var row insightRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, problem_statement, proposed_solution, market_size_estimate,
		       relevance_score, competitor_analysis, enhanced_scores,
		       community_signals, trend_keywords, trend_series, raw_signal,
		       created_at, stored_at::text AS stored_at
		FROM insights WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("insight", id.String())
		}
		return nil, err
	}
	return rowToInsight(&row)
}

// List returns insights newest-first.
func (r *InsightRepositoryImpl) List(ctx context.Context, filters ports.InsightFilters) ([]*insight.Insight, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, problem_statement, proposed_solution, market_size_estimate,
		       relevance_score, competitor_analysis, enhanced_scores,
		       community_signals, trend_keywords, trend_series, raw_signal,
		       created_at, stored_at::text AS stored_at
		FROM insights`
	args := []interface{}{}
	if filters.Source != "" {
		query += ` WHERE raw_signal->>'source' = $1`
		args = append(args, filters.Source)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, filters.Offset)

	var rows []insightRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	insights := make([]*insight.Insight, 0, len(rows))
	for i := range rows {
		ins, err := rowToInsight(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("decode insight %s: %w", rows[i].ID, err)
		}
		insights = append(insights, ins)
	}
	return insights, nil
}

// Count returns the number of stored insights.
func (r *InsightRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM insights`)
	return count, err
}

// Delete removes an insight by ID.
func (r *InsightRepositoryImpl) Delete(ctx context.Context, id core.InsightID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM insights WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return core.NewNotFoundError("insight", id.String())
	}
	return nil
}

// marshalSection serializes an optional section, mapping absent to SQL
// NULL so a missing section stays distinguishable from an empty one.
func marshalSection[S ~[]E, E any](section S) ([]byte, error) {
	if section == nil {
		return nil, nil
	}
	return json.Marshal(section)
}

func rowToInsight(row *insightRow) (*insight.Insight, error) {
	ins := &insight.Insight{
		ID:                 core.InsightID(row.ID),
		ProblemStatement:   row.ProblemStatement,
		ProposedSolution:   row.ProposedSolution,
		MarketSizeEstimate: row.MarketSizeEstimate,
		RelevanceScore:     row.RelevanceScore,
		CreatedAt:          row.CreatedAt,
	}

	sections := []struct {
		data []byte
		dst  interface{}
	}{
		{row.CompetitorAnalysis, &ins.CompetitorAnalysis},
		{row.EnhancedScores, &ins.EnhancedScores},
		{row.CommunitySignals, &ins.CommunitySignals},
		{row.TrendKeywords, &ins.TrendKeywords},
		{row.TrendSeries, &ins.TrendSeries},
	}
	for _, s := range sections {
		if len(s.data) == 0 {
			continue
		}
		if err := json.Unmarshal(s.data, s.dst); err != nil {
			return nil, err
		}
	}

	if len(row.RawSignal) > 0 {
		var rs insight.RawSignal
		if err := json.Unmarshal(row.RawSignal, &rs); err != nil {
			return nil, err
		}
		ins.RawSignal = &rs
	}

	return ins, nil
}
