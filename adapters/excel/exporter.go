package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"startinsight/domain/evidence"
	"startinsight/domain/insight"
)

const sheetName = "Insights"

var headerRow = []string{
	"ID", "Problem Statement", "Relevance %", "Stars", "Market Size",
	"Market Bucket", "Dimension Scores", "Trend Keywords", "Source", "Created At",
}

// Exporter writes insight lists as Excel workbooks.
type Exporter struct{}

// NewExporter creates a workbook exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Write renders the insights into an xlsx workbook on w, one row per
// insight, using the same normalized values the UI shows.
func (e *Exporter) Write(w io.Writer, insights []*insight.Insight) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range headerRow {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
	}

	for rowIdx, ins := range insights {
		view := evidence.Normalize(ins)
		values := []interface{}{
			view.ID,
			view.ProblemStatement,
			view.RelevancePct,
			view.RelevanceStars,
			view.MarketSize,
			view.MarketBadgeClass,
			joinDimensions(view.Dimensions),
			joinKeywords(view.Keywords),
			sourceOf(ins),
			view.CreatedAt,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func joinDimensions(badges []evidence.DimensionBadge) string {
	parts := make([]string, len(badges))
	for i, b := range badges {
		parts[i] = b.Label + " " + b.Formatted()
	}
	return strings.Join(parts, ", ")
}

func joinKeywords(keywords []evidence.KeywordView) string {
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		parts[i] = fmt.Sprintf("%s (%s, %s)", kw.Keyword, kw.Badge.VolumeLabel, kw.Badge.GrowthLabel)
	}
	return strings.Join(parts, ", ")
}

func sourceOf(ins *insight.Insight) string {
	if ins.RawSignal == nil {
		return ""
	}
	return ins.RawSignal.Source
}
