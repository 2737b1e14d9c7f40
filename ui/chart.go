package ui

import (
	"fmt"
	"strings"

	"startinsight/domain/evidence"
	"startinsight/domain/insight"
	"startinsight/domain/trend"
)

// Chart geometry. The SVG is responsive via viewBox, so these are layout
// units rather than pixels.
const (
	chartWidth    = 640.0
	chartHeight   = 240.0
	chartPadLeft  = 40.0
	chartPadTop   = 12.0
	chartPadBot   = 28.0
	chartPadRight = 12.0
	maxAxisTicks  = 6
)

// ChartPoint is one rendered data point with its hover tooltip text.
type ChartPoint struct {
	X       float64
	Y       float64
	Tooltip string // "Value — Mon D, YYYY"
}

// AxisTick is one x-axis label.
type AxisTick struct {
	X     float64
	Label string
}

// KeywordOption is one entry of the keyword switcher.
type KeywordOption struct {
	Index    int
	Keyword  string
	Selected bool
}

// TrendChartView is the complete render model of the trend chart.
// Exactly one of NoData / series content is meaningful: when NoData is
// set the template renders the placeholder and nothing else.
type TrendChartView struct {
	NoData bool

	InsightID     string
	SelectedIndex int
	Keyword       string
	Badge         evidence.KeywordBadge
	ShowSwitcher  bool
	Options       []KeywordOption
	Direction     trend.Display

	LinePath string
	AreaPath string
	Points   []ChartPoint
	Ticks    []AxisTick
	Width    float64
	Height   float64
}

// BuildTrendChart shapes the chart view for one insight's series list.
// selected is clamped into range, so a stale index after a data change
// degrades to the first series instead of failing.
func BuildTrendChart(insightID string, series []insight.TrendKeywordSeries, selected int) TrendChartView {
	if len(series) == 0 {
		return TrendChartView{NoData: true, InsightID: insightID}
	}
	if selected < 0 || selected >= len(series) {
		selected = 0
	}

	active := series[selected]
	view := TrendChartView{
		InsightID:     insightID,
		SelectedIndex: selected,
		Keyword:       active.Keyword,
		Badge:         evidence.TrendKeywordBadge(active.TrendKeyword),
		ShowSwitcher:  len(series) > 1,
		Direction:     trend.Classify(deriveDirection(active.Points)),
		Width:         chartWidth,
		Height:        chartHeight,
	}

	for i, s := range series {
		view.Options = append(view.Options, KeywordOption{
			Index:    i,
			Keyword:  s.Keyword,
			Selected: i == selected,
		})
	}

	view.LinePath, view.AreaPath, view.Points = buildPaths(active.Points)
	view.Ticks = buildTicks(active.Points)
	return view
}

func deriveDirection(points []insight.TrendDataPoint) trend.Direction {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return trend.DeriveDirection(values)
}

// buildPaths computes the SVG line and area paths plus hover points.
func buildPaths(points []insight.TrendDataPoint) (line, area string, rendered []ChartPoint) {
	if len(points) == 0 {
		return "", "", nil
	}

	minV, maxV := points[0].Value, points[0].Value
	for _, p := range points {
		if p.Value < minV {
			minV = p.Value
		}
		if p.Value > maxV {
			maxV = p.Value
		}
	}
	span := maxV - minV
	if span == 0 {
		span = 1 // flat series renders as a centered line
	}

	plotW := chartWidth - chartPadLeft - chartPadRight
	plotH := chartHeight - chartPadTop - chartPadBot
	step := 0.0
	if len(points) > 1 {
		step = plotW / float64(len(points)-1)
	}

	var lineB strings.Builder
	for i, p := range points {
		x := chartPadLeft + float64(i)*step
		y := chartPadTop + plotH - (p.Value-minV)/span*plotH
		if i == 0 {
			fmt.Fprintf(&lineB, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&lineB, " L%.1f,%.1f", x, y)
		}
		rendered = append(rendered, ChartPoint{
			X:       x,
			Y:       y,
			Tooltip: fmt.Sprintf("%g — %s", p.Value, trend.FormatLongDate(p.Date)),
		})
	}
	line = lineB.String()

	baseline := chartPadTop + plotH
	lastX := chartPadLeft + float64(len(points)-1)*step
	area = fmt.Sprintf("%s L%.1f,%.1f L%.1f,%.1f Z", line, lastX, baseline, chartPadLeft, baseline)
	return line, area, rendered
}

// buildTicks picks up to maxAxisTicks evenly spaced date labels.
func buildTicks(points []insight.TrendDataPoint) []AxisTick {
	if len(points) == 0 {
		return nil
	}
	plotW := chartWidth - chartPadLeft - chartPadRight
	step := 0.0
	if len(points) > 1 {
		step = plotW / float64(len(points)-1)
	}

	stride := 1
	if len(points) > maxAxisTicks {
		stride = (len(points) + maxAxisTicks - 1) / maxAxisTicks
	}

	var ticks []AxisTick
	for i := 0; i < len(points); i += stride {
		ticks = append(ticks, AxisTick{
			X:     chartPadLeft + float64(i)*step,
			Label: trend.FormatShortDate(points[i].Date),
		})
	}
	return ticks
}
