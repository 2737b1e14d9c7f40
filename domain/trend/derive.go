package trend

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// stabilityRatio decides when total movement over the window is small
// enough, relative to the series' own noise, to call the trend stable.
const stabilityRatio = 0.5

// DeriveDirection classifies a search-interest series from its data:
// a least-squares slope over the sample index gives the movement, and a
// band of half the standard deviation absorbs noise as stable. Fewer
// than two points cannot carry a direction and come back unknown.
func DeriveDirection(values []float64) Direction {
	if len(values) < 2 {
		return DirectionUnknown
	}

	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)

	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return DirectionUnknown
	}

	movement := slope * float64(len(values)-1)
	if abs(movement) <= stabilityRatio*stdDev {
		return DirectionStable
	}
	if slope > 0 {
		return DirectionRising
	}
	return DirectionFalling
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
