package analytics

import (
	"github.com/jgoulah/meterlog/pkg/models"
)

// trendThreshold is the relative change (against the first-half average)
// required before a series is called increasing or decreasing.
const trendThreshold = 0.05

// Classify compares the average consumption of the first and second halves
// of a series. For odd-length input the middle point belongs to the second
// half. This is a coarse heuristic, not a statistical test.
func Classify(points []models.ChartDataPoint) models.Trend {
	if len(points) < 2 {
		return models.TrendStable
	}

	mid := len(points) / 2
	firstAvg := meanKWh(points[:mid])
	secondAvg := meanKWh(points[mid:])

	threshold := firstAvg * trendThreshold
	diff := secondAvg - firstAvg

	switch {
	case diff > threshold:
		return models.TrendIncreasing
	case diff < -threshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func meanKWh(points []models.ChartDataPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.KWh
	}
	return sum / float64(len(points))
}
