package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jgoulah/meterlog/pkg/models"
)

// Granularity selects the aggregation bucket size
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Aggregate groups the derived series into buckets at the given granularity
// and computes per-bucket totals, averages and trend. Totals sum only
// positive-consumption points (negative deltas stay visible in the raw
// series but are excluded from summaries). AverageDaily divides by member
// point count rather than elapsed calendar days; buckets with sparse data
// are under-weighted and that is accepted.
func Aggregate(points []models.ChartDataPoint, g Granularity) []models.TimeSeriesData {
	buckets := make(map[string][]models.ChartDataPoint)
	for _, p := range points {
		key := bucketKey(p.Date, g)
		buckets[key] = append(buckets[key], p)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]models.TimeSeriesData, 0, len(keys))
	for _, k := range keys {
		members := buckets[k]

		totalKWh := decimal.Zero
		totalCost := decimal.Zero
		for _, p := range members {
			if p.KWh <= 0 {
				continue
			}
			totalKWh = totalKWh.Add(decimal.NewFromFloat(p.KWh))
			totalCost = totalCost.Add(decimal.NewFromFloat(p.Cost))
		}

		kwh, _ := totalKWh.Float64()
		cost, _ := totalCost.Float64()
		avg, _ := totalKWh.Div(decimal.NewFromInt(int64(len(members)))).Float64()

		result = append(result, models.TimeSeriesData{
			Period:       k,
			Data:         members,
			TotalKWh:     kwh,
			TotalCost:    cost,
			AverageDaily: avg,
			Trend:        Classify(members),
		})
	}

	return result
}

// bucketKey returns the grouping key for a point's date: the ISO date for
// daily, the Monday-aligned start of week for weekly (ISO 8601 weeks, not
// Sunday-start), and YYYY-MM for monthly.
func bucketKey(t time.Time, g Granularity) string {
	switch g {
	case Weekly:
		return startOfWeek(t).Format("2006-01-02")
	case Monthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// startOfWeek returns the Monday at or before t, truncated to midnight
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return models.Midnight(t).AddDate(0, 0, -offset)
}
