package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/meterlog/pkg/models"
)

func point(day string, kwh, cost float64) models.ChartDataPoint {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return models.ChartDataPoint{Date: date, KWh: kwh, Cost: cost}
}

func TestAggregateDaily(t *testing.T) {
	series := []models.ChartDataPoint{
		point("2024-01-01", 10, 3),
		point("2024-01-02", 20, 6),
	}

	buckets := Aggregate(series, Daily)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-01-01", buckets[0].Period)
	assert.Equal(t, 10.0, buckets[0].TotalKWh)
	assert.Equal(t, "2024-01-02", buckets[1].Period)
	assert.Equal(t, 20.0, buckets[1].TotalKWh)
}

func TestAggregateWeeklyStartsMonday(t *testing.T) {
	// 2024-01-01 is a Monday; Jan 3 (Wed) and Jan 7 (Sun) share its week,
	// Jan 8 (Mon) starts the next one
	series := []models.ChartDataPoint{
		point("2024-01-03", 10, 3),
		point("2024-01-07", 20, 6),
		point("2024-01-08", 30, 9),
	}

	buckets := Aggregate(series, Weekly)
	require.Len(t, buckets, 2)

	assert.Equal(t, "2024-01-01", buckets[0].Period)
	assert.Equal(t, 30.0, buckets[0].TotalKWh)
	assert.Equal(t, 9.0, buckets[0].TotalCost)

	assert.Equal(t, "2024-01-08", buckets[1].Period)
	assert.Equal(t, 30.0, buckets[1].TotalKWh)
}

func TestAggregateMonthly(t *testing.T) {
	series := []models.ChartDataPoint{
		point("2024-01-30", 10, 3),
		point("2024-02-02", 20, 6),
		point("2024-02-20", 30, 9),
	}

	buckets := Aggregate(series, Monthly)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-01", buckets[0].Period)
	assert.Equal(t, "2024-02", buckets[1].Period)
	assert.Equal(t, 50.0, buckets[1].TotalKWh)
}

func TestAggregateFiltersNonPositiveFromTotals(t *testing.T) {
	// The negative point stays a bucket member (it counts toward the
	// average divisor and the trend input) but is excluded from sums
	series := []models.ChartDataPoint{
		point("2024-01-01", 10, 3),
		point("2024-01-02", -5, -1.5),
		point("2024-01-03", 20, 6),
	}

	buckets := Aggregate(series, Monthly)
	require.Len(t, buckets, 1)

	b := buckets[0]
	assert.Equal(t, 30.0, b.TotalKWh)
	assert.Equal(t, 9.0, b.TotalCost)
	assert.Len(t, b.Data, 3)
	assert.Equal(t, 10.0, b.AverageDaily) // 30 kWh over 3 member points
}

func TestAggregateTrendPerBucket(t *testing.T) {
	series := []models.ChartDataPoint{
		point("2024-01-01", 10, 3),
		point("2024-01-02", 10, 3),
		point("2024-01-03", 20, 6),
		point("2024-01-04", 20, 6),
	}

	buckets := Aggregate(series, Monthly)
	require.Len(t, buckets, 1)
	assert.Equal(t, models.TrendIncreasing, buckets[0].Trend)
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2024-01-01", "2024-01-01"}, // Monday maps to itself
		{"2024-01-03", "2024-01-01"}, // Wednesday
		{"2024-01-07", "2024-01-01"}, // Sunday belongs to the preceding Monday
		{"2024-01-08", "2024-01-08"},
	}

	for _, tt := range tests {
		date, err := time.Parse("2006-01-02", tt.day)
		require.NoError(t, err)
		assert.Equal(t, tt.want, startOfWeek(date).Format("2006-01-02"), "day %s", tt.day)
	}
}
