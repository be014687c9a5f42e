package analytics

import (
	"github.com/jgoulah/meterlog/pkg/models"
)

// BuildSeries walks readings in ascending date order and emits one data
// point per reading after the first, keyed by the later reading's date.
// First/move-in readings are skipped entirely. Points with non-positive
// consumption are kept so anomalies stay visible in the raw series;
// aggregation applies its own positive-only filter before summing.
func BuildSeries(readings []models.MeterReading, unitRate float64) []models.ChartDataPoint {
	if len(readings) < 2 {
		return nil
	}

	var points []models.ChartDataPoint
	for i := 1; i < len(readings); i++ {
		curr := readings[i]
		if curr.IsFirstReading {
			continue
		}

		kwh := Consumption(readings[i-1], curr)
		points = append(points, models.ChartDataPoint{
			Date:  curr.Date,
			KWh:   kwh,
			Cost:  Cost(kwh, unitRate),
			Label: curr.Date.Format("Jan 2"),
		})
	}

	return points
}
