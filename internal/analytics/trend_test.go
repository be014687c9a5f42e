package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jgoulah/meterlog/pkg/models"
)

func points(kwh ...float64) []models.ChartDataPoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.ChartDataPoint, len(kwh))
	for i, v := range kwh {
		out[i] = models.ChartDataPoint{Date: base.AddDate(0, 0, i), KWh: v}
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		kwh  []float64
		want models.Trend
	}{
		{
			name: "step up well past threshold",
			kwh:  []float64{10, 10, 10, 20, 20, 20},
			want: models.TrendIncreasing,
		},
		{
			name: "flat",
			kwh:  []float64{10, 10, 10, 10, 10, 10},
			want: models.TrendStable,
		},
		{
			name: "step down",
			kwh:  []float64{20, 20, 20, 10, 10, 10},
			want: models.TrendDecreasing,
		},
		{
			name: "within five percent threshold",
			kwh:  []float64{10, 10, 10.2, 10.2},
			want: models.TrendStable,
		},
		{
			name: "single point",
			kwh:  []float64{10},
			want: models.TrendStable,
		},
		{
			name: "empty",
			kwh:  nil,
			want: models.TrendStable,
		},
		{
			name: "odd length puts middle point in second half",
			// halves are [0] and [50, 50]: avg 0 vs 50
			kwh:  []float64{0, 50, 50},
			want: models.TrendIncreasing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(points(tt.kwh...)))
		})
	}
}
