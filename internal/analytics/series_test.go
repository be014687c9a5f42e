package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/meterlog/pkg/models"
)

func TestBuildSeriesLength(t *testing.T) {
	// N sorted readings with no first reading produce N-1 points
	readings := []models.MeterReading{
		reading("2024-01-01", 1000, false),
		reading("2024-01-02", 1010, false),
		reading("2024-01-03", 1025, false),
		reading("2024-01-04", 1030, false),
	}

	points := BuildSeries(readings, 0.30)
	assert.Len(t, points, len(readings)-1)
}

func TestBuildSeriesTooFewReadings(t *testing.T) {
	assert.Nil(t, BuildSeries(nil, 0.30))
	assert.Nil(t, BuildSeries([]models.MeterReading{reading("2024-01-01", 1000, false)}, 0.30))
}

func TestBuildSeriesMoveInScenario(t *testing.T) {
	// Move-in on Jan 1, readings on Jan 2 and Jan 5. The first interval is
	// zeroed because it leads out of the baseline; the Jan 2 -> Jan 5 gap is
	// one 30 kWh delta, not split across days.
	readings := []models.MeterReading{
		reading("2024-01-01", 1000, true),
		reading("2024-01-02", 1010, false),
		reading("2024-01-05", 1040, false),
	}

	points := BuildSeries(readings, 0.30)
	require.Len(t, points, 2)

	assert.Equal(t, "2024-01-02", points[0].Date.Format("2006-01-02"))
	assert.Equal(t, 0.0, points[0].KWh)
	assert.Equal(t, 0.0, points[0].Cost)

	assert.Equal(t, "2024-01-05", points[1].Date.Format("2006-01-02"))
	assert.Equal(t, 30.0, points[1].KWh)
	assert.Equal(t, 9.0, points[1].Cost)
}

func TestBuildSeriesSkipsFirstReadingPoint(t *testing.T) {
	// A first reading in the middle of the list emits nothing itself
	readings := []models.MeterReading{
		reading("2024-01-01", 500, false),
		reading("2024-01-02", 1000, true),
		reading("2024-01-03", 1010, false),
	}

	points := BuildSeries(readings, 0.30)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-03", points[0].Date.Format("2006-01-02"))
	assert.Equal(t, 0.0, points[0].KWh) // previous reading is the baseline
}

func TestBuildSeriesKeepsNegativePoints(t *testing.T) {
	// Malformed data surfaces as a negative point instead of disappearing
	readings := []models.MeterReading{
		reading("2024-01-01", 1040, false),
		reading("2024-01-02", 1010, false),
		reading("2024-01-03", 1030, false),
	}

	points := BuildSeries(readings, 0.30)
	require.Len(t, points, 2)
	assert.Equal(t, -30.0, points[0].KWh)
	assert.Equal(t, 20.0, points[1].KWh)
}
