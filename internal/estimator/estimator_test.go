package estimator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/meterlog/pkg/models"
)

func day(n int) time.Time {
	return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC)
}

func manual(n int, value float64) models.MeterReading {
	return models.MeterReading{
		ID:      day(n).Format("2006-01-02"),
		MeterID: "default",
		Reading: value,
		Date:    day(n),
		Type:    models.ReadingManual,
	}
}

func TestFillGapsExtrapolatesDailyAverage(t *testing.T) {
	// 5 kWh/day of recent history, last manual reading 1000 on day 10;
	// running on day 13 fills days 11-13 at 1005, 1010, 1015
	readings := []models.MeterReading{
		manual(8, 990),
		manual(9, 995),
		manual(10, 1000),
	}

	created := FillGaps(readings, "default", day(13))
	require.Len(t, created, 3)

	wantValues := []float64{1005, 1010, 1015}
	for i, r := range created {
		assert.Equal(t, day(11+i).Format("2006-01-02"), r.DateKey())
		assert.Equal(t, wantValues[i], r.Reading)
		assert.Equal(t, models.ReadingEstimated, r.Type)
		assert.False(t, r.IsFirstReading)
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Notes)
	}
}

func TestFillGapsIdempotent(t *testing.T) {
	readings := []models.MeterReading{
		manual(8, 990),
		manual(9, 995),
		manual(10, 1000),
	}

	first := FillGaps(readings, "default", day(13))
	require.Len(t, first, 3)

	// Re-running with the estimates already present creates nothing new
	second := FillGaps(append(readings, first...), "default", day(13))
	assert.Empty(t, second)
}

func TestFillGapsAdoptsRealReadings(t *testing.T) {
	// A real reading inside the gap becomes the new baseline instead of
	// being duplicated
	readings := []models.MeterReading{
		manual(8, 990),
		manual(9, 995),
		manual(10, 1000),
		{
			ID:      "imported",
			MeterID: "default",
			Reading: 1020,
			Date:    day(12),
			Type:    models.ReadingImported,
		},
	}

	created := FillGaps(readings, "default", day(14))
	require.Len(t, created, 3)

	assert.Equal(t, day(11).Format("2006-01-02"), created[0].DateKey())
	assert.Equal(t, 1005.0, created[0].Reading)

	// Day 12 is skipped; days 13 and 14 continue from the real 1020
	assert.Equal(t, day(13).Format("2006-01-02"), created[1].DateKey())
	assert.Equal(t, 1025.0, created[1].Reading)
	assert.Equal(t, day(14).Format("2006-01-02"), created[2].DateKey())
	assert.Equal(t, 1030.0, created[2].Reading)
}

func TestFillGapsNeedsManualHistory(t *testing.T) {
	// No readings at all
	assert.Empty(t, FillGaps(nil, "default", day(13)))

	// Imported-only history has no manual anchor
	imported := []models.MeterReading{{
		ID: "x", MeterID: "default", Reading: 1000, Date: day(10), Type: models.ReadingImported,
	}}
	assert.Empty(t, FillGaps(imported, "default", day(13)))

	// A single manual reading is insufficient signal
	assert.Empty(t, FillGaps([]models.MeterReading{manual(10, 1000)}, "default", day(13)))
}

func TestFillGapsIgnoresFirstReadingInAverage(t *testing.T) {
	// The move-in baseline contributes no consumption; with only it and
	// one later manual reading there is nothing to average
	baseline := manual(1, 500)
	baseline.IsFirstReading = true
	readings := []models.MeterReading{baseline, manual(10, 1000)}

	assert.Empty(t, FillGaps(readings, "default", day(13)))
}

func TestFillGapsSameDayReadingsZeroDays(t *testing.T) {
	// Two manual readings on the same day give zero elapsed days and a
	// zero daily average; estimates flatline at the last value
	a := manual(10, 1000)
	b := manual(10, 1003)
	b.ID = "second"
	readings := []models.MeterReading{a, b}

	created := FillGaps(readings, "default", day(12))
	require.Len(t, created, 2)
	assert.Equal(t, 1003.0, created[0].Reading)
	assert.Equal(t, 1003.0, created[1].Reading)
}

func TestFillGapsUpToDateIsNoOp(t *testing.T) {
	readings := []models.MeterReading{
		manual(8, 990),
		manual(9, 995),
		manual(10, 1000),
	}
	assert.Empty(t, FillGaps(readings, "default", day(10)))
}

func TestFillGapsWindowUsesSevenMostRecent(t *testing.T) {
	// 2 kWh/day for ten days, then 10 kWh/day for the last seven; the
	// rolling window only sees the recent rate
	var readings []models.MeterReading
	value := 0.0
	for n := 1; n <= 10; n++ {
		readings = append(readings, manual(n, value))
		value += 2
	}
	value -= 2
	for n := 11; n <= 17; n++ {
		value += 10
		readings = append(readings, manual(n, value))
	}

	created := FillGaps(readings, "default", day(18))
	require.Len(t, created, 1)
	last := readings[len(readings)-1].Reading
	assert.Equal(t, last+10, created[0].Reading)
}

func TestFillGapsOtherMeterIgnored(t *testing.T) {
	other := manual(9, 995)
	other.MeterID = "garage"
	readings := []models.MeterReading{other, manual(10, 1000)}

	assert.Empty(t, FillGaps(readings, "default", day(13)))
}
