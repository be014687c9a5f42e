package estimator

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jgoulah/meterlog/internal/analytics"
	"github.com/jgoulah/meterlog/pkg/models"
)

// historyWindow is how many recent manual readings feed the daily average
const historyWindow = 7

// estimatedNote marks synthesized readings in the log view
const estimatedNote = "Estimated from recent usage"

// FillGaps synthesizes one estimated reading per missing calendar day
// between the most recent manual reading and today, extrapolating with the
// rolling daily average of recent manual readings. Days that already have a
// reading of any type are skipped, and a real reading inside the gap resets
// the running cumulative value, so re-running on the same day produces
// nothing new. Readings must be in date-ascending order. Returns nil when
// there is not enough history to estimate; that is an expected steady state
// for new users, not an error.
func FillGaps(readings []models.MeterReading, meterID string, today time.Time) []models.MeterReading {
	var manual []models.MeterReading
	existing := make(map[string]models.MeterReading)
	for _, r := range readings {
		if r.MeterID != meterID {
			continue
		}
		existing[r.DateKey()] = r
		if r.Type == models.ReadingManual {
			manual = append(manual, r)
		}
	}
	if len(manual) == 0 {
		return nil
	}

	lastManual := manual[len(manual)-1]
	lastDate := lastManual.Day()

	dailyAvg, ok := dailyAverage(manual)
	if !ok {
		return nil
	}

	running := decimal.NewFromFloat(lastManual.Reading)
	now := time.Now().UTC()

	var synthesized []models.MeterReading
	end := models.Midnight(today)
	for day := lastDate.AddDate(0, 0, 1); !day.After(end); day = day.AddDate(0, 0, 1) {
		if real, found := existing[day.Format("2006-01-02")]; found {
			// Real data wins: adopt its value as the new baseline
			running = decimal.NewFromFloat(real.Reading)
			continue
		}

		running = running.Add(dailyAvg).Round(2)
		value, _ := running.Float64()
		synthesized = append(synthesized, models.MeterReading{
			ID:             uuid.New().String(),
			MeterID:        meterID,
			Reading:        value,
			Date:           day,
			Type:           models.ReadingEstimated,
			Notes:          estimatedNote,
			IsFirstReading: false,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	return synthesized
}

// dailyAverage computes total consumption over total elapsed days across
// the most recent manual, non-first readings. Fewer than two readings is
// insufficient signal.
func dailyAverage(manual []models.MeterReading) (decimal.Decimal, bool) {
	var recent []models.MeterReading
	for _, r := range manual {
		if r.IsFirstReading {
			continue
		}
		recent = append(recent, r)
	}
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	if len(recent) < 2 {
		return decimal.Zero, false
	}

	totalKWh := decimal.Zero
	totalDays := 0
	for i := 1; i < len(recent); i++ {
		kwh := analytics.Consumption(recent[i-1], recent[i])
		totalKWh = totalKWh.Add(decimal.NewFromFloat(kwh))
		totalDays += int(recent[i].Day().Sub(recent[i-1].Day()).Hours() / 24)
	}
	if totalDays == 0 {
		return decimal.Zero, true
	}

	return totalKWh.Div(decimal.NewFromInt(int64(totalDays))), true
}
