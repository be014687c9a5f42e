package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jgoulah/meterlog/pkg/models"
)

// Tariff is a unit rate plus daily standing charge, optionally bounded to a
// validity window for historical comparison.
type Tariff struct {
	Name           string
	UnitRate       float64 // currency per kWh
	StandingCharge float64 // currency per day
	ValidFrom      *time.Time
	ValidTo        *time.Time
}

// TariffCost is what a span of consumption would cost under one tariff
type TariffCost struct {
	Tariff       Tariff
	Days         int
	TotalKWh     float64
	EnergyCost   float64
	StandingCost float64
	TotalCost    float64
}

// CompareTariffs prices the positive consumption in the series under each
// candidate tariff: energy at the tariff's unit rate plus the standing
// charge for every calendar day the series spans. Standing charge lives
// here, in the date-range comparison, never in the per-point series.
func CompareTariffs(points []models.ChartDataPoint, tariffs []Tariff) []TariffCost {
	if len(points) == 0 || len(tariffs) == 0 {
		return nil
	}

	totalKWh := decimal.Zero
	for _, p := range points {
		if p.KWh <= 0 {
			continue
		}
		totalKWh = totalKWh.Add(decimal.NewFromFloat(p.KWh))
	}

	first := models.Midnight(points[0].Date)
	last := models.Midnight(points[len(points)-1].Date)
	days := int(last.Sub(first).Hours()/24) + 1

	results := make([]TariffCost, 0, len(tariffs))
	for _, t := range tariffs {
		energy := totalKWh.Mul(decimal.NewFromFloat(t.UnitRate))
		standing := decimal.NewFromFloat(t.StandingCharge).Mul(decimal.NewFromInt(int64(days)))
		total := energy.Add(standing)

		kwh, _ := totalKWh.Float64()
		energyF, _ := energy.Float64()
		standingF, _ := standing.Float64()
		totalF, _ := total.Float64()

		results = append(results, TariffCost{
			Tariff:       t,
			Days:         days,
			TotalKWh:     kwh,
			EnergyCost:   energyF,
			StandingCost: standingF,
			TotalCost:    totalF,
		})
	}

	return results
}

// ActiveTariff finds the tariff whose validity window contains t, or nil.
// Unbounded sides match anything.
func ActiveTariff(t time.Time, tariffs []Tariff) *Tariff {
	for i := range tariffs {
		if tariffs[i].ValidFrom != nil && t.Before(*tariffs[i].ValidFrom) {
			continue
		}
		if tariffs[i].ValidTo != nil && t.After(*tariffs[i].ValidTo) {
			continue
		}
		return &tariffs[i]
	}
	return nil
}
