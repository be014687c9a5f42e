package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/meterlog/pkg/models"
)

func TestCompareTariffs(t *testing.T) {
	series := []models.ChartDataPoint{
		point("2024-01-01", 10, 3),
		point("2024-01-05", 20, 6),
	}

	costs := CompareTariffs(series, []Tariff{
		{Name: "current", UnitRate: 0.30, StandingCharge: 0.50},
		{Name: "candidate", UnitRate: 0.25, StandingCharge: 0.60},
	})
	require.Len(t, costs, 2)

	// Jan 1 through Jan 5 inclusive is 5 standing-charge days
	assert.Equal(t, 5, costs[0].Days)
	assert.Equal(t, 30.0, costs[0].TotalKWh)
	assert.Equal(t, 9.0, costs[0].EnergyCost)
	assert.Equal(t, 2.5, costs[0].StandingCost)
	assert.Equal(t, 11.5, costs[0].TotalCost)

	assert.Equal(t, 7.5, costs[1].EnergyCost)
	assert.Equal(t, 3.0, costs[1].StandingCost)
	assert.Equal(t, 10.5, costs[1].TotalCost)
}

func TestCompareTariffsExcludesNegativeConsumption(t *testing.T) {
	series := []models.ChartDataPoint{
		point("2024-01-01", 10, 3),
		point("2024-01-02", -4, -1.2),
	}

	costs := CompareTariffs(series, []Tariff{{Name: "current", UnitRate: 0.5}})
	require.Len(t, costs, 1)
	assert.Equal(t, 10.0, costs[0].TotalKWh)
	assert.Equal(t, 5.0, costs[0].EnergyCost)
}

func TestCompareTariffsEmpty(t *testing.T) {
	assert.Nil(t, CompareTariffs(nil, []Tariff{{Name: "x"}}))
	assert.Nil(t, CompareTariffs([]models.ChartDataPoint{point("2024-01-01", 1, 1)}, nil))
}

func TestActiveTariff(t *testing.T) {
	date := func(day string) *time.Time {
		d, err := time.Parse("2006-01-02", day)
		if err != nil {
			panic(err)
		}
		return &d
	}

	tariffs := []Tariff{
		{Name: "winter", ValidFrom: date("2024-01-01"), ValidTo: date("2024-03-31")},
		{Name: "summer", ValidFrom: date("2024-04-01"), ValidTo: date("2024-09-30")},
		{Name: "fallback"},
	}

	active := ActiveTariff(*date("2024-02-15"), tariffs)
	require.NotNil(t, active)
	assert.Equal(t, "winter", active.Name)

	active = ActiveTariff(*date("2024-05-01"), tariffs)
	require.NotNil(t, active)
	assert.Equal(t, "summer", active.Name)

	// Window edges are inclusive
	active = ActiveTariff(*date("2024-03-31"), tariffs)
	require.NotNil(t, active)
	assert.Equal(t, "winter", active.Name)

	// Outside every bounded window, the unbounded tariff matches
	active = ActiveTariff(*date("2025-01-01"), tariffs)
	require.NotNil(t, active)
	assert.Equal(t, "fallback", active.Name)

	assert.Nil(t, ActiveTariff(*date("2025-01-01"), tariffs[:2]))
}
