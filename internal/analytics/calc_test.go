package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jgoulah/meterlog/pkg/models"
)

func reading(day string, value float64, first bool) models.MeterReading {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return models.MeterReading{
		ID:             day,
		MeterID:        "default",
		Reading:        value,
		Date:           date,
		Type:           models.ReadingManual,
		IsFirstReading: first,
	}
}

func TestConsumption(t *testing.T) {
	tests := []struct {
		name string
		prev models.MeterReading
		curr models.MeterReading
		want float64
	}{
		{
			name: "plain delta",
			prev: reading("2024-01-02", 1010, false),
			curr: reading("2024-01-05", 1040, false),
			want: 30,
		},
		{
			name: "current is first reading",
			prev: reading("2024-01-02", 1010, false),
			curr: reading("2024-01-05", 9999, true),
			want: 0,
		},
		{
			name: "previous is first reading",
			prev: reading("2024-01-01", 1000, true),
			curr: reading("2024-01-02", 1010, false),
			want: 0,
		},
		{
			name: "negative delta kept for auditing",
			prev: reading("2024-01-02", 1040, false),
			curr: reading("2024-01-05", 1010, false),
			want: -30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Consumption(tt.prev, tt.curr))
		})
	}
}

func TestConsumptionDecimalSafe(t *testing.T) {
	// 1040.07 - 1010.04 drifts under binary float subtraction
	got := Consumption(reading("2024-01-01", 1010.04, false), reading("2024-01-02", 1040.07, false))
	assert.Equal(t, 30.03, got)
}

func TestCostDecimalSafe(t *testing.T) {
	// naive binary floats give 9.999900000000001 here
	assert.Equal(t, 9.9999, Cost(33.333, 0.30))
}

func TestCostZeroRate(t *testing.T) {
	assert.Equal(t, 0.0, Cost(42.5, 0))
}
