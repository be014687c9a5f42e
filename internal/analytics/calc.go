package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jgoulah/meterlog/pkg/models"
)

// Consumption returns the kWh delta between two adjacent readings. A
// first/move-in reading never produces a consumption delta on either side:
// nothing flows into the baseline, and the interval leading out of it is
// zeroed as well, regardless of the numeric values. The result may be
// negative when data is malformed (meter rollover or entry error); callers
// decide what to do with negative deltas.
func Consumption(prev, curr models.MeterReading) float64 {
	if prev.IsFirstReading || curr.IsFirstReading {
		return 0
	}
	c := decimal.NewFromFloat(curr.Reading)
	p := decimal.NewFromFloat(prev.Reading)
	f, _ := c.Sub(p).Float64()
	return f
}

// Cost converts a consumption quantity into a monetary cost at the given
// unit rate. Multiplication is done in decimal so that money values do not
// pick up binary floating-point drift. No standing charge is applied here.
func Cost(kwh, unitRate float64) float64 {
	k := decimal.NewFromFloat(kwh)
	r := decimal.NewFromFloat(unitRate)
	f, _ := k.Mul(r).Float64()
	return f
}
