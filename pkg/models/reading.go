package models

import "time"

// ReadingType identifies how a reading entered the system
type ReadingType string

const (
	ReadingManual    ReadingType = "MANUAL"    // entered by the user
	ReadingEstimated ReadingType = "ESTIMATED" // synthesized to fill a gap
	ReadingImported  ReadingType = "IMPORTED"  // parsed from an external statement
)

// MeterReading represents a cumulative meter value at a point in time.
// The reading is a counter, not a delta: consumption is derived by
// subtracting adjacent readings.
type MeterReading struct {
	ID             string      `json:"id"`
	MeterID        string      `json:"meter_id"`
	Reading        float64     `json:"reading"` // cumulative kWh, >= 0
	Date           time.Time   `json:"date"`
	Type           ReadingType `json:"type"`
	Notes          string      `json:"notes,omitempty"`
	IsFirstReading bool        `json:"is_first_reading"` // move-in baseline; at most one per repository
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// DateKey returns the reading's calendar date as YYYY-MM-DD. Duplicate
// detection and daily bucketing both key on this.
func (r MeterReading) DateKey() string {
	return r.Date.Format("2006-01-02")
}

// Day returns the reading's date truncated to midnight
func (r MeterReading) Day() time.Time {
	return Midnight(r.Date)
}

// Midnight truncates a timestamp to the start of its calendar day
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
