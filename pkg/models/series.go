package models

import "time"

// Trend classifies the direction of consumption within a bucket
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// ChartDataPoint is one derived consumption interval: the delta between a
// reading and the one before it, keyed by the later reading's date. Points
// are recomputed from the repository on every mutation and never patched.
type ChartDataPoint struct {
	Date  time.Time `json:"date"`
	KWh   float64   `json:"kwh"`
	Cost  float64   `json:"cost"`
	Label string    `json:"label"`
}

// TimeSeriesData is one aggregation bucket (day, Monday-aligned week, or
// calendar month) over the derived series.
type TimeSeriesData struct {
	Period       string           `json:"period"`
	Data         []ChartDataPoint `json:"data"`
	TotalKWh     float64          `json:"total_kwh"`
	TotalCost    float64          `json:"total_cost"`
	AverageDaily float64          `json:"average_daily"`
	Trend        Trend            `json:"trend"`
}
