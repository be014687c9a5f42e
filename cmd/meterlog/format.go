package main

import "github.com/jgoulah/meterlog/pkg/models"

// currencySymbol maps a currency code to its display symbol, falling back
// to the code itself
func currencySymbol(code string) string {
	switch code {
	case "GBP":
		return "£"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	default:
		return code + " "
	}
}

// trendArrow renders a trend as a direction indicator
func trendArrow(t models.Trend) string {
	switch t {
	case models.TrendIncreasing:
		return "↑"
	case models.TrendDecreasing:
		return "↓"
	default:
		return "→"
	}
}
