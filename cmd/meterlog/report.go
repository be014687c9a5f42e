package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/internal/analytics"
	"github.com/jgoulah/meterlog/pkg/models"
)

var reportPeriod string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show consumption summaries by period",
	Long: `Aggregates derived consumption into daily, weekly (Monday-start) or
monthly buckets, with totals, per-reading averages and a trend indicator for
each bucket.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportPeriod, "period", "monthly", "bucket size: daily, weekly or monthly")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	snap := sess.eng.Snapshot()

	var buckets []models.TimeSeriesData
	switch analytics.Granularity(reportPeriod) {
	case analytics.Daily:
		buckets = snap.Daily
	case analytics.Weekly:
		buckets = snap.Weekly
	case analytics.Monthly:
		buckets = snap.Monthly
	default:
		return fmt.Errorf("unknown period %q (use daily, weekly or monthly)", reportPeriod)
	}

	if len(buckets) == 0 {
		fmt.Println("No consumption data yet; record at least two readings")
		return nil
	}

	symbol := currencySymbol(sess.cfg.GetCurrency())

	fmt.Printf("\n%s consumption for meter %s:\n", titlePeriod(reportPeriod), sess.meter)
	fmt.Println("----------------------------------------------------------------------")
	fmt.Printf("%-12s  %10s  %12s  %12s  %s\n", "Period", "kWh", "Cost", "Avg/point", "Trend")
	fmt.Println("----------------------------------------------------------------------")

	for _, b := range buckets {
		fmt.Printf("%-12s  %10.2f  %s%11.2f  %12.2f  %s %s\n",
			b.Period, b.TotalKWh, symbol, b.TotalCost, b.AverageDaily, trendArrow(b.Trend), b.Trend)
	}

	fmt.Println("----------------------------------------------------------------------")

	// Overall period summary, including the standing charge the per-point
	// series never carries
	if sess.cfg.Preferences.StandingCharge > 0 && len(snap.Series) > 0 {
		current := analytics.Tariff{
			Name:           "current",
			UnitRate:       sess.cfg.Preferences.UnitRate,
			StandingCharge: sess.cfg.Preferences.StandingCharge,
		}
		costs := analytics.CompareTariffs(snap.Series, []analytics.Tariff{current})
		if len(costs) == 1 {
			c := costs[0]
			fmt.Printf("Total over %d days: %.2f kWh, %s%.2f energy + %s%.2f standing = %s%.2f\n",
				c.Days, c.TotalKWh, symbol, c.EnergyCost, symbol, c.StandingCost, symbol, c.TotalCost)
		}
	}

	return nil
}

func titlePeriod(period string) string {
	switch analytics.Granularity(period) {
	case analytics.Daily:
		return "Daily"
	case analytics.Weekly:
		return "Weekly"
	default:
		return "Monthly"
	}
}
