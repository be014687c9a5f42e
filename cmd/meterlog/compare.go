package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/internal/analytics"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare tariffs against recorded consumption",
	Long: `Prices the recorded consumption under the current preferences and
every tariff period configured in the config file, so tariff switches can be
evaluated against real usage.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	snap := sess.eng.Snapshot()
	if len(snap.Series) == 0 {
		fmt.Println("No consumption data yet; record at least two readings")
		return nil
	}

	configured := sess.cfg.AnalyticsTariffs()
	tariffs := []analytics.Tariff{{
		Name:           "current",
		UnitRate:       sess.cfg.Preferences.UnitRate,
		StandingCharge: sess.cfg.Preferences.StandingCharge,
	}}
	tariffs = append(tariffs, configured...)

	// Of the configured tariffs, flag the one whose validity window covers
	// today so the comparison shows what the meter is actually on
	active := analytics.ActiveTariff(time.Now().UTC(), configured)

	costs := analytics.CompareTariffs(snap.Series, tariffs)
	if len(costs) == 0 {
		fmt.Println("No tariffs to compare")
		return nil
	}

	symbol := currencySymbol(sess.cfg.GetCurrency())

	fmt.Printf("\nTariff comparison over %d days (%.2f kWh):\n", costs[0].Days, costs[0].TotalKWh)
	fmt.Println("----------------------------------------------------------------------")
	fmt.Printf("%-20s  %12s  %12s  %12s\n", "Tariff", "Energy", "Standing", "Total")
	fmt.Println("----------------------------------------------------------------------")

	for _, c := range costs {
		name := c.Tariff.Name
		if active != nil && name == active.Name {
			name += " (active)"
		}
		fmt.Printf("%-20s  %s%11.2f  %s%11.2f  %s%11.2f\n",
			name, symbol, c.EnergyCost, symbol, c.StandingCost, symbol, c.TotalCost)
	}

	fmt.Println("----------------------------------------------------------------------")
	return nil
}
