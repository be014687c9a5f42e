package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/pkg/models"
)

var (
	addDate  string
	addNotes string
	addFirst bool
)

var addCmd = &cobra.Command{
	Use:   "add <reading>",
	Short: "Record a meter reading",
	Long: `Records a cumulative meter reading in kWh. A reading for a date that
already has one within 0.01 kWh is rejected as a duplicate. Adding a real
reading for a date covered by an estimate replaces the estimate.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "reading date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "optional note")
	addCmd.Flags().BoolVar(&addFirst, "first", false, "mark as the move-in baseline reading")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parsing reading value %q: %w", args[0], err)
	}

	date := time.Now()
	if addDate != "" {
		parsed, err := time.Parse("2006-01-02", addDate)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
		date = parsed
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	reading, err := sess.eng.AddReading(value, date, models.ReadingManual, addNotes, addFirst)
	if err != nil {
		return err
	}

	if err := sess.saveAll(); err != nil {
		return fmt.Errorf("saving readings: %w", err)
	}

	fmt.Printf("✓ Recorded %.2f kWh on %s\n", reading.Reading, reading.DateKey())
	if reading.IsFirstReading {
		fmt.Println("  Marked as first reading; consumption tracking starts here")
	}

	// Show the consumption this reading implies, if any
	snap := sess.eng.Snapshot()
	if len(snap.Series) > 0 {
		last := snap.Series[len(snap.Series)-1]
		if last.Date.Format("2006-01-02") == reading.DateKey() {
			fmt.Printf("  Consumption since previous reading: %.2f kWh (%s%.2f)\n",
				last.KWh, currencySymbol(sess.cfg.GetCurrency()), last.Cost)
		}
	}

	return nil
}
