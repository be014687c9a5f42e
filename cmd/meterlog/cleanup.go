package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	cleanupDate string
	cleanupID   string
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove estimated readings",
	Long: `Removes estimated readings, either every estimate on a calendar date
(--date) or a single estimate by id (--id). Manual and imported readings are
never removed through this command.`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupDate, "date", "", "remove all estimates on this date (YYYY-MM-DD)")
	cleanupCmd.Flags().StringVar(&cleanupID, "id", "", "remove a single estimate by id")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if (cleanupDate == "") == (cleanupID == "") {
		return fmt.Errorf("pass exactly one of --date or --id")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	if cleanupID != "" {
		if err := sess.eng.RemoveEstimatedByID(cleanupID); err != nil {
			return err
		}
		if err := sess.db.Delete(cleanupID); err != nil {
			return fmt.Errorf("deleting stored reading: %w", err)
		}
		fmt.Printf("✓ Removed estimated reading %s\n", cleanupID)
		return nil
	}

	date, err := time.Parse("2006-01-02", cleanupDate)
	if err != nil {
		return fmt.Errorf("parsing --date: %w", err)
	}

	removed := sess.eng.RemoveEstimatedByDate(date)
	if removed == 0 {
		fmt.Printf("No estimated readings on %s\n", cleanupDate)
		return nil
	}

	if err := sess.saveAll(); err != nil {
		return fmt.Errorf("saving readings: %w", err)
	}

	fmt.Printf("✓ Removed %d estimated readings on %s\n", removed, cleanupDate)
	return nil
}
