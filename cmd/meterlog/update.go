package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/internal/store"
)

var (
	updateReading float64
	updateDate    string
	updateNotes   string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an existing reading",
	Long:  `Changes the value, date or notes of a stored reading by id.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().Float64Var(&updateReading, "reading", 0, "new cumulative kWh value")
	updateCmd.Flags().StringVar(&updateDate, "date", "", "new reading date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "new note text")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	var patch store.ReadingPatch
	if cmd.Flags().Changed("reading") {
		patch.Reading = &updateReading
	}
	if cmd.Flags().Changed("date") {
		parsed, err := time.Parse("2006-01-02", updateDate)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
		patch.Date = &parsed
	}
	if cmd.Flags().Changed("notes") {
		patch.Notes = &updateNotes
	}
	if patch.Reading == nil && patch.Date == nil && patch.Notes == nil {
		return fmt.Errorf("nothing to update: pass --reading, --date or --notes")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	updated, err := sess.eng.UpdateReading(args[0], patch)
	if err != nil {
		return err
	}

	if err := sess.db.Update(updated); err != nil {
		return fmt.Errorf("saving reading: %w", err)
	}

	fmt.Printf("✓ Updated reading %s: %.2f kWh on %s\n", updated.ID, updated.Reading, updated.DateKey())
	return nil
}
