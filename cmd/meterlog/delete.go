package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reading",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	doomed, err := sess.eng.Reading(args[0])
	if err != nil {
		return err
	}

	if err := sess.eng.DeleteReading(args[0]); err != nil {
		return err
	}

	if err := sess.db.Delete(args[0]); err != nil {
		return fmt.Errorf("deleting stored reading: %w", err)
	}

	fmt.Printf("✓ Deleted reading %s (%.2f kWh on %s)\n", doomed.ID, doomed.Reading, doomed.DateKey())
	return nil
}
