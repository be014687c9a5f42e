package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var firstCmd = &cobra.Command{
	Use:   "first <id>",
	Short: "Mark a reading as the move-in baseline",
	Long: `Marks the given reading as the first reading. Consumption is never
computed going into a first reading, and at most one reading carries the
flag: marking one clears it from every other reading.`,
	Args: cobra.ExactArgs(1),
	RunE: runFirst,
}

func init() {
	rootCmd.AddCommand(firstCmd)
}

func runFirst(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	reading, err := sess.eng.SetFirstReading(args[0])
	if err != nil {
		return err
	}

	if err := sess.saveAll(); err != nil {
		return fmt.Errorf("saving readings: %w", err)
	}

	fmt.Printf("✓ %s (%s) is now the first reading\n", reading.ID, reading.DateKey())
	return nil
}
