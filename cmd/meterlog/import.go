package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/internal/importer"
	"github.com/jgoulah/meterlog/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import readings from a CSV statement",
	Long: `Parses a CSV file of cumulative readings (date,reading[,notes]) and
records them as imported readings. Duplicates of readings already stored are
skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	parsed, err := importer.ParseStatement(f, sess.meter)
	if err != nil {
		return fmt.Errorf("parsing statement: %w", err)
	}
	if len(parsed) == 0 {
		fmt.Println("No readings found in statement")
		return nil
	}

	imported := 0
	skipped := 0
	for _, r := range parsed {
		_, err := sess.eng.AddReading(r.Reading, r.Date, r.Type, r.Notes, false)
		if err != nil {
			var dup *store.DuplicateReadingError
			if errors.As(err, &dup) {
				skipped++
				continue
			}
			return err
		}
		imported++
	}

	if err := sess.saveAll(); err != nil {
		return fmt.Errorf("saving readings: %w", err)
	}

	fmt.Printf("✓ Imported %d readings (%d duplicates skipped)\n", imported, skipped)
	return nil
}
