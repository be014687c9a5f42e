package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/pkg/models"
)

var (
	listType  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored meter readings",
	Long:  `Displays stored readings in date order with their ids, types and notes.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "filter by type (MANUAL, ESTIMATED or IMPORTED)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "show only the most recent N readings (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	readings := sess.eng.Readings()
	if listType != "" {
		filtered := readings[:0]
		for _, r := range readings {
			if string(r.Type) == listType {
				filtered = append(filtered, r)
			}
		}
		readings = filtered
	}
	if listLimit > 0 && len(readings) > listLimit {
		readings = readings[len(readings)-listLimit:]
	}

	if len(readings) == 0 {
		fmt.Printf("No readings found for meter %s\n", sess.meter)
		return nil
	}

	fmt.Printf("\nReadings for meter %s:\n", sess.meter)
	fmt.Println("--------------------------------------------------------------------------------")
	fmt.Printf("%-36s  %-12s  %10s  %-9s  %s\n", "ID", "Date", "kWh", "Type", "Notes")
	fmt.Println("--------------------------------------------------------------------------------")

	for _, r := range readings {
		notes := r.Notes
		if r.IsFirstReading {
			notes = "[first] " + notes
		}
		fmt.Printf("%-36s  %-12s  %10.2f  %-9s  %s\n",
			r.ID, r.DateKey(), r.Reading, r.Type, notes)
	}

	fmt.Println("--------------------------------------------------------------------------------")
	last := readings[len(readings)-1]
	fmt.Printf("%d readings, latest %s\n", len(readings), humanize.Time(lastSeen(last)))

	return nil
}

// lastSeen anchors "latest X ago" on the reading's calendar date
func lastSeen(r models.MeterReading) time.Time {
	return r.Day()
}
