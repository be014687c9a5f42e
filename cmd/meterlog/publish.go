package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/internal/publisher"
	"github.com/jgoulah/meterlog/pkg/models"
)

var (
	publishAll   bool
	publishLimit int
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish readings to the MQTT feed",
	Long: `Sends stored readings as events on the MQTT feed so other consumers
can mirror them. By default only readings not published before are sent.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishAll, "all", false, "republish every reading (ignore published flag)")
	publishCmd.Flags().IntVar(&publishLimit, "limit", 0, "limit number of readings to publish (0 = no limit)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	pub, err := publisher.New(sess.cfg.MQTT, sess.cfg.GetTopicPrefix())
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	var readings []models.MeterReading
	if publishAll {
		readings = sess.eng.Readings()
	} else {
		readings, err = sess.db.ListUnpublished(sess.meter)
		if err != nil {
			return fmt.Errorf("listing unpublished readings: %w", err)
		}
	}

	if len(readings) == 0 {
		fmt.Println("No readings to publish")
		return nil
	}

	if publishLimit > 0 && len(readings) > publishLimit {
		readings = readings[:publishLimit]
		fmt.Printf("Limiting to %d readings (--limit flag)\n", publishLimit)
	}

	fmt.Printf("Publishing %d readings...\n", len(readings))
	published := 0
	for i, r := range readings {
		fmt.Printf("[%d/%d] Publishing %s (%.2f kWh)... ", i+1, len(readings), r.DateKey(), r.Reading)
		if err := pub.PublishReading(r); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}

		if err := sess.db.MarkPublished(r.ID); err != nil {
			fmt.Printf("✓ (warning: failed to mark as published: %v)\n", err)
		} else {
			fmt.Printf("✓\n")
		}
		published++
	}

	fmt.Printf("Successfully published %d/%d readings\n", published, len(readings))
	return nil
}
