package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/internal/logging"
	"github.com/jgoulah/meterlog/internal/publisher"
	"github.com/jgoulah/meterlog/pkg/models"
)

var listenDebug bool

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Fold live readings from the MQTT feed into the repository",
	Long: `Subscribes to the MQTT feed and treats each arriving reading exactly
like a local mutation: it is added through the repository (duplicate
detection applies) and the derived series is recomputed before the next
reading is handled. Runs until interrupted.`,
	RunE: runListen,
}

func init() {
	listenCmd.Flags().BoolVar(&listenDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	log := logging.New(listenDebug).WithComponent("listen")

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	pub, err := publisher.New(sess.cfg.MQTT, sess.cfg.GetTopicPrefix())
	if err != nil {
		return fmt.Errorf("creating subscriber: %w", err)
	}
	defer pub.Close()

	// The paho client delivers messages on its own goroutine; the engine is
	// single-threaded, so arrivals are serialized through this channel and
	// folded one at a time.
	incoming := make(chan models.MeterReading, 16)
	err = pub.Subscribe(
		func(r models.MeterReading) { incoming <- r },
		func(err error) { log.Warn("dropping malformed payload", "error", err) },
	)
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Info("listening for readings", "meter", sess.meter)
	for {
		select {
		case r := <-incoming:
			if r.MeterID == "" {
				r.MeterID = sess.meter
			}
			if r.MeterID != sess.meter {
				log.Debug("ignoring reading for other meter", "meter", r.MeterID)
				continue
			}

			added, err := sess.eng.Fold(r)
			if err != nil {
				log.LogReadingRejected(r.DateKey(), err)
				continue
			}
			if err := sess.db.Insert(added); err != nil {
				log.Error("persisting reading", "error", err)
				continue
			}
			log.LogReadingFolded(added.ID, added.DateKey(), added.Reading)

		case <-stop:
			log.Info("shutting down")
			return nil
		}
	}
}
