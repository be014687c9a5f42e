package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jgoulah/meterlog/internal/config"
	"github.com/jgoulah/meterlog/internal/database"
	"github.com/jgoulah/meterlog/internal/engine"
	"github.com/jgoulah/meterlog/internal/store"
)

var (
	cfgFile string
	dbPath  string
	meterID string
)

var rootCmd = &cobra.Command{
	Use:   "meterlog",
	Short: "Track utility meter readings and analyse consumption",
	Long: `Meterlog records cumulative utility-meter readings and derives consumption,
cost and trend analytics from them. Readings are stored in a local SQLite
database; gaps between readings can be filled with estimates based on recent
usage.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ./meterlog.db)")
	rootCmd.PersistentFlags().StringVar(&meterID, "meter", "", "meter id (default from config)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDBPath returns the database file path (local directory)
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return "meterlog.db"
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// openDB opens the database connection
func openDB() (*database.DB, error) {
	path := getDBPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// getMeterID resolves the meter id from the flag or config
func getMeterID(cfg *config.Config) string {
	if meterID != "" {
		return meterID
	}
	return cfg.GetMeterID()
}

// session bundles the pieces every command needs: config, open database,
// and an engine seeded from stored readings
type session struct {
	cfg   *config.Config
	db    *database.DB
	eng   *engine.Engine
	meter string
}

// openSession loads config, opens the database and seeds the engine
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	meter := getMeterID(cfg)
	readings, err := db.LoadAll(meter)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading readings: %w", err)
	}

	eng := engine.New(store.NewFromReadings(readings), meter, cfg.Preferences.UnitRate)
	return &session{cfg: cfg, db: db, eng: eng, meter: meter}, nil
}

// close releases the session's database connection
func (s *session) close() {
	s.db.Close()
}

// saveAll writes the engine's repository state back to the database
func (s *session) saveAll() error {
	return s.db.SaveAll(s.meter, s.eng.Readings())
}
