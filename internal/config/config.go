package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jgoulah/meterlog/internal/analytics"
)

// Config holds the application configuration
type Config struct {
	MeterID     string         `yaml:"meter_id,omitempty"` // default meter for readings
	Preferences Preferences    `yaml:"preferences,omitempty"`
	Tariffs     []TariffPeriod `yaml:"tariffs,omitempty"` // historical tariffs for comparison
	MQTT        MQTTConfig     `yaml:"mqtt,omitempty"`
}

// Preferences holds user-facing settings consumed by the analytics engine
type Preferences struct {
	UnitRate       float64 `yaml:"unit_rate,omitempty"`       // currency per kWh
	StandingCharge float64 `yaml:"standing_charge,omitempty"` // currency per day
	Currency       string  `yaml:"currency,omitempty"`
	Theme          string  `yaml:"theme,omitempty"`
	Notifications  bool    `yaml:"notifications,omitempty"`
}

// TariffPeriod is a named rate with an optional validity window
type TariffPeriod struct {
	Name           string     `yaml:"name"`
	UnitRate       float64    `yaml:"unit_rate"`
	StandingCharge float64    `yaml:"standing_charge,omitempty"`
	ValidFrom      *time.Time `yaml:"valid_from,omitempty"`
	ValidTo        *time.Time `yaml:"valid_to,omitempty"`
}

// MQTTConfig holds broker settings for the live-update feed
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetMeterID returns the configured meter id with a default of "default"
func (c *Config) GetMeterID() string {
	if c.MeterID == "" {
		return "default"
	}
	return c.MeterID
}

// GetCurrency returns the preferred currency code with a default of GBP
func (c *Config) GetCurrency() string {
	if c.Preferences.Currency == "" {
		return "GBP"
	}
	return c.Preferences.Currency
}

// GetTopicPrefix returns the MQTT topic prefix with a default of meterlog
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix == "" {
		return "meterlog"
	}
	return c.MQTT.TopicPrefix
}

// AnalyticsTariffs converts configured tariff periods for comparison
func (c *Config) AnalyticsTariffs() []analytics.Tariff {
	tariffs := make([]analytics.Tariff, 0, len(c.Tariffs))
	for _, t := range c.Tariffs {
		tariffs = append(tariffs, analytics.Tariff{
			Name:           t.Name,
			UnitRate:       t.UnitRate,
			StandingCharge: t.StandingCharge,
			ValidFrom:      t.ValidFrom,
			ValidTo:        t.ValidTo,
		})
	}
	return tariffs
}
