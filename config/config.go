package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultStorageKey is the snapshot key used when none is configured.
const DefaultStorageKey = "aw-winter-olympics-v1"

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config struct to hold the configuration settings
type Config struct {
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
	Import        ImportConfig        `yaml:"import"`
}

// StorageConfig selects where the tournament snapshot lives.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite|postgres|memory
	DSN    string `yaml:"dsn"`
	Key    string `yaml:"key"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"` // text|json
	MetricsFile string `yaml:"metrics_file"`
	Environment string `yaml:"environment"`
}

// ImportConfig holds file import options.
type ImportConfig struct {
	SpreadsheetsEnabled bool `yaml:"spreadsheets_enabled"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DSN:    "file:olympics.db?cache=shared",
			Key:    DefaultStorageKey,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
		Import: ImportConfig{SpreadsheetsEnabled: true},
	}
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, fall back to environment variables
		return loadConfigFromEnv(cfg)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// loadConfigFromEnv loads the configuration from environment variables on
// top of the defaults.
func loadConfigFromEnv(cfg *Config) (*Config, error) {
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("STORAGE_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_FILE"); v != "" {
		cfg.Observability.MetricsFile = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("SPREADSHEETS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SPREADSHEETS_ENABLED value: %v", err)
		}
		cfg.Import.SpreadsheetsEnabled = enabled
	}
	return nil
}

// Validate checks that the storage section is usable.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage dsn is required for driver %q", c.Storage.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}
	return nil
}
