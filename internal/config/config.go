// Package config loads and validates application configuration.
// Precedence, lowest to highest: built-in defaults, optional YAML file
// (CHARGELOG_CONFIG_PATH), then environment variables. A .env file in the
// working directory is loaded into the environment first if present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the application.
type Config struct {
	// DBPath is the SQLite database file path. Defaults to "chargelog.db".
	DBPath string `yaml:"db_path"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ExportDir is where CSV exports are written. Defaults to ".".
	ExportDir string `yaml:"export_dir"`

	// PageSize is the number of rows per list page. Defaults to 4, the
	// page size the record cards were designed around.
	PageSize int `yaml:"page_size"`
}

// Load builds a Config from defaults, an optional YAML file, and environment
// variables. Only a malformed file or a non-numeric CHARGELOG_PAGE_SIZE can
// fail — every value has a usable default.
func Load() (Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := Config{
		DBPath:    "chargelog.db",
		LogLevel:  "info",
		ExportDir: ".",
		PageSize:  4,
	}

	if path := os.Getenv("CHARGELOG_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("CHARGELOG_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CHARGELOG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CHARGELOG_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("CHARGELOG_PAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CHARGELOG_PAGE_SIZE: %w", err)
		}
		cfg.PageSize = size
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
