package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds the command line configuration.
// Values are populated from .starcalc.yaml, STARCALC_* env vars, and CLI flags.
type Config struct {
	Backend    string `mapstructure:"backend"`
	SQLitePath string `mapstructure:"sqlite_path"`
	Catalogues string `mapstructure:"catalogues"`
	Verbose    bool   `mapstructure:"verbose"`
}

// LoadConfig reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func LoadConfig() (Config, error) {
	viper.SetDefault("backend", BackendSQLite)
	viper.SetDefault("sqlite_path", "stars.db")
	viper.SetDefault("catalogues", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}

	switch cfg.Backend {
	case BackendSQLite, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown backend %q (use %q or %q)", cfg.Backend, BackendSQLite, BackendPostgres)
	}

	return cfg, nil
}
