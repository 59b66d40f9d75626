package prefs

import (
	"fmt"

	"github.com/lawnchairsociety/dungeonkit/internal/database"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
)

// Backend drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverGData    = "gdata"
)

// Config selects and configures a backend.
type Config struct {
	Driver   string          `yaml:"driver"`
	Profile  string          `yaml:"profile"`
	AppName  string          `yaml:"app_name"`
	Database database.Config `yaml:"database"`
}

// DefaultConfig stores prefs in a local SQLite file.
func DefaultConfig() Config {
	return Config{
		Driver:   DriverSQLite,
		Profile:  "default",
		AppName:  "dungeonkit",
		Database: database.DefaultConfig("data/prefs.db"),
	}
}

// Open returns the configured store and a function that releases it.
func Open(cfg Config) (Store, func() error, error) {
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}
	noop := func() error { return nil }

	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStore(), noop, nil
	case DriverSQLite, DriverPostgres:
		dbCfg := cfg.Database
		dbCfg.Driver = cfg.Driver
		db, err := database.OpenWithConfig(dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open prefs database: %w", err)
		}
		logger.Debug("Preference store opened", "driver", cfg.Driver, "profile", cfg.Profile)
		s := NewSQLStore(db, cfg.Profile)
		return s, s.Close, nil
	case DriverGData:
		s, err := NewGDataStore(cfg.AppName, cfg.Profile)
		if err != nil {
			return nil, nil, fmt.Errorf("open gdata store: %w", err)
		}
		logger.Debug("Preference store opened", "driver", cfg.Driver, "app", cfg.AppName, "profile", cfg.Profile)
		return s, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown prefs driver: %q", cfg.Driver)
	}
}
