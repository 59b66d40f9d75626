// Package config loads the dungeonkit YAML configuration and applies
// DUNGEONKIT_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/dungeonkit/internal/character"
	"github.com/lawnchairsociety/dungeonkit/internal/creation"
	"github.com/lawnchairsociety/dungeonkit/internal/database"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/namefilter"
	"github.com/lawnchairsociety/dungeonkit/internal/pointbuy"
	"github.com/lawnchairsociety/dungeonkit/internal/prefs"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "DUNGEONKIT_"

// Config is the full tool configuration.
type Config struct {
	Room     RoomConfig     `yaml:"room" envPrefix:"ROOM_"`
	Interior InteriorConfig `yaml:"interior" envPrefix:"INTERIOR_"`
	Creation CreationConfig `yaml:"creation" envPrefix:"CREATION_"`
	Storage  StorageConfig  `yaml:"storage" envPrefix:"STORAGE_"`
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
}

// RoomConfig sizes the generated room.
type RoomConfig struct {
	Width         float64 `yaml:"width" env:"WIDTH"`
	Height        float64 `yaml:"height" env:"HEIGHT"`
	WallThickness float64 `yaml:"wall_thickness" env:"WALL_THICKNESS"`
	AddColliders  bool    `yaml:"add_colliders" env:"ADD_COLLIDERS"`
	IsTrigger     bool    `yaml:"is_trigger" env:"IS_TRIGGER"`
}

// InteriorConfig controls the interior spawner.
type InteriorConfig struct {
	Count          int     `yaml:"count" env:"COUNT"`
	MinDistance    float64 `yaml:"min_distance" env:"MIN_DISTANCE"`
	RandomRotation bool    `yaml:"random_rotation" env:"RANDOM_ROTATION"`
	MaxAttempts    int     `yaml:"max_attempts" env:"MAX_ATTEMPTS"`

	// CatalogPath points at a YAML prefab catalog. Empty uses built-ins.
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH"`

	// Seed makes runs reproducible. Zero picks a random seed.
	Seed int64 `yaml:"seed" env:"SEED"`
}

// CreationConfig controls the character-creation flow.
type CreationConfig struct {
	// RefundPolicy is "mirror" (default) or "legacy".
	RefundPolicy string `yaml:"refund_policy" env:"REFUND_POLICY"`

	// AppearanceOptions is the option count per appearance part, in part order.
	AppearanceOptions []int `yaml:"appearance_options" env:"APPEARANCE_OPTIONS"`

	// PlayerPrefabs are indexed by calling ordinal.
	PlayerPrefabs []string `yaml:"player_prefabs" env:"PLAYER_PREFABS"`

	NameFilterPath  string `yaml:"name_filter_path" env:"NAME_FILTER_PATH"`
	CatalogTextPath string `yaml:"catalog_text_path" env:"CATALOG_TEXT_PATH"`
	HelpPath        string `yaml:"help_path" env:"HELP_PATH"`
}

// StorageConfig selects where finished characters are saved.
type StorageConfig struct {
	// Driver is one of memory, sqlite, postgres, gdata.
	Driver     string         `yaml:"driver" env:"DRIVER"`
	Profile    string         `yaml:"profile" env:"PROFILE"`
	AppName    string         `yaml:"app_name" env:"APP_NAME"`
	SQLitePath string         `yaml:"sqlite_path" env:"SQLITE_PATH"`
	Postgres   PostgresConfig `yaml:"postgres" envPrefix:"POSTGRES_"`
}

// PostgresConfig is the env-taggable mirror of database.PostgresConfig.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"HOST"`
	Port            int           `yaml:"port" env:"PORT"`
	User            string        `yaml:"user" env:"USER"`
	Password        string        `yaml:"password" env:"PASSWORD"`
	Database        string        `yaml:"database" env:"DATABASE"`
	SSLMode         string        `yaml:"sslmode" env:"SSLMODE"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// ServerConfig holds the websocket creation server settings.
type ServerConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`

	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins (not recommended for production).
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size" env:"MAX_MESSAGE_SIZE"`

	// MaxPerIP is the maximum concurrent connections from one IP. 0 means unlimited.
	MaxPerIP int `yaml:"max_per_ip" env:"MAX_PER_IP"`

	// MaxTotal is the maximum total concurrent connections. 0 means unlimited.
	MaxTotal int `yaml:"max_total" env:"MAX_TOTAL"`

	// MaxCommands per CommandWindow on one connection. 0 disables throttling.
	MaxCommands   int           `yaml:"max_commands" env:"MAX_COMMANDS"`
	CommandWindow time.Duration `yaml:"command_window" env:"COMMAND_WINDOW"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	pg := database.DefaultPostgresConfig()
	return &Config{
		Room: RoomConfig{
			Width:         10,
			Height:        8,
			WallThickness: 0.2,
			AddColliders:  true,
		},
		Interior: InteriorConfig{
			Count:          5,
			MinDistance:    1.0,
			RandomRotation: true,
			MaxAttempts:    30,
		},
		Creation: CreationConfig{
			RefundPolicy:      "mirror",
			AppearanceOptions: []int{6, 8, 6, 5, 4, 8},
			PlayerPrefabs:     []string{"PlayerFighter", "PlayerRogue", "PlayerWizard", "PlayerCleric"},
		},
		Storage: StorageConfig{
			Driver:     prefs.DriverSQLite,
			Profile:    "default",
			AppName:    "dungeonkit",
			SQLitePath: "data/prefs.db",
			Postgres: PostgresConfig{
				Host:            pg.Host,
				Port:            pg.Port,
				Database:        pg.Database,
				SSLMode:         pg.SSLMode,
				MaxOpenConns:    pg.MaxOpenConns,
				MaxIdleConns:    pg.MaxIdleConns,
				ConnMaxLifetime: pg.ConnMaxLifetime,
			},
		},
		Server: ServerConfig{
			Addr:           ":4000",
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
			MaxPerIP:       3,
			MaxTotal:       100,
			MaxCommands:    20,
			CommandWindow:  5 * time.Second,
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies environment
// overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return config, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), err
			}
		}
	}

	if err := ApplyEnv(config); err != nil {
		return config, err
	}

	return config, config.Validate()
}

// ApplyEnv overlays DUNGEONKIT_* environment variables onto config.
func ApplyEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Room.Width <= 0 || c.Room.Height <= 0 {
		errs = append(errs, fmt.Errorf("room size must be positive, got %gx%g", c.Room.Width, c.Room.Height))
	}
	if c.Room.WallThickness <= 0 {
		errs = append(errs, fmt.Errorf("wall thickness must be positive, got %g", c.Room.WallThickness))
	}
	if c.Interior.Count < 0 {
		errs = append(errs, fmt.Errorf("interior count must not be negative, got %d", c.Interior.Count))
	}
	if c.Interior.MinDistance < 0 {
		errs = append(errs, fmt.Errorf("interior min distance must not be negative, got %g", c.Interior.MinDistance))
	}
	if _, err := pointbuy.ParseRefundPolicy(c.Creation.RefundPolicy); err != nil {
		errs = append(errs, err)
	}
	if n := len(c.Creation.AppearanceOptions); n != 0 && n != 6 {
		errs = append(errs, fmt.Errorf("appearance_options needs 6 counts, got %d", n))
	}
	switch c.Storage.Driver {
	case prefs.DriverMemory, prefs.DriverSQLite, prefs.DriverPostgres, prefs.DriverGData:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver: %q", c.Storage.Driver))
	}
	return errors.Join(errs...)
}

// Options returns the configured appearance option counts, or the defaults
// when the list does not name all six parts.
func (c CreationConfig) Options() character.Options {
	opts := character.DefaultOptions
	if len(c.AppearanceOptions) == len(opts) {
		copy(opts[:], c.AppearanceOptions)
	}
	return opts
}

// ManagerConfig builds the creation manager settings. A name filter file
// that cannot be read is logged and the built-in filter is used instead.
func (c CreationConfig) ManagerConfig() (creation.Config, error) {
	policy, err := pointbuy.ParseRefundPolicy(c.RefundPolicy)
	if err != nil {
		return creation.Config{}, err
	}

	mc := creation.Config{RefundPolicy: policy, Options: c.Options()}

	filterCfg := namefilter.DefaultConfig()
	if c.NameFilterPath != "" {
		loaded, err := namefilter.LoadConfig(c.NameFilterPath)
		if err != nil {
			logger.Warning("Failed to load name filter config, using defaults", "path", c.NameFilterPath, "error", err)
		} else {
			filterCfg = loaded
		}
	}
	mc.NameFilter = namefilter.New(filterCfg)
	return mc, nil
}

// PrefsConfig converts the storage section for prefs.Open.
func (s StorageConfig) PrefsConfig() prefs.Config {
	return prefs.Config{
		Driver:  s.Driver,
		Profile: s.Profile,
		AppName: s.AppName,
		Database: database.Config{
			Driver:     s.Driver,
			SQLitePath: s.SQLitePath,
			Postgres: database.PostgresConfig{
				Host:            s.Postgres.Host,
				Port:            s.Postgres.Port,
				User:            s.Postgres.User,
				Password:        s.Postgres.Password,
				Database:        s.Postgres.Database,
				SSLMode:         s.Postgres.SSLMode,
				MaxOpenConns:    s.Postgres.MaxOpenConns,
				MaxIdleConns:    s.Postgres.MaxIdleConns,
				ConnMaxLifetime: s.Postgres.ConnMaxLifetime,
			},
		},
	}
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *ServerConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host (same-origin policy).
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means same-origin (e.g., non-browser client)
	}

	// Extract host from origin URL (e.g., "http://localhost:3000" -> "localhost:3000")
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
