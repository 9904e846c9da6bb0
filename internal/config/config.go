// Package config loads and saves wealthpath settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/wealthpath/internal/forecast"
	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/tracker"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all wealthpath configuration.
type Config struct {
	Growth     GrowthConfig       `toml:"growth"`
	Scenarios  []model.Multiplier `toml:"scenarios"`
	Policy     tracker.Policy     `toml:"policy"`
	Store      StoreConfig        `toml:"store"`
	Daemon     DaemonConfig       `toml:"daemon"`
	Appearance AppearanceConfig   `toml:"appearance"`
}

// GrowthConfig holds projection defaults.
type GrowthConfig struct {
	NetWorth         float64 `toml:"net_worth"`
	MonthlyRatePct   float64 `toml:"monthly_rate_pct"`
	TargetValue      float64 `toml:"target_value"`
	Periods          int     `toml:"periods"`
	PeriodUnitMonths int     `toml:"period_unit_months"`
	CapMultiple      float64 `toml:"cap_multiple"`
	StartYear        int     `toml:"start_year,omitempty"`
}

// StoreConfig selects the database backing goals and metrics.
type StoreConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn,omitempty"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// AppearanceConfig holds theme and locale settings.
type AppearanceConfig struct {
	Theme  string `toml:"theme"`
	Locale string `toml:"locale"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Growth: GrowthConfig{
			NetWorth:         225_234_891,
			MonthlyRatePct:   12.4,
			TargetValue:      1_000_000_000,
			Periods:          10,
			PeriodUnitMonths: 12,
			CapMultiple:      2,
		},
		Scenarios: forecast.DefaultMultipliers(),
		Policy:    tracker.DefaultPolicy(),
		Store: StoreConfig{
			Driver: "sqlite",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8797",
			IntervalSec:  15,
			EventsBuffer: 200,
		},
		Appearance: AppearanceConfig{
			Theme:  "flexoki-dark",
			Locale: "en",
		},
	}
}

// SeriesSpec derives the projection shape for a target value.
func (c Config) SeriesSpec(target float64) forecast.SeriesSpec {
	spec := forecast.SeriesSpec{
		Periods:          c.Growth.Periods,
		PeriodUnitMonths: c.Growth.PeriodUnitMonths,
		Cap:              c.Growth.CapMultiple * target,
	}
	if spec.PeriodUnitMonths < 1 || spec.PeriodUnitMonths > forecast.MaxSeriesMonths {
		spec.PeriodUnitMonths = 12
	}
	if spec.Periods < 0 || spec.Periods > forecast.MaxSeriesMonths/spec.PeriodUnitMonths {
		spec.Periods = 10
	}
	if spec.Cap <= 0 {
		spec.Cap = 2 * target
	}
	return spec
}

// StartYear returns the calendar year projections are labelled from.
func (c Config) StartYear(now time.Time) int {
	if c.Growth.StartYear > 0 {
		return c.Growth.StartYear
	}
	return now.Year()
}

// Multipliers returns the configured scenarios, or the defaults if none.
func (c Config) Multipliers() []model.Multiplier {
	if len(c.Scenarios) == 0 {
		return forecast.DefaultMultipliers()
	}
	return c.Scenarios
}

// DefaultMetrics seeds the metrics record when the store has none yet.
func (c Config) DefaultMetrics() model.Metrics {
	return model.Metrics{
		NetWorth:      c.Growth.NetWorth,
		MonthlyGrowth: c.Growth.MonthlyRatePct,
		TargetValue:   c.Growth.TargetValue,
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wealthpath")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wealthpath")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for the default database
// and daemon files.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "wealthpath")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "wealthpath")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory and WEALTHPATH_* variables override
// the store settings.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	_ = godotenv.Load()

	//nolint:gosec // path is the user's own config file
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WEALTHPATH_DB_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("WEALTHPATH_DB_DSN"); v != "" {
		cfg.Store.DSN = v
	}
}

// StoreDSN returns the configured DSN, defaulting to a SQLite file in DataDir.
func (c Config) StoreDSN() string {
	if c.Store.DSN != "" {
		return c.Store.DSN
	}
	return filepath.Join(DataDir(), "wealthpath.db")
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	//nolint:gosec // path is the user's own config file
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LogLevel returns WEALTHPATH_LOG_LEVEL, or "info".
func LogLevel() string {
	if v := os.Getenv("WEALTHPATH_LOG_LEVEL"); v != "" {
		return v
	}
	return "info"
}
