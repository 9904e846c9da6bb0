package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("WEALTHPATH_DB_DRIVER", "")
	t.Setenv("WEALTHPATH_DB_DSN", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Growth.MonthlyRatePct != 12.4 {
		t.Fatalf("MonthlyRatePct = %v, want 12.4", cfg.Growth.MonthlyRatePct)
	}
	if cfg.Policy.AtRiskDays != 30 || cfg.Policy.AtRiskPercent != 80 {
		t.Fatalf("Policy = %+v, want 30 days / 80%%", cfg.Policy)
	}
	if len(cfg.Multipliers()) != 3 {
		t.Fatalf("Multipliers len = %d, want 3", len(cfg.Multipliers()))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("WEALTHPATH_DB_DRIVER", "")
	t.Setenv("WEALTHPATH_DB_DSN", "")
	path := filepath.Join(t.TempDir(), "wealthpath", "config.toml")

	cfg := DefaultConfig()
	cfg.Growth.MonthlyRatePct = 4.5
	cfg.Policy.AtRiskDays = 45
	cfg.Scenarios = cfg.Scenarios[:2]
	cfg.Appearance.Theme = "tokyo-night"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Growth.MonthlyRatePct != 4.5 {
		t.Fatalf("MonthlyRatePct = %v, want 4.5", got.Growth.MonthlyRatePct)
	}
	if got.Policy.AtRiskDays != 45 {
		t.Fatalf("AtRiskDays = %d, want 45", got.Policy.AtRiskDays)
	}
	if len(got.Scenarios) != 2 || got.Scenarios[1].Name != "moderate" {
		t.Fatalf("Scenarios = %+v, want conservative+moderate", got.Scenarios)
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("Theme = %q, want tokyo-night", got.Appearance.Theme)
	}
}

func TestLoadFrom_ParsesScenarioTable(t *testing.T) {
	t.Setenv("WEALTHPATH_DB_DRIVER", "")
	t.Setenv("WEALTHPATH_DB_DSN", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[growth]
monthly_rate_pct = 3.0
cap_multiple = 5.0

[[scenarios]]
name = "bear"
factor = 0.5

[[scenarios]]
name = "bull"
factor = 2.0
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	m := cfg.Multipliers()
	if len(m) != 2 || m[0].Name != "bear" || m[1].Factor != 2.0 {
		t.Fatalf("Multipliers = %+v", m)
	}
	if spec := cfg.SeriesSpec(100); spec.Cap != 500 {
		t.Fatalf("Cap = %v, want 500", spec.Cap)
	}
	// Unset keys keep their defaults.
	if cfg.Growth.TargetValue != 1_000_000_000 {
		t.Fatalf("TargetValue = %v, want default", cfg.Growth.TargetValue)
	}
}

func TestLoadFrom_EnvOverridesStore(t *testing.T) {
	t.Setenv("WEALTHPATH_DB_DRIVER", "pgx")
	t.Setenv("WEALTHPATH_DB_DSN", "postgres://localhost/wealth")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Store.Driver != "pgx" || cfg.StoreDSN() != "postgres://localhost/wealth" {
		t.Fatalf("Store = %+v", cfg.Store)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[growth\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSeriesSpecRejectsOversizedSpan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Growth.Periods = 2_000_000_000
	if spec := cfg.SeriesSpec(100); spec.Periods != 10 || spec.PeriodUnitMonths != 12 {
		t.Fatalf("SeriesSpec = %+v, want 10 yearly periods", spec)
	}

	cfg = DefaultConfig()
	cfg.Growth.Periods = 24
	cfg.Growth.PeriodUnitMonths = 5000
	if spec := cfg.SeriesSpec(100); spec.Periods != 24 || spec.PeriodUnitMonths != 12 {
		t.Fatalf("SeriesSpec = %+v, want 24 yearly periods", spec)
	}
}
