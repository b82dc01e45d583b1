package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Budget.WindowDays != 30 {
		t.Errorf("expected default window of 30 days, got %d", cfg.Budget.WindowDays)
	}
	if cfg.Budget.TotalMoney != 10000 {
		t.Errorf("expected default budget 10000, got %.2f", cfg.Budget.TotalMoney)
	}
	if cfg.Budget.MaxReleasableAmount != 500 {
		t.Errorf("expected default ceiling 500, got %.2f", cfg.Budget.MaxReleasableAmount)
	}
	if cfg.Simulation.Days != 90 || cfg.Simulation.TransactionsPerDay != 1000 {
		t.Errorf("unexpected simulation defaults: %+v", cfg.Simulation)
	}
	if cfg.Tuning.RateResolution != 10 || cfg.Tuning.RateBias != 1 {
		t.Errorf("unexpected tuning defaults: %+v", cfg.Tuning)
	}
	if len(cfg.Defenses) != 4 {
		t.Fatalf("expected 4 default defenses, got %d", len(cfg.Defenses))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
budget:
  window_days: 7
  total_money: 2500
simulation:
  days: 40
defenses:
  - name: only
    allocation: 0.8
    flag_rate: 0.2
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TOTAL_MONEY", "5000")
	t.Setenv("SIM_SEED", "42")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Budget.WindowDays != 7 {
		t.Errorf("expected window 7 from file, got %d", cfg.Budget.WindowDays)
	}
	if cfg.Budget.TotalMoney != 5000 {
		t.Errorf("expected env to override total money, got %.2f", cfg.Budget.TotalMoney)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("expected seed 42 from env, got %d", cfg.Simulation.Seed)
	}
	if len(cfg.Defenses) != 1 || cfg.Defenses[0].Name != "only" {
		t.Errorf("unexpected defenses: %+v", cfg.Defenses)
	}
}

func TestLoad_PartialAmountDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
amount:
  max: 2000
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Amount.Min != 1 || cfg.Amount.Mode != 100 {
		t.Errorf("expected min/mode defaults alongside a custom max, got %+v", cfg.Amount)
	}
	if cfg.Amount.Max != 2000 {
		t.Errorf("expected max 2000 from file, got %.2f", cfg.Amount.Max)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("partial amount config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative total money", func(c *Config) { c.Budget.TotalMoney = -1 }},
		{"negative window", func(c *Config) { c.Budget.WindowDays = -5 }},
		{"days within window", func(c *Config) { c.Simulation.Days = c.Budget.WindowDays }},
		{"bad amount triangle", func(c *Config) { c.Amount.Mode = c.Amount.Max + 1 }},
		{"non-positive amount min", func(c *Config) { c.Amount.Min = -1 }},
		{"negative rate resolution", func(c *Config) { c.Tuning.RateResolution = -5 }},
		{"negative rate bias", func(c *Config) { c.Tuning.RateBias = -1 }},
		{"no defenses", func(c *Config) { c.Defenses = nil }},
		{"unnamed defense", func(c *Config) { c.Defenses[0].Name = "" }},
		{"negative allocation", func(c *Config) { c.Defenses[0].Allocation = -0.1 }},
		{"flag rate above one", func(c *Config) { c.Defenses[0].FlagRate = 1.5 }},
		{"allocations above one", func(c *Config) { c.Defenses[0].Allocation = 0.5 }},
	}
	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
