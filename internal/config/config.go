package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefenseConfig describes one defense registration: its share of the budget
// and, for the synthetic source, how often it blocks a transaction.
type DefenseConfig struct {
	Name       string  `yaml:"name"`
	Allocation float64 `yaml:"allocation"`
	FlagRate   float64 `yaml:"flag_rate"`
}

// Config holds all application configuration.
type Config struct {
	Budget struct {
		WindowDays          int     `yaml:"window_days"`
		TotalMoney          float64 `yaml:"total_money"`
		MaxReleasableAmount float64 `yaml:"max_releasable_amount"`
	} `yaml:"budget"`
	Defenses   []DefenseConfig `yaml:"defenses"`
	Simulation struct {
		Days               int   `yaml:"days"`
		TransactionsPerDay int   `yaml:"transactions_per_day"`
		Seed               int64 `yaml:"seed"` // 0 = time-based
	} `yaml:"simulation"`
	Amount struct {
		Min  float64 `yaml:"min"`
		Mode float64 `yaml:"mode"`
		Max  float64 `yaml:"max"`
	} `yaml:"amount"`
	Tuning struct {
		RateResolution float64 `yaml:"rate_resolution"`
		RateBias       float64 `yaml:"rate_bias"`
	} `yaml:"tuning"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty = run once and exit
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty = no recording
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TOTAL_MONEY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Budget.TotalMoney = f
		}
	}
	if v := os.Getenv("WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Budget.WindowDays = n
		}
	}
	if v := os.Getenv("SIM_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Days = n
		}
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.Seed = n
		}
	}
	if v := os.Getenv("SIM_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Budget.WindowDays == 0 {
		cfg.Budget.WindowDays = 30
	}
	if cfg.Budget.TotalMoney == 0 {
		cfg.Budget.TotalMoney = 10000
	}
	if cfg.Budget.MaxReleasableAmount == 0 {
		cfg.Budget.MaxReleasableAmount = 500
	}
	if cfg.Simulation.Days == 0 {
		cfg.Simulation.Days = 90
	}
	if cfg.Simulation.TransactionsPerDay == 0 {
		cfg.Simulation.TransactionsPerDay = 1000
	}
	if cfg.Amount.Min == 0 {
		cfg.Amount.Min = 1
	}
	if cfg.Amount.Mode == 0 {
		cfg.Amount.Mode = 100
	}
	if cfg.Amount.Max == 0 {
		cfg.Amount.Max = 1000
	}
	if cfg.Tuning.RateResolution == 0 {
		cfg.Tuning.RateResolution = 10
	}
	if cfg.Tuning.RateBias == 0 {
		cfg.Tuning.RateBias = 1
	}
	if len(cfg.Defenses) == 0 {
		cfg.Defenses = []DefenseConfig{
			{Name: "d1", Allocation: 0.10, FlagRate: 0.50},
			{Name: "d2", Allocation: 0.30, FlagRate: 0.10},
			{Name: "d3", Allocation: 0.55, FlagRate: 0.01},
			{Name: "d4", Allocation: 0.05, FlagRate: 0.10},
		}
	}

	return cfg, nil
}

// Validate checks that the configuration describes a runnable simulation.
func (c *Config) Validate() error {
	if c.Budget.TotalMoney <= 0 {
		return fmt.Errorf("budget.total_money must be positive")
	}
	if c.Budget.WindowDays <= 0 {
		return fmt.Errorf("budget.window_days must be positive")
	}
	if c.Budget.MaxReleasableAmount <= 0 {
		return fmt.Errorf("budget.max_releasable_amount must be positive")
	}
	if c.Simulation.Days <= c.Budget.WindowDays {
		return fmt.Errorf("simulation.days must exceed budget.window_days")
	}
	if c.Simulation.TransactionsPerDay <= 0 {
		return fmt.Errorf("simulation.transactions_per_day must be positive")
	}
	if c.Amount.Min <= 0 {
		return fmt.Errorf("amount.min must be positive")
	}
	if c.Amount.Min >= c.Amount.Max || c.Amount.Mode < c.Amount.Min || c.Amount.Mode > c.Amount.Max {
		return fmt.Errorf("amount triangle must satisfy min <= mode <= max, min < max")
	}
	if c.Tuning.RateResolution <= 0 {
		return fmt.Errorf("tuning.rate_resolution must be positive")
	}
	if c.Tuning.RateBias < 0 {
		return fmt.Errorf("tuning.rate_bias must be non-negative")
	}
	if len(c.Defenses) == 0 {
		return fmt.Errorf("at least one defense is required")
	}
	total := 0.0
	for _, d := range c.Defenses {
		if d.Name == "" {
			return fmt.Errorf("defense name is required")
		}
		if d.Allocation < 0 {
			return fmt.Errorf("defense %s: allocation must be non-negative", d.Name)
		}
		if d.FlagRate <= 0 || d.FlagRate > 1 {
			return fmt.Errorf("defense %s: flag_rate must be in (0, 1]", d.Name)
		}
		total += d.Allocation
	}
	if total > 1 {
		return fmt.Errorf("defense allocations sum to %.2f, must not exceed 1", total)
	}
	return nil
}
