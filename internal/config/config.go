package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Data struct {
		Dir       string   `yaml:"dir"`
		Tickers   []string `yaml:"tickers"`
		StartDate string   `yaml:"start_date"`
		EndDate   string   `yaml:"end_date"`
	} `yaml:"data"`
	Deposits struct {
		Initial float64 `yaml:"initial"`
		Daily   float64 `yaml:"daily"`
		Monthly float64 `yaml:"monthly"`
	} `yaml:"deposits"`
	Costs struct {
		TransactionCostRate float64 `yaml:"transaction_cost_rate"`
		SlippagePct         float64 `yaml:"slippage_pct"`
	} `yaml:"costs"`
	Benchmark   string  `yaml:"benchmark"`
	PenaltyRate float64 `yaml:"penalty_rate"`
	Seed        int64   `yaml:"seed"`

	Strategies []StrategyConfig `yaml:"strategies"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// StrategyConfig selects one catalog strategy, optionally overriding its
// parameter sweep values.
type StrategyConfig struct {
	Name   string           `yaml:"name"`
	Params map[string][]any `yaml:"params"`
}

// Load reads config from a YAML file, applies environment variable
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STOCKS_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("STOCKS_SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("STOCKS_BENCHMARK"); v != "" {
		c.Benchmark = v
	}
	if v := os.Getenv("STOCKS_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = seed
		}
	}
}

// Validate rejects configurations the engine would refuse at run time.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Data.Tickers) == 0 {
		return errors.New("data.tickers is required")
	}
	if c.Data.Dir == "" {
		return errors.New("data.dir is required")
	}
	if c.Costs.TransactionCostRate < 0 {
		return fmt.Errorf("costs.transaction_cost_rate must be >= 0, got %g", c.Costs.TransactionCostRate)
	}
	if c.Costs.SlippagePct < 0 || c.Costs.SlippagePct >= 1 {
		return fmt.Errorf("costs.slippage_pct must be in [0, 1), got %g", c.Costs.SlippagePct)
	}
	if c.Benchmark != "" && !c.hasTicker(c.Benchmark) {
		return fmt.Errorf("benchmark %q is not in data.tickers", c.Benchmark)
	}
	if _, err := c.StartDate(); err != nil {
		return err
	}
	if _, err := c.EndDate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) hasTicker(name string) bool {
	for _, t := range c.Data.Tickers {
		if t == name {
			return true
		}
	}
	return false
}

// StartDate parses data.start_date; zero when unset.
func (c *Config) StartDate() (time.Time, error) {
	return parseDate("data.start_date", c.Data.StartDate)
}

// EndDate parses data.end_date; zero when unset.
func (c *Config) EndDate() (time.Time, error) {
	return parseDate("data.end_date", c.Data.EndDate)
}

func parseDate(key, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// EnabledStrategies lists the selected strategy names; empty means the whole
// catalog.
func (c *Config) EnabledStrategies() []string {
	names := make([]string, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		names = append(names, s.Name)
	}
	return names
}

// Overrides assembles the per-strategy parameter sweep overrides.
func (c *Config) Overrides() map[string]map[string][]any {
	out := make(map[string]map[string][]any, len(c.Strategies))
	for _, s := range c.Strategies {
		if len(s.Params) > 0 {
			out[s.Name] = s.Params
		}
	}
	return out
}
